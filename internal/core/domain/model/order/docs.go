// Package order implements the Order aggregate and its status state machine.
//
// Lifecycle:
//
//	processing ──pack──> packed ──assign──> assigned ──ship──> shipped ──deliver──> delivered
//	    │  ^               │  ^               │  ^  │             │                     │
//	    │  └────revert─────┘  └────revert─────┘  │  └───revert────┘                     │
//	    │                  │                     │ (assign again = reassign rider)      │
//	    └──────cancel──────┴────────cancel───────┘                                      │
//	                       v                                                            │
//	                   cancelled ─────────────refund──────────> refunded <───refund─────┘
//
// Every applied action appends a HistoryEntry and bumps the aggregate version so the
// repository can detect concurrent writers.
package order
