// Package services provides domain services that orchestrate business operations
// across multiple roboshop aggregates.
//
// The package includes:
//   - RiderDispatcher: picks the least loaded rider for a packed order and assigns it
//   - Pricer: turns checkout lines, an optional coupon and commerce settings into order amounts
//
// Domain services coordinate between aggregates, implementing business logic that
// does not naturally belong to a single aggregate root.
package services
