package services

import (
	"errors"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"
)

// ErrRiderNotFound is returned when no active rider can take the order.
var ErrRiderNotFound = errors.New("rider not found")

// RiderLoad is an active rider and the number of orders they currently carry
// (assigned or shipped).
type RiderLoad struct {
	RiderID      kernel.UUID
	ActiveOrders int
}

// RiderDispatcher assigns packed orders to riders.
//
// Business rules:
//   - The rider with the fewest active orders wins
//   - Ties go to the rider listed first, so callers control fairness by ordering
//   - The assignment goes through the order state machine as the given actor
//
// Example usage:
//
//	riderID, err := services.NewRiderDispatcher().Dispatch(o, loads, user.System, time.Now())
//	if errors.Is(err, services.ErrRiderNotFound) {
//	    return
//	}
type RiderDispatcher struct{}

func NewRiderDispatcher() RiderDispatcher {
	return RiderDispatcher{}
}

// Dispatch assigns the least loaded rider to o and returns the rider's id.
func (d RiderDispatcher) Dispatch(
	o *order.Order,
	riders []RiderLoad,
	actor user.Actor,
	now time.Time,
) (kernel.UUID, error) {
	if err := o.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	best, err := d.findLeastLoaded(riders)
	if err != nil {
		return kernel.UUID{}, err
	}

	riderID := best.RiderID
	if err = o.Apply(actor, order.Transition{
		Action:  order.Assign,
		RiderID: &riderID,
		Note:    "auto-assigned",
	}, now); err != nil {
		return kernel.UUID{}, err
	}
	return riderID, nil
}

func (d RiderDispatcher) findLeastLoaded(riders []RiderLoad) (RiderLoad, error) {
	var (
		best  RiderLoad
		found bool
	)
	for _, r := range riders {
		if err := r.RiderID.Validate(); err != nil {
			return RiderLoad{}, err
		}
		if !found || r.ActiveOrders < best.ActiveOrders {
			best = r
			found = true
		}
	}
	if !found {
		return RiderLoad{}, ErrRiderNotFound
	}
	return best, nil
}
