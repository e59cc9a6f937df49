// Package audit describes the append-only trail of staff actions.
package audit

import (
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
)

// Entity names the kind of object an entry is about.
type Entity string

const (
	EntityOrder    Entity = "order"
	EntityProduct  Entity = "product"
	EntityUser     Entity = "user"
	EntityIssue    Entity = "issue"
	EntityCoupon   Entity = "coupon"
	EntitySettings Entity = "settings"
)

// Entry is one audit record. ActorID is nil for background jobs.
type Entry struct {
	ID        kernel.UUID
	ActorID   *kernel.UUID
	ActorRole user.Role
	Action    string
	Entity    Entity
	EntityID  string
	Details   map[string]string
	At        time.Time
}

// NewEntry stamps an entry for actor.
func NewEntry(actor user.Actor, action string, entity Entity, entityID string, details map[string]string, at time.Time) Entry {
	var actorID *kernel.UUID
	if !actor.IsSystem() {
		id := actor.ID
		actorID = &id
	}
	return Entry{
		ID:        kernel.NewUUID(),
		ActorID:   actorID,
		ActorRole: actor.Role,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		At:        at.UTC(),
	}
}

// Filter narrows the admin audit list. Empty fields match everything.
type Filter struct {
	Entity   Entity
	EntityID string
	ActorID  *kernel.UUID
	Page     int
	PageSize int
}
