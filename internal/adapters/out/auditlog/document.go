// Package auditlog keeps the staff action trail in a MongoDB collection.
package auditlog

import (
	"time"

	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
)

// entryDocument is one audit_logs document. Ids are stored as strings so the
// collection reads well from the mongo shell.
type entryDocument struct {
	ID        string            `bson:"_id"`
	ActorID   *string           `bson:"actor_id,omitempty"`
	ActorRole string            `bson:"actor_role"`
	Action    string            `bson:"action"`
	Entity    string            `bson:"entity"`
	EntityID  string            `bson:"entity_id,omitempty"`
	Details   map[string]string `bson:"details,omitempty"`
	At        time.Time         `bson:"at"`
}

func fromDomain(e audit.Entry) entryDocument {
	doc := entryDocument{
		ID:        e.ID.String(),
		ActorRole: string(e.ActorRole),
		Action:    e.Action,
		Entity:    string(e.Entity),
		EntityID:  e.EntityID,
		Details:   e.Details,
		At:        e.At.UTC(),
	}
	if e.ActorID != nil {
		id := e.ActorID.String()
		doc.ActorID = &id
	}
	return doc
}

func toDomain(doc entryDocument) (audit.Entry, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return audit.Entry{}, err
	}
	e := audit.Entry{
		ID:        id,
		ActorRole: user.Role(doc.ActorRole),
		Action:    doc.Action,
		Entity:    audit.Entity(doc.Entity),
		EntityID:  doc.EntityID,
		Details:   doc.Details,
		At:        doc.At.UTC(),
	}
	if doc.ActorID != nil {
		actorID, err := kernel.UUIDFromString(*doc.ActorID)
		if err != nil {
			return audit.Entry{}, err
		}
		e.ActorID = &actorID
	}
	return e, nil
}
