package models

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every record the sync layer manages. Stamp sets
// CreatedAt on first write and always refreshes UpdatedAt, matching what the
// canonical store does on its side.
type Entity interface {
	EntityID() uuid.UUID
	SetEntityID(id uuid.UUID)
	Stamp(now time.Time)
	Normalize()
	Validate() error
}
