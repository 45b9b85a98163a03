package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type GenerationStatus string

const (
	GenerationStatusGenerating GenerationStatus = "generating"
	GenerationStatusCompleted  GenerationStatus = "completed"
	GenerationStatusFailed     GenerationStatus = "failed"
)

// Terminal reports whether no further status writes are allowed.
func (s GenerationStatus) Terminal() bool {
	return s == GenerationStatusCompleted || s == GenerationStatusFailed
}

// CanTransition reports whether next is a valid transition from s.
// The only valid transitions are generating -> completed and generating -> failed.
func (s GenerationStatus) CanTransition(next GenerationStatus) bool {
	return s == GenerationStatusGenerating && next.Terminal()
}

// GenerationRecord tracks one image-generation attempt from the moment it is
// created (before the external call is issued) to its terminal state.
// Path fields are only set once the record reaches completed.
type GenerationRecord struct {
	ID                   uuid.UUID
	Style                string
	OriginalImagePath    string
	GeneratedImagePath   sql.NullString
	WatermarkedImagePath sql.NullString
	Status               GenerationStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
