package deadline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pickpool/pickpool/go/internal/models"
)

// BucketKind distinguishes how games group under one submission cutoff.
type BucketKind string

const (
	// BucketIsolated holds exactly one game with its own cutoff.
	BucketIsolated BucketKind = "isolated"
	// BucketClustered holds the whole weekend slate plus the Monday night
	// game, all locking together before the first clustered kickoff.
	BucketClustered BucketKind = "clustered"
)

// BucketKey identifies one submission bucket within a week.
// GameID is set only for isolated buckets.
type BucketKey struct {
	Kind   BucketKind
	GameID uuid.UUID
}

// String renders the key in the form stored on override rows.
func (k BucketKey) String() string {
	if k.Kind == BucketIsolated {
		return fmt.Sprintf("%s:%s", BucketIsolated, k.GameID)
	}
	return string(BucketClustered)
}

// WindowStatus is the submission state of one bucket at a point in time.
type WindowStatus string

const (
	StatusOpen        WindowStatus = "open"
	StatusClosingSoon WindowStatus = "closing_soon"
	StatusClosed      WindowStatus = "closed"
)

// closingSoonLead is how far before the cutoff a window reports closing_soon.
const closingSoonLead = time.Hour

// Window is one bucket's computed cutoff. Representative is the game whose
// kickoff anchors the cutoff (the game itself for isolated buckets, the
// earliest kickoff for the clustered bucket).
type Window struct {
	Key            BucketKey
	Representative models.Game
	Cutoff         time.Time
}

// Status classifies the window against the wall clock. Recompute on every
// query; a status is never cached.
func (w Window) Status(now time.Time) WindowStatus {
	if !now.Before(w.Cutoff) {
		return StatusClosed
	}
	if w.Cutoff.Sub(now) <= closingSoonLead {
		return StatusClosingSoon
	}
	return StatusOpen
}

// SetOverrideRequest represents an admin override of a computed cutoff.
// UserID nil makes the override global for the bucket.
type SetOverrideRequest struct {
	Week      models.WeekRef `json:"week" validate:"required"`
	BucketKey BucketKey      `json:"bucket_key" validate:"required"`
	UserID    *uuid.UUID     `json:"user_id,omitempty"`
	Cutoff    time.Time      `json:"cutoff" validate:"required"`
	Reason    string         `json:"reason" validate:"required"`
	Author    string         `json:"author" validate:"required"`
}
