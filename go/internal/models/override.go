package models

import (
	"time"

	"github.com/google/uuid"
)

// DeadlineOverride is an admin-authored exception to a computed submission
// cutoff. UserID nil means the override applies to every member. Overrides are
// soft-deactivated when superseded so the full history stays auditable.
type DeadlineOverride struct {
	ID        uuid.UUID  `json:"id"`
	Season    int        `json:"season"`
	Week      int        `json:"week"`
	BucketKey string     `json:"bucket_key"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Cutoff    time.Time  `json:"cutoff"`
	Reason    string     `json:"reason"`
	Author    string     `json:"author"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
}
