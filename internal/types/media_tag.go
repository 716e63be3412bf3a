package types

import (
	"time"

	"github.com/google/uuid"
)

// MediaTag is a taxonomy record for uploaded media. The slug is derived from
// the name and unique across the table.
type MediaTag struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	MediaCount  int        `json:"mediaCount"`
	MediaFiles  []string   `json:"mediaFiles"`
	IsActive    bool       `json:"isActive"`
	CreatedBy   uuid.UUID  `json:"createdBy"`
	UpdatedBy   *uuid.UUID `json:"updatedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CreateMediaTagParams struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	MediaFiles  []string `json:"mediaFiles"`
}

type UpdateMediaTagParams struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	MediaFiles  []string `json:"mediaFiles"`
	IsActive    *bool    `json:"isActive"`
}
