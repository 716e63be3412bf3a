package types

import (
	"time"

	"github.com/google/uuid"
)

// OwnerInfo is the site owner's contact card. There is exactly one row.
type OwnerInfo struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	About     string     `json:"about"`
	UpdatedBy *uuid.UUID `json:"updatedBy,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type UpdateOwnerInfoParams struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	About string `json:"about"`
}
