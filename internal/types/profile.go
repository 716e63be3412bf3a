package types

import (
	"time"

	"github.com/google/uuid"
)

// AllCitiesSentinel is the location filter value meaning "no filter".
// The listing endpoint and the locations facet must agree on it.
const AllCitiesSentinel = "All Cities"

const (
	StatusOnline  = "Online"
	StatusOffline = "Offline"
)

const (
	DefaultRating = 4.9
	DefaultLimit  = 25
)

// Profile is a public listing record. Soft-deleted profiles keep their row
// with is_active = false and never surface through public reads.
type Profile struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Age             int        `json:"age"`
	Location        string     `json:"location"`
	Status          string     `json:"status"`
	Tags            []string   `json:"tags"`
	Img             string     `json:"img"`
	Rating          float64    `json:"rating"`
	IsActive        bool       `json:"isActive"`
	IsNew           bool       `json:"isNew"`
	Title           *string    `json:"title,omitempty"`
	ShortContent    *string    `json:"shortContent,omitempty"`
	LongContent     *string    `json:"longContent,omitempty"`
	MetaTitle       *string    `json:"metaTitle,omitempty"`
	MetaKeywords    *string    `json:"metaKeywords,omitempty"`
	MetaDescription *string    `json:"metaDescription,omitempty"`
	CreatedBy       uuid.UUID  `json:"createdBy"`
	UpdatedBy       *uuid.UUID `json:"updatedBy,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// CreateProfileParams is the full attribute set accepted on create.
// Optional fields are pointers so absence is distinguishable from zero values.
type CreateProfileParams struct {
	Name            string   `json:"name"`
	Age             int      `json:"age"`
	Location        string   `json:"location"`
	Status          *string  `json:"status"`
	Tags            []string `json:"tags"`
	Img             string   `json:"img"`
	Rating          *float64 `json:"rating"`
	IsActive        *bool    `json:"isActive"`
	IsNew           *bool    `json:"isNew"`
	Title           *string  `json:"title"`
	ShortContent    *string  `json:"shortContent"`
	LongContent     *string  `json:"longContent"`
	MetaTitle       *string  `json:"metaTitle"`
	MetaKeywords    *string  `json:"metaKeywords"`
	MetaDescription *string  `json:"metaDescription"`
}

// UpdateProfileParams carries a partial update; nil means "leave unchanged".
type UpdateProfileParams struct {
	Name            *string  `json:"name"`
	Age             *int     `json:"age"`
	Location        *string  `json:"location"`
	Status          *string  `json:"status"`
	Tags            []string `json:"tags"`
	Img             *string  `json:"img"`
	Rating          *float64 `json:"rating"`
	IsActive        *bool    `json:"isActive"`
	IsNew           *bool    `json:"isNew"`
	Title           *string  `json:"title"`
	ShortContent    *string  `json:"shortContent"`
	LongContent     *string  `json:"longContent"`
	MetaTitle       *string  `json:"metaTitle"`
	MetaKeywords    *string  `json:"metaKeywords"`
	MetaDescription *string  `json:"metaDescription"`
}

// ProfileFilter narrows the public listing. Empty strings mean no filter.
type ProfileFilter struct {
	Location string
	Status   string
}

// ProfilePage is one page of listing results plus the unpaginated total.
type ProfilePage struct {
	Profiles []Profile
	Total    int
}
