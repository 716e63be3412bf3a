package profiles

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/trivixa/listings-api/internal/types"
)

// Field constraints mirror the persisted schema: violations reject the whole
// write, nothing is truncated silently.
const (
	minAge             = 18
	maxAge             = 100
	minRating          = 0.0
	maxRating          = 5.0
	maxTitleLen        = 200
	maxShortContentLen = 150
	maxMetaTitleLen    = 60
	maxMetaDescLen     = 160
)

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func checkMaxLen(ve *types.ValidationError, field string, value *string, max int) {
	if value != nil && utf8.RuneCountInString(*value) > max {
		ve.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

func checkStatus(ve *types.ValidationError, status *string) {
	if status != nil && *status != types.StatusOnline && *status != types.StatusOffline {
		ve.Add("status", fmt.Sprintf("must be %q or %q", types.StatusOnline, types.StatusOffline))
	}
}

func checkRating(ve *types.ValidationError, rating *float64) {
	if rating != nil && (*rating < minRating || *rating > maxRating) {
		ve.Add("rating", fmt.Sprintf("must be between %g and %g", minRating, maxRating))
	}
}

func checkAge(ve *types.ValidationError, age int) {
	if age < minAge || age > maxAge {
		ve.Add("age", fmt.Sprintf("must be between %d and %d", minAge, maxAge))
	}
}

// validateCreateProfileParams trims and validates the full attribute set.
// It mutates params in place (trimming) and returns nil when clean.
func validateCreateProfileParams(params *types.CreateProfileParams) *types.ValidationError {
	ve := &types.ValidationError{}

	params.Name = strings.TrimSpace(params.Name)
	params.Location = strings.TrimSpace(params.Location)
	params.Img = strings.TrimSpace(params.Img)
	for i := range params.Tags {
		params.Tags[i] = strings.TrimSpace(params.Tags[i])
	}
	trimPtr(params.Title)
	trimPtr(params.ShortContent)
	trimPtr(params.MetaTitle)
	trimPtr(params.MetaKeywords)
	trimPtr(params.MetaDescription)

	if params.Name == "" {
		ve.Add("name", "is required")
	}
	checkAge(ve, params.Age)
	if params.Location == "" {
		ve.Add("location", "is required")
	}
	if params.Img == "" {
		ve.Add("img", "is required")
	}
	checkStatus(ve, params.Status)
	checkRating(ve, params.Rating)
	checkMaxLen(ve, "title", params.Title, maxTitleLen)
	checkMaxLen(ve, "shortContent", params.ShortContent, maxShortContentLen)
	checkMaxLen(ve, "metaTitle", params.MetaTitle, maxMetaTitleLen)
	checkMaxLen(ve, "metaDescription", params.MetaDescription, maxMetaDescLen)

	if ve.HasViolations() {
		return ve
	}
	return nil
}

// validateUpdateProfileParams validates only the fields present; a single
// violation aborts the entire update.
func validateUpdateProfileParams(params *types.UpdateProfileParams) *types.ValidationError {
	ve := &types.ValidationError{}

	trimPtr(params.Name)
	trimPtr(params.Location)
	trimPtr(params.Img)
	for i := range params.Tags {
		params.Tags[i] = strings.TrimSpace(params.Tags[i])
	}
	trimPtr(params.Title)
	trimPtr(params.ShortContent)
	trimPtr(params.MetaTitle)
	trimPtr(params.MetaKeywords)
	trimPtr(params.MetaDescription)

	if params.Name != nil && *params.Name == "" {
		ve.Add("name", "must not be empty")
	}
	if params.Age != nil {
		checkAge(ve, *params.Age)
	}
	if params.Location != nil && *params.Location == "" {
		ve.Add("location", "must not be empty")
	}
	if params.Img != nil && *params.Img == "" {
		ve.Add("img", "must not be empty")
	}
	checkStatus(ve, params.Status)
	checkRating(ve, params.Rating)
	checkMaxLen(ve, "title", params.Title, maxTitleLen)
	checkMaxLen(ve, "shortContent", params.ShortContent, maxShortContentLen)
	checkMaxLen(ve, "metaTitle", params.MetaTitle, maxMetaTitleLen)
	checkMaxLen(ve, "metaDescription", params.MetaDescription, maxMetaDescLen)

	if ve.HasViolations() {
		return ve
	}
	return nil
}
