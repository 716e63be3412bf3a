package mediatags

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/trivixa/listings-api/internal/types"
)

var _ MediaTagsService = (*MediaTagsServiceImpl)(nil)

// MediaTagsService defines the business logic contract for media tags.
type MediaTagsService interface {
	GetTags(ctx context.Context) ([]types.MediaTag, error)
	CreateTag(ctx context.Context, params types.CreateMediaTagParams, actorID uuid.UUID) (*types.MediaTag, error)
	UpdateTag(ctx context.Context, tagID uuid.UUID, params types.UpdateMediaTagParams, actorID uuid.UUID) (*types.MediaTag, error)
	DeleteTag(ctx context.Context, tagID uuid.UUID, actorID uuid.UUID) error
}

const (
	maxTagNameLen = 50
	maxTagDescLen = 200
)

var (
	nonWordChars  = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	hyphenRun     = regexp.MustCompile(`--+`)
)

// Slugify derives the URL slug from a tag name: lowercase, punctuation
// stripped, whitespace collapsed to single hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonWordChars.ReplaceAllString(slug, "")
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = hyphenRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

type MediaTagsServiceImpl struct {
	logger *slog.Logger
	repo   MediaTagsRepo
}

func NewMediaTagsService(repo MediaTagsRepo, logger *slog.Logger) *MediaTagsServiceImpl {
	return &MediaTagsServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *MediaTagsServiceImpl) GetTags(ctx context.Context) ([]types.MediaTag, error) {
	ctx, span := otel.Tracer("MediaTagsService").Start(ctx, "GetTags")
	defer span.End()

	tags, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch media tags", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch media tags")
		return nil, fmt.Errorf("error fetching media tags: %w", err)
	}

	span.SetStatus(codes.Ok, "Media tags fetched")
	return tags, nil
}

func (s *MediaTagsServiceImpl) CreateTag(ctx context.Context, params types.CreateMediaTagParams, actorID uuid.UUID) (*types.MediaTag, error) {
	ctx, span := otel.Tracer("MediaTagsService").Start(ctx, "CreateTag", trace.WithAttributes(
		attribute.String("actor.id", actorID.String()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "CreateTag"), slog.String("actorID", actorID.String()))

	if ve := validateCreateTagParams(&params); ve != nil {
		l.WarnContext(ctx, "Media tag create rejected by validation", slog.String("violations", ve.Error()))
		span.SetStatus(codes.Error, "Validation failed")
		return nil, ve
	}

	tag := types.MediaTag{
		Name:        params.Name,
		Slug:        Slugify(params.Name),
		Description: params.Description,
		MediaFiles:  params.MediaFiles,
		CreatedBy:   actorID,
	}
	if tag.MediaFiles == nil {
		tag.MediaFiles = []string{}
	}

	created, err := s.repo.Create(ctx, tag)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create media tag")
		return nil, err
	}

	l.InfoContext(ctx, "Media tag created", slog.String("tagID", created.ID.String()))
	span.SetStatus(codes.Ok, "Media tag created")
	return created, nil
}

func (s *MediaTagsServiceImpl) UpdateTag(ctx context.Context, tagID uuid.UUID, params types.UpdateMediaTagParams, actorID uuid.UUID) (*types.MediaTag, error) {
	ctx, span := otel.Tracer("MediaTagsService").Start(ctx, "UpdateTag", trace.WithAttributes(
		attribute.String("tag.id", tagID.String()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "UpdateTag"), slog.String("tagID", tagID.String()))

	if ve := validateUpdateTagParams(&params); ve != nil {
		l.WarnContext(ctx, "Media tag update rejected by validation", slog.String("violations", ve.Error()))
		span.SetStatus(codes.Error, "Validation failed")
		return nil, ve
	}

	// Renaming a tag re-derives its slug.
	var slug *string
	if params.Name != nil {
		derived := Slugify(*params.Name)
		slug = &derived
	}

	updated, err := s.repo.Update(ctx, tagID, params, slug, actorID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update media tag")
		return nil, err
	}

	l.InfoContext(ctx, "Media tag updated")
	span.SetStatus(codes.Ok, "Media tag updated")
	return updated, nil
}

func (s *MediaTagsServiceImpl) DeleteTag(ctx context.Context, tagID uuid.UUID, actorID uuid.UUID) error {
	ctx, span := otel.Tracer("MediaTagsService").Start(ctx, "DeleteTag", trace.WithAttributes(
		attribute.String("tag.id", tagID.String()),
	))
	defer span.End()

	if err := s.repo.SoftDelete(ctx, tagID, actorID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete media tag")
		return err
	}

	span.SetStatus(codes.Ok, "Media tag deleted")
	return nil
}

func validateCreateTagParams(params *types.CreateMediaTagParams) *types.ValidationError {
	ve := &types.ValidationError{}

	params.Name = strings.TrimSpace(params.Name)
	if params.Description != nil {
		*params.Description = strings.TrimSpace(*params.Description)
	}

	if params.Name == "" {
		ve.Add("name", "is required")
	} else if utf8.RuneCountInString(params.Name) > maxTagNameLen {
		ve.Add("name", fmt.Sprintf("must be at most %d characters", maxTagNameLen))
	}
	if params.Description != nil && utf8.RuneCountInString(*params.Description) > maxTagDescLen {
		ve.Add("description", fmt.Sprintf("must be at most %d characters", maxTagDescLen))
	}

	if ve.HasViolations() {
		return ve
	}
	return nil
}

func validateUpdateTagParams(params *types.UpdateMediaTagParams) *types.ValidationError {
	ve := &types.ValidationError{}

	if params.Name != nil {
		*params.Name = strings.TrimSpace(*params.Name)
		if *params.Name == "" {
			ve.Add("name", "must not be empty")
		} else if utf8.RuneCountInString(*params.Name) > maxTagNameLen {
			ve.Add("name", fmt.Sprintf("must be at most %d characters", maxTagNameLen))
		}
	}
	if params.Description != nil {
		*params.Description = strings.TrimSpace(*params.Description)
		if utf8.RuneCountInString(*params.Description) > maxTagDescLen {
			ve.Add("description", fmt.Sprintf("must be at most %d characters", maxTagDescLen))
		}
	}

	if ve.HasViolations() {
		return ve
	}
	return nil
}
