package profiles

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/trivixa/listings-api/app/observability/metrics"
	"github.com/trivixa/listings-api/internal/types"
)

var _ ProfileService = (*ProfileServiceImpl)(nil)

// ProfileService defines the business logic contract for profile operations.
type ProfileService interface {
	CreateProfile(ctx context.Context, params types.CreateProfileParams, actorID uuid.UUID) (*types.Profile, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (*types.Profile, error)
	ListProfiles(ctx context.Context, filter types.ProfileFilter, page, limit int) (*types.ProfilePage, error)
	UpdateProfile(ctx context.Context, profileID uuid.UUID, params types.UpdateProfileParams, actorID uuid.UUID) (*types.Profile, error)
	DeleteProfile(ctx context.Context, profileID uuid.UUID, actorID uuid.UUID) error
	GetLocations(ctx context.Context) ([]string, error)
}

const locationsCacheKey = "profile_locations"

type ProfileServiceImpl struct {
	logger     *slog.Logger
	repo       ProfileRepo
	facetCache *gocache.Cache
	appMetrics *metrics.AppMetrics
}

// NewProfileService wires the service. facetCache and appMetrics may be nil;
// both are optional fast paths, never sources of truth.
func NewProfileService(repo ProfileRepo, facetCache *gocache.Cache, appMetrics *metrics.AppMetrics, logger *slog.Logger) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		logger:     logger,
		repo:       repo,
		facetCache: facetCache,
		appMetrics: appMetrics,
	}
}

// invalidateFacets drops cached facet values after any successful write.
func (s *ProfileServiceImpl) invalidateFacets() {
	if s.facetCache != nil {
		s.facetCache.Delete(locationsCacheKey)
	}
}

func (s *ProfileServiceImpl) countWrite(ctx context.Context, op string) {
	if s.appMetrics != nil {
		s.appMetrics.ProfileWritesTotal.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("operation", op)))
	}
}

// CreateProfile validates the full attribute set, applies schema defaults and
// persists a new profile stamped with the creating actor.
func (s *ProfileServiceImpl) CreateProfile(ctx context.Context, params types.CreateProfileParams, actorID uuid.UUID) (*types.Profile, error) {
	ctx, span := otel.Tracer("ProfileService").Start(ctx, "CreateProfile", trace.WithAttributes(
		attribute.String("actor.id", actorID.String()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "CreateProfile"), slog.String("actorID", actorID.String()))
	l.DebugContext(ctx, "Creating profile")

	if ve := validateCreateProfileParams(&params); ve != nil {
		l.WarnContext(ctx, "Profile create rejected by validation", slog.String("violations", ve.Error()))
		span.SetStatus(codes.Error, "Validation failed")
		return nil, ve
	}

	profile := types.Profile{
		Name:            params.Name,
		Age:             params.Age,
		Location:        params.Location,
		Status:          types.StatusOnline,
		Tags:            params.Tags,
		Img:             params.Img,
		Rating:          types.DefaultRating,
		IsActive:        true,
		IsNew:           false,
		Title:           params.Title,
		ShortContent:    params.ShortContent,
		LongContent:     params.LongContent,
		MetaTitle:       params.MetaTitle,
		MetaKeywords:    params.MetaKeywords,
		MetaDescription: params.MetaDescription,
		CreatedBy:       actorID,
	}
	if params.Status != nil {
		profile.Status = *params.Status
	}
	if params.Rating != nil {
		profile.Rating = *params.Rating
	}
	if params.IsActive != nil {
		profile.IsActive = *params.IsActive
	}
	if params.IsNew != nil {
		profile.IsNew = *params.IsNew
	}
	if profile.Tags == nil {
		profile.Tags = []string{}
	}

	created, err := s.repo.CreateProfile(ctx, profile)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create profile", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create profile")
		return nil, fmt.Errorf("error creating profile: %w", err)
	}

	s.invalidateFacets()
	s.countWrite(ctx, "create")
	l.InfoContext(ctx, "Profile created", slog.String("profileID", created.ID.String()))
	span.SetStatus(codes.Ok, "Profile created")
	return created, nil
}

// GetProfile retrieves a single active profile.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context, profileID uuid.UUID) (*types.Profile, error) {
	ctx, span := otel.Tracer("ProfileService").Start(ctx, "GetProfile", trace.WithAttributes(
		attribute.String("profile.id", profileID.String()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GetProfile"), slog.String("profileID", profileID.String()))
	l.DebugContext(ctx, "Fetching profile")

	profile, err := s.repo.GetProfile(ctx, profileID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch profile")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Profile fetched")
	return profile, nil
}

// ListProfiles normalizes pagination and the city sentinel before querying.
func (s *ProfileServiceImpl) ListProfiles(ctx context.Context, filter types.ProfileFilter, page, limit int) (*types.ProfilePage, error) {
	ctx, span := otel.Tracer("ProfileService").Start(ctx, "ListProfiles", trace.WithAttributes(
		attribute.Int("page", page),
		attribute.Int("limit", limit),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "ListProfiles"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = types.DefaultLimit
	}
	// The sentinel means "no location filter", never a literal match.
	if filter.Location == types.AllCitiesSentinel {
		filter.Location = ""
	}

	if s.appMetrics != nil {
		s.appMetrics.ProfileListRequestsTotal.Add(ctx, 1)
	}

	result, err := s.repo.ListProfiles(ctx, filter, page, limit)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list profiles", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list profiles")
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}

	l.DebugContext(ctx, "Profiles listed", slog.Int("results", len(result.Profiles)), slog.Int("total", result.Total))
	span.SetStatus(codes.Ok, "Profiles listed")
	return result, nil
}

// UpdateProfile applies a validated partial update stamped with the actor.
func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, profileID uuid.UUID, params types.UpdateProfileParams, actorID uuid.UUID) (*types.Profile, error) {
	ctx, span := otel.Tracer("ProfileService").Start(ctx, "UpdateProfile", trace.WithAttributes(
		attribute.String("profile.id", profileID.String()),
		attribute.String("actor.id", actorID.String()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "UpdateProfile"), slog.String("profileID", profileID.String()))
	l.DebugContext(ctx, "Updating profile")

	if ve := validateUpdateProfileParams(&params); ve != nil {
		l.WarnContext(ctx, "Profile update rejected by validation", slog.String("violations", ve.Error()))
		span.SetStatus(codes.Error, "Validation failed")
		return nil, ve
	}

	updated, err := s.repo.UpdateProfile(ctx, profileID, params, actorID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update profile")
		return nil, err
	}

	s.invalidateFacets()
	s.countWrite(ctx, "update")
	l.InfoContext(ctx, "Profile updated")
	span.SetStatus(codes.Ok, "Profile updated")
	return updated, nil
}

// DeleteProfile soft-deletes a profile. Deleting an already-inactive profile
// succeeds silently.
func (s *ProfileServiceImpl) DeleteProfile(ctx context.Context, profileID uuid.UUID, actorID uuid.UUID) error {
	ctx, span := otel.Tracer("ProfileService").Start(ctx, "DeleteProfile", trace.WithAttributes(
		attribute.String("profile.id", profileID.String()),
		attribute.String("actor.id", actorID.String()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "DeleteProfile"), slog.String("profileID", profileID.String()))
	l.DebugContext(ctx, "Deleting profile")

	if err := s.repo.SoftDeleteProfile(ctx, profileID, actorID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete profile")
		return err
	}

	s.invalidateFacets()
	s.countWrite(ctx, "delete")
	l.InfoContext(ctx, "Profile deleted")
	span.SetStatus(codes.Ok, "Profile deleted")
	return nil
}

// GetLocations returns the city facet: the "All Cities" sentinel first,
// then every distinct location with at least one active profile.
func (s *ProfileServiceImpl) GetLocations(ctx context.Context) ([]string, error) {
	ctx, span := otel.Tracer("ProfileService").Start(ctx, "GetLocations")
	defer span.End()

	l := s.logger.With(slog.String("method", "GetLocations"))

	if s.facetCache != nil {
		if cached, found := s.facetCache.Get(locationsCacheKey); found {
			if locations, ok := cached.([]string); ok {
				l.DebugContext(ctx, "Locations served from cache", slog.Int("count", len(locations)))
				span.SetStatus(codes.Ok, "Locations served from cache")
				return locations, nil
			}
		}
	}

	distinct, err := s.repo.DistinctLocations(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch locations", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch locations")
		return nil, fmt.Errorf("error fetching locations: %w", err)
	}

	locations := make([]string, 0, len(distinct)+1)
	locations = append(locations, types.AllCitiesSentinel)
	locations = append(locations, distinct...)

	if s.facetCache != nil {
		s.facetCache.Set(locationsCacheKey, locations, gocache.DefaultExpiration)
	}

	l.DebugContext(ctx, "Locations fetched", slog.Int("count", len(locations)))
	span.SetStatus(codes.Ok, "Locations fetched")
	return locations, nil
}
