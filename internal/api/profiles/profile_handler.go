package profiles

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/trivixa/listings-api/internal/api"
	"github.com/trivixa/listings-api/internal/api/auth"
	"github.com/trivixa/listings-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GetAllProfiles(w http.ResponseWriter, r *http.Request)
	GetLocations(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
	CreateProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	DeleteProfile(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	profileService ProfileService
	logger         *slog.Logger
}

func NewHandlerImpl(profileService ProfileService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		profileService: profileService,
		logger:         logger,
	}
}

// actorFromContext resolves the authenticated actor stamped by the auth gate.
func (h *HandlerImpl) actorFromContext(w http.ResponseWriter, r *http.Request, l *slog.Logger) (uuid.UUID, bool) {
	ctx := r.Context()
	actorIDStr, ok := auth.GetUserIDFromContext(ctx)
	if !ok || actorIDStr == "" {
		l.WarnContext(ctx, "Actor ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	actorID, err := uuid.Parse(actorIDStr)
	if err != nil {
		l.ErrorContext(ctx, "Invalid actor ID format in context", slog.String("actor_id", actorIDStr), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Invalid user session")
		return uuid.Nil, false
	}
	return actorID, true
}

// GetAllProfiles handles GET /profiles - the public paginated listing.
func (h *HandlerImpl) GetAllProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "GetAllProfiles", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/profiles"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetAllProfiles"))

	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 1 {
		limit = types.DefaultLimit
	}
	filter := types.ProfileFilter{
		Location: q.Get("location"),
		Status:   q.Get("status"),
	}

	result, err := h.profileService.ListProfiles(ctx, filter, page, limit)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list profiles", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.DomainErrorResponse(w, r, err, "Failed to retrieve profiles")
		return
	}

	span.SetStatus(codes.Ok, "Profiles listed")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"results": len(result.Profiles),
		"total":   result.Total,
		"data": map[string]interface{}{
			"profiles": result.Profiles,
		},
	})
}

// GetLocations handles GET /profiles/locations - the city filter facet.
func (h *HandlerImpl) GetLocations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "GetLocations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/profiles/locations"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetLocations"))

	locations, err := h.profileService.GetLocations(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch locations", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.DomainErrorResponse(w, r, err, "Failed to retrieve locations")
		return
	}

	span.SetStatus(codes.Ok, "Locations fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"locations": locations,
		},
	})
}

// GetProfile handles GET /profiles/{profileID}.
func (h *HandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "GetProfile", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/profiles/{profileID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetProfile"))

	profileID, err := uuid.Parse(chi.URLParam(r, "profileID"))
	if err != nil {
		l.WarnContext(ctx, "Invalid profile ID format", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid profile ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid profile ID format")
		return
	}

	profile, err := h.profileService.GetProfile(ctx, profileID)
	if err != nil {
		l.WarnContext(ctx, "Failed to fetch profile", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.DomainErrorResponse(w, r, err, "Failed to retrieve profile")
		return
	}

	span.SetStatus(codes.Ok, "Profile fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"profile": profile,
		},
	})
}

// CreateProfile handles POST /profiles (admin only).
func (h *HandlerImpl) CreateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "CreateProfile", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/profiles"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreateProfile"))

	actorID, ok := h.actorFromContext(w, r, l)
	if !ok {
		span.SetStatus(codes.Error, "Authentication required")
		return
	}

	var params types.CreateProfileParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.WarnContext(ctx, "Failed to decode create request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profileService.CreateProfile(ctx, params, actorID)
	if err != nil {
		l.WarnContext(ctx, "Failed to create profile", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.DomainErrorResponse(w, r, err, "Failed to create profile")
		return
	}

	span.SetStatus(codes.Ok, "Profile created")
	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"profile": profile,
		},
	})
}

// UpdateProfile handles PATCH /profiles/{profileID} (admin only).
func (h *HandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "UpdateProfile", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/profiles/{profileID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "UpdateProfile"))

	actorID, ok := h.actorFromContext(w, r, l)
	if !ok {
		span.SetStatus(codes.Error, "Authentication required")
		return
	}

	profileID, err := uuid.Parse(chi.URLParam(r, "profileID"))
	if err != nil {
		l.WarnContext(ctx, "Invalid profile ID format", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid profile ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid profile ID format")
		return
	}

	var params types.UpdateProfileParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.WarnContext(ctx, "Failed to decode update request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profileService.UpdateProfile(ctx, profileID, params, actorID)
	if err != nil {
		l.WarnContext(ctx, "Failed to update profile", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.DomainErrorResponse(w, r, err, "Failed to update profile")
		return
	}

	span.SetStatus(codes.Ok, "Profile updated")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"profile": profile,
		},
	})
}

// DeleteProfile handles DELETE /profiles/{profileID} (admin only, soft).
func (h *HandlerImpl) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "DeleteProfile", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/profiles/{profileID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "DeleteProfile"))

	actorID, ok := h.actorFromContext(w, r, l)
	if !ok {
		span.SetStatus(codes.Error, "Authentication required")
		return
	}

	profileID, err := uuid.Parse(chi.URLParam(r, "profileID"))
	if err != nil {
		l.WarnContext(ctx, "Invalid profile ID format", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid profile ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid profile ID format")
		return
	}

	if err := h.profileService.DeleteProfile(ctx, profileID, actorID); err != nil {
		l.WarnContext(ctx, "Failed to delete profile", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.DomainErrorResponse(w, r, err, "Failed to delete profile")
		return
	}

	span.SetStatus(codes.Ok, "Profile deleted")
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
