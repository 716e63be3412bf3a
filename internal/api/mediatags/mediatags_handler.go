package mediatags

import (
	"log/slog"
	"net/http"

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

type HandlerImpl struct {
	tagsService MediaTagsService
	logger      *slog.Logger
}

func NewHandlerImpl(tagsService MediaTagsService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		tagsService: tagsService,
		logger:      logger,
	}
}

func (h *HandlerImpl) actorFromContext(w http.ResponseWriter, r *http.Request, l *slog.Logger) (uuid.UUID, bool) {
	actorIDStr, ok := auth.GetUserIDFromContext(r.Context())
	if !ok || actorIDStr == "" {
		l.WarnContext(r.Context(), "Actor ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	actorID, err := uuid.Parse(actorIDStr)
	if err != nil {
		l.ErrorContext(r.Context(), "Invalid actor ID format in context", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Invalid user session")
		return uuid.Nil, false
	}
	return actorID, true
}

// GetTags handles GET /media-tags.
func (h *HandlerImpl) GetTags(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("MediaTagsHandler").Start(r.Context(), "GetTags", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/media-tags"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetTags"))

	tags, err := h.tagsService.GetTags(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch media tags", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.DomainErrorResponse(w, r, err, "Failed to retrieve media tags")
		return
	}

	span.SetStatus(codes.Ok, "Media tags fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"tags": tags,
		},
	})
}

// CreateTag handles POST /media-tags (admin only).
func (h *HandlerImpl) CreateTag(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("MediaTagsHandler").Start(r.Context(), "CreateTag", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/media-tags"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreateTag"))

	actorID, ok := h.actorFromContext(w, r, l)
	if !ok {
		span.SetStatus(codes.Error, "Authentication required")
		return
	}

	var params types.CreateMediaTagParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.WarnContext(ctx, "Failed to decode create request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.tagsService.CreateTag(ctx, params, actorID)
	if err != nil {
		l.WarnContext(ctx, "Failed to create media tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.DomainErrorResponse(w, r, err, "Failed to create media tag")
		return
	}

	span.SetStatus(codes.Ok, "Media tag created")
	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"tag": tag,
		},
	})
}

// UpdateTag handles PATCH /media-tags/{tagID} (admin only).
func (h *HandlerImpl) UpdateTag(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("MediaTagsHandler").Start(r.Context(), "UpdateTag", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/media-tags/{tagID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "UpdateTag"))

	actorID, ok := h.actorFromContext(w, r, l)
	if !ok {
		span.SetStatus(codes.Error, "Authentication required")
		return
	}

	tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
	if err != nil {
		l.WarnContext(ctx, "Invalid tag ID format", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid tag ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid tag ID format")
		return
	}

	var params types.UpdateMediaTagParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.WarnContext(ctx, "Failed to decode update request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.tagsService.UpdateTag(ctx, tagID, params, actorID)
	if err != nil {
		l.WarnContext(ctx, "Failed to update media tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.DomainErrorResponse(w, r, err, "Failed to update media tag")
		return
	}

	span.SetStatus(codes.Ok, "Media tag updated")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"tag": tag,
		},
	})
}

// DeleteTag handles DELETE /media-tags/{tagID} (admin only, soft).
func (h *HandlerImpl) DeleteTag(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("MediaTagsHandler").Start(r.Context(), "DeleteTag", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/media-tags/{tagID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "DeleteTag"))

	actorID, ok := h.actorFromContext(w, r, l)
	if !ok {
		span.SetStatus(codes.Error, "Authentication required")
		return
	}

	tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
	if err != nil {
		l.WarnContext(ctx, "Invalid tag ID format", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid tag ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid tag ID format")
		return
	}

	if err := h.tagsService.DeleteTag(ctx, tagID, actorID); err != nil {
		l.WarnContext(ctx, "Failed to delete media tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.DomainErrorResponse(w, r, err, "Failed to delete media tag")
		return
	}

	span.SetStatus(codes.Ok, "Media tag deleted")
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
