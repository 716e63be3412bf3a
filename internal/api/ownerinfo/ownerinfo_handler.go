package ownerinfo

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/trivixa/listings-api/internal/api"
	"github.com/trivixa/listings-api/internal/api/auth"
	"github.com/trivixa/listings-api/internal/types"
)

// HandlerImpl serves the owner contact card straight from the repository;
// there is no business logic worth a service layer here.
type HandlerImpl struct {
	repo   OwnerInfoRepo
	logger *slog.Logger
}

func NewHandlerImpl(repo OwnerInfoRepo, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		repo:   repo,
		logger: logger,
	}
}

// GetOwnerInfo handles GET /owner-info.
func (h *HandlerImpl) GetOwnerInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("OwnerInfoHandler").Start(r.Context(), "GetOwnerInfo")
	defer span.End()

	info, err := h.repo.Get(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to fetch owner info", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.DomainErrorResponse(w, r, err, "Failed to retrieve owner info")
		return
	}

	span.SetStatus(codes.Ok, "Owner info fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"owner": info,
		},
	})
}

// UpdateOwnerInfo handles PUT /owner-info (admin only).
func (h *HandlerImpl) UpdateOwnerInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("OwnerInfoHandler").Start(r.Context(), "UpdateOwnerInfo")
	defer span.End()

	l := h.logger.With(slog.String("handler", "UpdateOwnerInfo"))

	actorIDStr, ok := auth.GetUserIDFromContext(ctx)
	if !ok || actorIDStr == "" {
		l.WarnContext(ctx, "Actor ID not found in context")
		span.SetStatus(codes.Error, "Authentication required")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	actorID, err := uuid.Parse(actorIDStr)
	if err != nil {
		l.ErrorContext(ctx, "Invalid actor ID format in context", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid actor ID")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Invalid user session")
		return
	}

	var params types.UpdateOwnerInfoParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.WarnContext(ctx, "Failed to decode owner info request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	info, err := h.repo.Upsert(ctx, params, actorID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to update owner info", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.DomainErrorResponse(w, r, err, "Failed to update owner info")
		return
	}

	span.SetStatus(codes.Ok, "Owner info updated")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"owner": info,
		},
	})
}
