package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/trivixa/listings-api/internal/api"
	"github.com/trivixa/listings-api/internal/types"
)

type HandlerImpl struct {
	authService AuthService
	logger      *slog.Logger
}

func NewAuthHandlerImpl(authService AuthService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		authService: authService,
		logger:      logger,
	}
}

// Login handles POST /auth/login.
func (h *HandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Login", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/auth/login"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Login"))

	var req types.LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode login request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		l.WarnContext(ctx, "Missing credentials in login request")
		span.SetStatus(codes.Error, "Missing credentials")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.WarnContext(ctx, "Login failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Login failed")
		api.DomainErrorResponse(w, r, err, "Login failed")
		return
	}

	span.SetStatus(codes.Ok, "Login successful")
	api.WriteJSONResponse(w, r, http.StatusOK, types.LoginResponse{
		AccessToken: token,
		Message:     "Login successful",
	})
}
