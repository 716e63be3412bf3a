package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trivixa/listings-api/internal/api/auth"
	"github.com/trivixa/listings-api/internal/types"
)

// MockProfileService is a mock implementation of the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) CreateProfile(ctx context.Context, params types.CreateProfileParams, actorID uuid.UUID) (*types.Profile, error) {
	args := m.Called(ctx, params, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Profile), args.Error(1)
}

func (m *MockProfileService) GetProfile(ctx context.Context, profileID uuid.UUID) (*types.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Profile), args.Error(1)
}

func (m *MockProfileService) ListProfiles(ctx context.Context, filter types.ProfileFilter, page, limit int) (*types.ProfilePage, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ProfilePage), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, profileID uuid.UUID, params types.UpdateProfileParams, actorID uuid.UUID) (*types.Profile, error) {
	args := m.Called(ctx, profileID, params, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Profile), args.Error(1)
}

func (m *MockProfileService) DeleteProfile(ctx context.Context, profileID uuid.UUID, actorID uuid.UUID) error {
	args := m.Called(ctx, profileID, actorID)
	return args.Error(0)
}

func (m *MockProfileService) GetLocations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withActor(r *http.Request, actorID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), auth.UserIDKey, actorID.String())
	ctx = context.WithValue(ctx, auth.UserRoleKey, types.RoleAdmin)
	return r.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetAllProfilesHandler(t *testing.T) {
	t.Run("EnvelopeFields", func(t *testing.T) {
		mockService := new(MockProfileService)
		handler := NewHandlerImpl(mockService, slog.Default())

		page := &types.ProfilePage{
			Profiles: []types.Profile{
				{ID: uuid.New(), Name: "Alice", Location: "Berlin"},
				{ID: uuid.New(), Name: "Bob", Location: "Lisbon"},
			},
			Total: 17,
		}
		mockService.On("ListProfiles", mock.Anything, types.ProfileFilter{}, 1, types.DefaultLimit).
			Return(page, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/profiles", nil)
		rec := httptest.NewRecorder()
		handler.GetAllProfiles(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "success", body["status"])
		assert.EqualValues(t, 2, body["results"])
		assert.EqualValues(t, 17, body["total"])
		data, ok := body["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Len(t, data["profiles"], 2)
		mockService.AssertExpectations(t)
	})

	t.Run("ParsesQueryParams", func(t *testing.T) {
		mockService := new(MockProfileService)
		handler := NewHandlerImpl(mockService, slog.Default())

		mockService.On("ListProfiles", mock.Anything,
			types.ProfileFilter{Location: "Berlin", Status: types.StatusOnline}, 3, 10).
			Return(&types.ProfilePage{Profiles: []types.Profile{}, Total: 0}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/profiles?page=3&limit=10&location=Berlin&status=Online", nil)
		rec := httptest.NewRecorder()
		handler.GetAllProfiles(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("GarbagePaginationFallsBackToDefaults", func(t *testing.T) {
		mockService := new(MockProfileService)
		handler := NewHandlerImpl(mockService, slog.Default())

		mockService.On("ListProfiles", mock.Anything, types.ProfileFilter{}, 1, types.DefaultLimit).
			Return(&types.ProfilePage{Profiles: []types.Profile{}, Total: 0}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/profiles?page=banana&limit=-3", nil)
		rec := httptest.NewRecorder()
		handler.GetAllProfiles(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestGetLocationsHandler(t *testing.T) {
	mockService := new(MockProfileService)
	handler := NewHandlerImpl(mockService, slog.Default())

	mockService.On("GetLocations", mock.Anything).
		Return([]string{types.AllCitiesSentinel, "Berlin"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/profiles/locations", nil)
	rec := httptest.NewRecorder()
	handler.GetLocations(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	data := body["data"].(map[string]interface{})
	locations := data["locations"].([]interface{})
	require.NotEmpty(t, locations)
	assert.Equal(t, types.AllCitiesSentinel, locations[0])
}

func TestGetProfileHandler(t *testing.T) {
	t.Run("InvalidID", func(t *testing.T) {
		mockService := new(MockProfileService)
		handler := NewHandlerImpl(mockService, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/profiles/not-a-uuid", nil)
		req = withURLParam(req, "profileID", "not-a-uuid")
		rec := httptest.NewRecorder()
		handler.GetProfile(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockProfileService)
		handler := NewHandlerImpl(mockService, slog.Default())
		profileID := uuid.New()

		mockService.On("GetProfile", mock.Anything, profileID).
			Return(nil, types.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/profiles/"+profileID.String(), nil)
		req = withURLParam(req, "profileID", profileID.String())
		rec := httptest.NewRecorder()
		handler.GetProfile(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "error", body["status"])
	})
}

func TestCreateProfileHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockService := new(MockProfileService)
		handler := NewHandlerImpl(mockService, slog.Default())
		actorID := uuid.New()

		stored := &types.Profile{ID: uuid.New(), Name: "Alice"}
		mockService.On("CreateProfile", mock.Anything, mock.AnythingOfType("types.CreateProfileParams"), actorID).
			Return(stored, nil).Once()

		payload := []byte(`{"name":"Alice","age":30,"location":"Berlin","img":"a.jpg"}`)
		req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewReader(payload))
		req = withActor(req, actorID)
		rec := httptest.NewRecorder()
		handler.CreateProfile(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "success", body["status"])
		mockService.AssertExpectations(t)
	})

	t.Run("MissingActor", func(t *testing.T) {
		mockService := new(MockProfileService)
		handler := NewHandlerImpl(mockService, slog.Default())

		payload := []byte(`{"name":"Alice"}`)
		req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.CreateProfile(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockService.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ValidationErrorNamesFields", func(t *testing.T) {
		mockService := new(MockProfileService)
		handler := NewHandlerImpl(mockService, slog.Default())
		actorID := uuid.New()

		ve := &types.ValidationError{}
		ve.Add("age", "must be between 18 and 100")
		mockService.On("CreateProfile", mock.Anything, mock.AnythingOfType("types.CreateProfileParams"), actorID).
			Return(nil, ve).Once()

		payload := []byte(`{"name":"Alice","age":12,"location":"Berlin","img":"a.jpg"}`)
		req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewReader(payload))
		req = withActor(req, actorID)
		rec := httptest.NewRecorder()
		handler.CreateProfile(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "error", body["status"])
		require.Contains(t, body, "fields")
	})

	t.Run("MalformedBody", func(t *testing.T) {
		mockService := new(MockProfileService)
		handler := NewHandlerImpl(mockService, slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewReader([]byte(`{not json`)))
		req = withActor(req, uuid.New())
		rec := httptest.NewRecorder()
		handler.CreateProfile(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteProfileHandler(t *testing.T) {
	t.Run("NoContentOnSuccess", func(t *testing.T) {
		mockService := new(MockProfileService)
		handler := NewHandlerImpl(mockService, slog.Default())
		profileID := uuid.New()
		actorID := uuid.New()

		mockService.On("DeleteProfile", mock.Anything, profileID, actorID).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/profiles/"+profileID.String(), nil)
		req = withActor(req, actorID)
		req = withURLParam(req, "profileID", profileID.String())
		rec := httptest.NewRecorder()
		handler.DeleteProfile(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.Bytes())
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockProfileService)
		handler := NewHandlerImpl(mockService, slog.Default())
		profileID := uuid.New()
		actorID := uuid.New()

		mockService.On("DeleteProfile", mock.Anything, profileID, actorID).
			Return(types.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/profiles/"+profileID.String(), nil)
		req = withActor(req, actorID)
		req = withURLParam(req, "profileID", profileID.String())
		rec := httptest.NewRecorder()
		handler.DeleteProfile(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
