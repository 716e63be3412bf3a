package mediatags

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trivixa/listings-api/internal/types"
)

// MockMediaTagsRepo is a mock implementation of the MediaTagsRepo interface
type MockMediaTagsRepo struct {
	mock.Mock
}

func (m *MockMediaTagsRepo) GetAll(ctx context.Context) ([]types.MediaTag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.MediaTag), args.Error(1)
}

func (m *MockMediaTagsRepo) Create(ctx context.Context, tag types.MediaTag) (*types.MediaTag, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MediaTag), args.Error(1)
}

func (m *MockMediaTagsRepo) Update(ctx context.Context, tagID uuid.UUID, params types.UpdateMediaTagParams, slug *string, actorID uuid.UUID) (*types.MediaTag, error) {
	args := m.Called(ctx, tagID, params, slug, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MediaTag), args.Error(1)
}

func (m *MockMediaTagsRepo) SoftDelete(ctx context.Context, tagID uuid.UUID, actorID uuid.UUID) error {
	args := m.Called(ctx, tagID, actorID)
	return args.Error(0)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"Lowercases", "Beach Party", "beach-party"},
		{"StripsPunctuation", "Rock & Roll!", "rock-roll"},
		{"CollapsesWhitespace", "a   b \t c", "a-b-c"},
		{"CollapsesHyphens", "pre--release", "pre-release"},
		{"TrimsEdgeHyphens", " -edge case- ", "edge-case"},
		{"AlreadyClean", "studio", "studio"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestCreateTag(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("DerivesSlugFromName", func(t *testing.T) {
		mockRepo := new(MockMediaTagsRepo)
		service := NewMediaTagsService(mockRepo, slog.Default())

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(tag types.MediaTag) bool {
			return tag.Name == "Beach Party" && tag.Slug == "beach-party" && tag.MediaFiles != nil
		})).Return(&types.MediaTag{ID: uuid.New(), Slug: "beach-party"}, nil).Once()

		created, err := service.CreateTag(ctx, types.CreateMediaTagParams{Name: "Beach Party"}, actorID)
		require.NoError(t, err)
		assert.Equal(t, "beach-party", created.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		mockRepo := new(MockMediaTagsRepo)
		service := NewMediaTagsService(mockRepo, slog.Default())

		created, err := service.CreateTag(ctx, types.CreateMediaTagParams{Name: "   "}, actorID)
		assert.Nil(t, created)
		var ve *types.ValidationError
		assert.ErrorAs(t, err, &ve)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ConflictPassesThrough", func(t *testing.T) {
		mockRepo := new(MockMediaTagsRepo)
		service := NewMediaTagsService(mockRepo, slog.Default())

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("types.MediaTag")).
			Return(nil, types.ErrConflict).Once()

		created, err := service.CreateTag(ctx, types.CreateMediaTagParams{Name: "Studio"}, actorID)
		assert.Nil(t, created)
		assert.ErrorIs(t, err, types.ErrConflict)
	})
}

func TestUpdateTag(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()
	tagID := uuid.New()

	t.Run("RenameRederivesSlug", func(t *testing.T) {
		mockRepo := new(MockMediaTagsRepo)
		service := NewMediaTagsService(mockRepo, slog.Default())

		newName := "Night Life"
		params := types.UpdateMediaTagParams{Name: &newName}

		mockRepo.On("Update", mock.Anything, tagID, params, mock.MatchedBy(func(slug *string) bool {
			return slug != nil && *slug == "night-life"
		}), actorID).Return(&types.MediaTag{ID: tagID, Slug: "night-life"}, nil).Once()

		updated, err := service.UpdateTag(ctx, tagID, params, actorID)
		require.NoError(t, err)
		assert.Equal(t, "night-life", updated.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NoRenameKeepsSlug", func(t *testing.T) {
		mockRepo := new(MockMediaTagsRepo)
		service := NewMediaTagsService(mockRepo, slog.Default())

		desc := "updated description"
		params := types.UpdateMediaTagParams{Description: &desc}

		mockRepo.On("Update", mock.Anything, tagID, params, (*string)(nil), actorID).
			Return(&types.MediaTag{ID: tagID, Slug: "studio"}, nil).Once()

		_, err := service.UpdateTag(ctx, tagID, params, actorID)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
