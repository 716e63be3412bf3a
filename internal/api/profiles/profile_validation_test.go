package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trivixa/listings-api/internal/types"
)

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func validCreateParams() types.CreateProfileParams {
	return types.CreateProfileParams{
		Name:     "Alice",
		Age:      30,
		Location: "Berlin",
		Img:      "https://cdn.example.com/alice.jpg",
	}
}

func fieldNames(ve *types.ValidationError) []string {
	names := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestValidateCreateProfileParams(t *testing.T) {
	t.Run("ValidMinimal", func(t *testing.T) {
		params := validCreateParams()
		assert.Nil(t, validateCreateProfileParams(&params))
	})

	t.Run("RequiredFields", func(t *testing.T) {
		params := types.CreateProfileParams{Age: 30}
		ve := validateCreateProfileParams(&params)
		require.NotNil(t, ve)
		assert.ElementsMatch(t, []string{"name", "location", "img"}, fieldNames(ve))
	})

	t.Run("AgeBounds", func(t *testing.T) {
		for _, age := range []int{17, 101, 0, -1} {
			params := validCreateParams()
			params.Age = age
			ve := validateCreateProfileParams(&params)
			require.NotNil(t, ve, "age %d should be rejected", age)
			assert.Contains(t, fieldNames(ve), "age")
		}
		for _, age := range []int{18, 100, 55} {
			params := validCreateParams()
			params.Age = age
			assert.Nil(t, validateCreateProfileParams(&params), "age %d should be accepted", age)
		}
	})

	t.Run("StatusEnum", func(t *testing.T) {
		params := validCreateParams()
		params.Status = strPtr("Busy")
		ve := validateCreateProfileParams(&params)
		require.NotNil(t, ve)
		assert.Contains(t, fieldNames(ve), "status")

		params = validCreateParams()
		params.Status = strPtr(types.StatusOffline)
		assert.Nil(t, validateCreateProfileParams(&params))
	})

	t.Run("RatingBounds", func(t *testing.T) {
		params := validCreateParams()
		params.Rating = floatPtr(5.1)
		ve := validateCreateProfileParams(&params)
		require.NotNil(t, ve)
		assert.Contains(t, fieldNames(ve), "rating")

		params = validCreateParams()
		params.Rating = floatPtr(-0.1)
		require.NotNil(t, validateCreateProfileParams(&params))

		params = validCreateParams()
		params.Rating = floatPtr(0)
		assert.Nil(t, validateCreateProfileParams(&params))
		params.Rating = floatPtr(5)
		assert.Nil(t, validateCreateProfileParams(&params))
	})

	t.Run("SeoLengthCeilings", func(t *testing.T) {
		long := func(n int) string {
			b := make([]byte, n)
			for i := range b {
				b[i] = 'x'
			}
			return string(b)
		}

		params := validCreateParams()
		params.Title = strPtr(long(201))
		params.ShortContent = strPtr(long(151))
		params.MetaTitle = strPtr(long(61))
		params.MetaDescription = strPtr(long(161))
		ve := validateCreateProfileParams(&params)
		require.NotNil(t, ve)
		assert.ElementsMatch(t, []string{"title", "shortContent", "metaTitle", "metaDescription"}, fieldNames(ve))

		params = validCreateParams()
		params.Title = strPtr(long(200))
		params.ShortContent = strPtr(long(150))
		params.MetaTitle = strPtr(long(60))
		params.MetaDescription = strPtr(long(160))
		assert.Nil(t, validateCreateProfileParams(&params))
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		params := validCreateParams()
		params.Name = "  Alice  "
		params.Location = " Berlin "
		params.Tags = []string{" vip ", "new"}
		require.Nil(t, validateCreateProfileParams(&params))
		assert.Equal(t, "Alice", params.Name)
		assert.Equal(t, "Berlin", params.Location)
		assert.Equal(t, []string{"vip", "new"}, params.Tags)
	})

	t.Run("WhitespaceOnlyNameRejected", func(t *testing.T) {
		params := validCreateParams()
		params.Name = "   "
		ve := validateCreateProfileParams(&params)
		require.NotNil(t, ve)
		assert.Contains(t, fieldNames(ve), "name")
	})
}

func TestValidateUpdateProfileParams(t *testing.T) {
	t.Run("EmptyUpdateIsValid", func(t *testing.T) {
		params := types.UpdateProfileParams{}
		assert.Nil(t, validateUpdateProfileParams(&params))
	})

	t.Run("OnlyPresentFieldsChecked", func(t *testing.T) {
		params := types.UpdateProfileParams{Age: intPtr(17)}
		ve := validateUpdateProfileParams(&params)
		require.NotNil(t, ve)
		assert.Equal(t, []string{"age"}, fieldNames(ve))
	})

	t.Run("PresentFieldsMustNotBeEmpty", func(t *testing.T) {
		params := types.UpdateProfileParams{
			Name:     strPtr("  "),
			Location: strPtr(""),
			Img:      strPtr(" "),
		}
		ve := validateUpdateProfileParams(&params)
		require.NotNil(t, ve)
		assert.ElementsMatch(t, []string{"name", "location", "img"}, fieldNames(ve))
	})

	t.Run("ValidPartialUpdate", func(t *testing.T) {
		params := types.UpdateProfileParams{
			Name:   strPtr(" Bob "),
			Status: strPtr(types.StatusOffline),
			Rating: floatPtr(3.5),
		}
		require.Nil(t, validateUpdateProfileParams(&params))
		assert.Equal(t, "Bob", *params.Name)
	})
}
