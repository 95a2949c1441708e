package detect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ccjmqdzj/sensitive-info-scanner/internal/types"
)

func TestActiveSpecs_CanonicalOrder(t *testing.T) {
	r := NewRegistry(DefaultOptions())

	// Request order does not matter; specs come back in canonical order and
	// duplicates collapse.
	specs, err := r.ActiveSpecs([]types.Category{types.CatEmail, types.CatPhone, types.CatPhone})
	require.NoError(t, err)
	require.Len(t, specs, 2)
	require.Equal(t, types.CatPhone, specs[0].Category)
	require.Equal(t, types.CatEmail, specs[1].Category)
}

func TestActiveSpecs_UnknownCategory(t *testing.T) {
	r := NewRegistry(DefaultOptions())
	_, err := r.ActiveSpecs([]types.Category{types.CatPhone, "ssn"})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownCategory))
	require.Contains(t, err.Error(), "ssn")
}

func TestParseCategories(t *testing.T) {
	cats, err := ParseCategories(nil)
	require.NoError(t, err)
	require.Equal(t, types.Categories(), cats, "empty request means everything")

	cats, err = ParseCategories([]string{"all"})
	require.NoError(t, err)
	require.Equal(t, types.Categories(), cats)

	cats, err = ParseCategories([]string{"phone", "id_card"})
	require.NoError(t, err)
	require.Equal(t, []types.Category{types.CatPhone, types.CatIDCard}, cats)

	_, err = ParseCategories([]string{"phone", "passport"})
	require.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestNewRegistry_DefaultsFilledIn(t *testing.T) {
	r := NewRegistry(Options{})
	require.Equal(t, 20, r.Options().ContextWindow)
	require.NotEmpty(t, r.Options().Labels[types.CatPhone])
	require.Equal(t, 0.7, r.Options().Scores.Shape)
}
