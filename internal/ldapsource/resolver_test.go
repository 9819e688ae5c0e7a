package ldapsource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Mamut3D/foremanctl/internal/common/errors"
)

func TestResolveIDsInOrder(t *testing.T) {
	known := map[string]int{"Alpha": 10, "Beta": 20, "Gamma": 30}
	var calls []string

	ids, err := resolveIDs(context.Background(), kindOrganization, []string{"Gamma", "Alpha", "Beta"},
		func(_ context.Context, name string) (int, bool, error) {
			calls = append(calls, name)
			id, ok := known[name]
			return id, ok, nil
		})

	require.NoError(t, err)
	assert.Equal(t, []int{30, 10, 20}, ids)
	assert.Equal(t, []string{"Gamma", "Alpha", "Beta"}, calls)
}

func TestResolveIDsEmptyInput(t *testing.T) {
	ids, err := resolveIDs(context.Background(), kindLocation, []string{},
		func(_ context.Context, _ string) (int, bool, error) {
			t.Fatal("lookup must not be called for empty input")
			return 0, false, nil
		})

	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestResolveIDsFailFastOnMissing(t *testing.T) {
	var calls []string

	_, err := resolveIDs(context.Background(), kindOrganization, []string{"Alpha", "DoesNotExist", "Beta"},
		func(_ context.Context, name string) (int, bool, error) {
			calls = append(calls, name)
			if name == "Alpha" {
				return 10, true, nil
			}
			return 0, false, nil
		})

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorCode(err, apperrors.ErrNotFound))

	appErr := err.(*apperrors.AppError)
	assert.Equal(t, "organization", appErr.Metadata["kind"])
	assert.Equal(t, "DoesNotExist", appErr.Metadata["name"])
	assert.Contains(t, appErr.Error(), "DoesNotExist")

	// resolution stops at the first miss
	assert.Equal(t, []string{"Alpha", "DoesNotExist"}, calls)
}

func TestResolveIDsSurfacesRemoteError(t *testing.T) {
	remoteErr := errors.New("foreman returned 500: something broke")

	_, err := resolveIDs(context.Background(), kindLocation, []string{"Prague"},
		func(_ context.Context, _ string) (int, bool, error) {
			return 0, false, remoteErr
		})

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorCode(err, apperrors.ErrRemoteOperation))

	appErr := err.(*apperrors.AppError)
	assert.Equal(t, "search location", appErr.Metadata["action"])
	assert.Equal(t, "Prague", appErr.Metadata["name"])
	assert.Contains(t, appErr.Error(), "something broke")
	assert.ErrorIs(t, err, remoteErr)
}
