package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	dir := t.TempDir()

	stores := make(map[string]Store)

	for _, driver := range []string{DriverBolt, DriverSQLite, DriverMemory} {
		s, err := Open(driver, filepath.Join(dir, driver, "bodie.db"))
		require.NoError(t, err, driver)

		t.Cleanup(func() {
			_ = s.Close()
		})

		stores[driver] = s
	}

	return stores
}

func TestStoreContract(t *testing.T) {
	for driver, s := range openStores(t) {
		t.Run(driver, func(t *testing.T) {
			_, found, err := s.Get(KeyWorkoutCount)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, s.Set(KeyWorkoutCount, "1"))
			require.NoError(t, s.Set(KeyWorkoutCount, "2"))

			v, found, err := s.Get(KeyWorkoutCount)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "2", v)

			require.NoError(t, s.Set(KeyAuthToken, "tok"))
			require.NoError(t, s.Set(KeyUserData, "{}"))

			require.NoError(t, s.RemoveMany(KeyAuthToken, KeyUserData, "missing"))

			_, found, err = s.Get(KeyAuthToken)
			require.NoError(t, err)
			assert.False(t, found)

			v, _, err = s.Get(KeyWorkoutCount)
			require.NoError(t, err)
			assert.Equal(t, "2", v)
		})
	}
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bodie.db")

	s, err := Open(DriverBolt, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(WeightsKey("W1"), `["50","",""]`))
	require.NoError(t, s.Close())

	s, err = Open(DriverBolt, path)
	require.NoError(t, err)

	defer s.Close()

	v, found, err := s.Get(WeightsKey("W1"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `["50","",""]`, v)
}

func TestMemoryClosed(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Close())

	err := m.Set("k", "v")

	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "set", pe.Op)
	assert.ErrorIs(t, err, errClosed)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("redis", filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, errUnknownDriver)
}

func TestWeightsKey(t *testing.T) {
	assert.Equal(t, "weights_W1", WeightsKey("W1"))
}
