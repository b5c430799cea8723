package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awsomeshop/awsomeshop/internal/model"
)

func TestManager_HydratesFromStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	NewStore(dir, nil).SetSession("tok", testUser())

	m := NewManager(NewStore(dir, nil))
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "employee", m.Role())

	u, ok := m.User()
	require.True(t, ok)
	assert.Equal(t, testUser(), u)
}

func TestManager_EmptyStoreMeansAnonymous(t *testing.T) {
	t.Parallel()

	m := NewManager(NewStore(t.TempDir(), nil))
	assert.False(t, m.IsAuthenticated())
	assert.Equal(t, "", m.Role())

	_, ok := m.User()
	assert.False(t, ok)
}

func TestManager_LoginWritesThrough(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(dir, nil)
	m := NewManager(store)

	m.Login("tok", testUser())
	assert.True(t, m.IsAuthenticated())

	// the session survives a restart
	m2 := NewManager(NewStore(dir, nil))
	assert.True(t, m2.IsAuthenticated())
}

func TestManager_LogoutIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir(), nil)
	m := NewManager(store)
	m.Login("tok", testUser())

	m.Logout()
	assert.False(t, m.IsAuthenticated())
	_, ok := store.Token()
	assert.False(t, ok)

	// logging out again must not fail or resurrect anything
	m.Logout()
	assert.False(t, m.IsAuthenticated())
}

func TestManager_UpdateUserMergesNonNilFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(dir, nil)
	m := NewManager(store)
	m.Login("tok", testUser())

	balance := 400
	merged, ok := m.UpdateUser(model.UserPatch{PointsBalance: &balance})
	require.True(t, ok)
	assert.Equal(t, 400, merged.PointsBalance)
	assert.Equal(t, testUser().FullName, merged.FullName)
	assert.Equal(t, testUser().Phone, merged.Phone)

	phone := "13800138000"
	merged, ok = m.UpdateUser(model.UserPatch{Phone: &phone})
	require.True(t, ok)
	assert.Equal(t, "13800138000", merged.Phone)
	assert.Equal(t, 400, merged.PointsBalance)

	// the snapshot in the store reflects the merge
	u, ok := NewStore(dir, nil).User()
	require.True(t, ok)
	assert.Equal(t, "13800138000", u.Phone)
	assert.Equal(t, 400, u.PointsBalance)
}

func TestManager_UpdateUserWithoutSession(t *testing.T) {
	t.Parallel()

	m := NewManager(NewStore(t.TempDir(), nil))
	balance := 100
	_, ok := m.UpdateUser(model.UserPatch{PointsBalance: &balance})
	assert.False(t, ok)
}
