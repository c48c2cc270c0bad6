package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockdeck/stockdeck/internal/domain"
)

func TestSignInPersistsAcrossRestart(t *testing.T) {
	home := t.TempDir()
	store := NewStore(home)
	id := domain.Identity{Name: "Maya", Email: "maya@example.com", Role: domain.RoleManager}
	require.NoError(t, store.SignIn(id, "tok-123"))

	reopened := NewStore(home)
	require.NoError(t, reopened.Restore())
	got, ok := reopened.Identity()
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, "tok-123", reopened.Token())
}

func TestClearRemovesPersistedState(t *testing.T) {
	home := t.TempDir()
	store := NewStore(home)
	require.NoError(t, store.SignIn(domain.Identity{Name: "A", Email: "a", Role: domain.RoleAdmin}, "tok"))
	require.NoError(t, store.Clear())

	assert.False(t, store.SignedIn())
	assert.Empty(t, store.Token())
	_, err := os.Stat(filepath.Join(home, stateFileName))
	assert.True(t, os.IsNotExist(err))

	reopened := NewStore(home)
	require.NoError(t, reopened.Restore())
	assert.False(t, reopened.SignedIn())
}

func TestRestoreDiscardsCorruptState(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, stateFileName), []byte("{not json"), 0o600))
	store := NewStore(home)
	require.NoError(t, store.Restore())
	assert.False(t, store.SignedIn())
}

func TestSignInRejectsInvalidInput(t *testing.T) {
	store := NewStore(t.TempDir())
	assert.Error(t, store.SignIn(domain.Identity{Role: domain.RoleAdmin}, ""))
	assert.Error(t, store.SignIn(domain.Identity{Role: "root"}, "tok"))
}

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestIdentityFromToken(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{"user_id": 4, "role": "manager"})
	id, err := IdentityFromToken(token, "maya@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, id.Role)
	assert.Equal(t, "maya@example.com", id.Email)
	assert.Equal(t, "maya@example.com", id.Name)
}

func TestIdentityFromTokenPrefersNameClaim(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{"user_id": 1, "role": "admin", "name": "Arushi"})
	id, err := IdentityFromToken(token, "aru123")
	require.NoError(t, err)
	assert.Equal(t, "Arushi", id.Name)
	assert.Equal(t, domain.RoleAdmin, id.Role)
}

func TestIdentityFromTokenRequiresRole(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{"user_id": 2})
	_, err := IdentityFromToken(token, "someone")
	assert.Error(t, err)

	_, err = IdentityFromToken("not-a-token", "someone")
	assert.Error(t, err)
}
