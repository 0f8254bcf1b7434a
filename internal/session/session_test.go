package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanager/internal/api"
	"eventmanager/internal/prefs"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(prefs.NewMemoryStore())
}

func makeToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func TestManager_SaveAndReadSession(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	loggedIn, err := m.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	user := api.UserData{ID: "1", Name: "Alice", Email: "a@x.com", Role: "admin"}
	require.NoError(t, m.SaveLoginSession(ctx, "acc", "ref", user))

	loggedIn, err = m.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)

	access, err := m.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acc", access)

	refresh, err := m.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ref", refresh)

	cur, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "a@x.com", cur.Email)

	isAdmin, err := m.IsAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestManager_Logout(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.SaveLoginSession(ctx, "acc", "ref", api.UserData{ID: "1"}))
	require.NoError(t, m.Logout(ctx))

	loggedIn, err := m.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	access, err := m.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, access)

	cur, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestManager_IsAdmin_NoSession(t *testing.T) {
	m := newManager(t)

	isAdmin, err := m.IsAdmin(context.Background())
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestManager_AccessTokenExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "no token", token: "", want: true},
		{name: "garbage token", token: "not-a-jwt", want: true},
		{name: "live token", token: "", want: false},  // filled below
		{name: "stale token", token: "", want: true}, // filled below
	}
	tests[2].token = makeToken(t, now.Add(time.Hour))
	tests[3].token = makeToken(t, now.Add(-time.Hour))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager(t)
			ctx := context.Background()
			if tt.token != "" {
				require.NoError(t, m.SaveLoginSession(ctx, tt.token, "ref", api.UserData{}))
			}

			expired, err := m.AccessTokenExpired(ctx, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expired)
		})
	}
}
