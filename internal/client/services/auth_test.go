package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanager/internal/api"
	"eventmanager/internal/common"
	"eventmanager/internal/localstore"
	"eventmanager/internal/prefs"
	"eventmanager/internal/session"
)

type fixture struct {
	auth    AuthService
	events  EventService
	store   *localstore.Store
	session *session.Manager
}

// newFixture wires the services against the given base URL and a fresh
// in-memory store.
func newFixture(baseURL string) *fixture {
	p := prefs.NewMemoryStore()
	store := localstore.New(p)
	sess := session.NewManager(p)
	client := api.NewClient(baseURL, time.Second)
	return &fixture{
		auth:    NewAuthService(client, store, sess),
		events:  NewEventService(client, store),
		store:   store,
		session: sess,
	}
}

// unreachableURL returns a URL nothing listens on, so every request fails
// with api.ErrUnavailable.
func unreachableURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func TestOnlineLogin_SavesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login/", r.URL.Path)
		json.NewEncoder(w).Encode(api.AuthResponse{
			BaseResponse: api.BaseResponse{Success: true},
			User:         &api.UserData{ID: "7", Name: "Alice", Email: "a@b.co", Role: "student"},
			Tokens:       &api.TokenData{Access: "acc", Refresh: "ref"},
		})
	}))
	defer srv.Close()

	f := newFixture(srv.URL)
	ctx := context.Background()

	user, err := f.auth.OnlineLogin(ctx, "a@b.co", []byte("hunter22"))
	require.NoError(t, err)
	assert.Equal(t, "7", user.ID)

	token, err := f.session.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acc", token)

	acc, err := f.store.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, "7", acc.ID)

	loggedIn, err := f.store.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)
}

func TestOfflineLogin(t *testing.T) {
	f := newFixture(unreachableURL(t))
	ctx := context.Background()

	_, err := f.store.RegisterUser(ctx, "Alice", "a@b.co", "hunter22", "")
	require.NoError(t, err)

	acc, err := f.auth.OfflineLogin(ctx, "a@b.co", []byte("hunter22"))
	require.NoError(t, err)
	assert.Equal(t, "Alice", acc.Name)

	current, err := f.store.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, acc.ID, current.ID)
}

func TestOfflineLogin_WrongPassword(t *testing.T) {
	f := newFixture(unreachableURL(t))
	ctx := context.Background()

	_, err := f.store.RegisterUser(ctx, "Alice", "a@b.co", "hunter22", "")
	require.NoError(t, err)

	_, err = f.auth.OfflineLogin(ctx, "a@b.co", []byte("wrong"))
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestOfflineRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(unreachableURL(t))
	ctx := context.Background()

	_, err := f.auth.OfflineRegister(ctx, "Alice", "a@b.co", []byte("hunter22"))
	require.NoError(t, err)

	_, err = f.auth.OfflineRegister(ctx, "Alice Again", "a@b.co", []byte("hunter23"))
	assert.ErrorIs(t, err, common.ErrAlreadyRegistered)
}

func TestPasswordResetFlow_Offline(t *testing.T) {
	f := newFixture(unreachableURL(t))
	ctx := context.Background()

	_, err := f.auth.OfflineRegister(ctx, "Alice", "a@b.co", []byte("hunter22"))
	require.NoError(t, err)

	require.NoError(t, f.auth.RequestPasswordReset(ctx, "a@b.co"))
	require.NoError(t, f.auth.VerifyResetCode(ctx, "a@b.co", localstore.FixedOTPCode))

	// wrong email bound to the slot
	err = f.auth.VerifyResetCode(ctx, "other@b.co", localstore.FixedOTPCode)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	require.NoError(t, f.auth.ResetPassword(ctx, "a@b.co", localstore.FixedOTPCode, []byte("brandnewpw")))

	_, err = f.auth.OfflineLogin(ctx, "a@b.co", []byte("brandnewpw"))
	assert.NoError(t, err)
}

func TestRequestPasswordReset_UnknownEmailOffline(t *testing.T) {
	f := newFixture(unreachableURL(t))

	err := f.auth.RequestPasswordReset(context.Background(), "nobody@b.co")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestChangePassword_Offline(t *testing.T) {
	f := newFixture(unreachableURL(t))
	ctx := context.Background()

	_, err := f.auth.OfflineRegister(ctx, "Alice", "a@b.co", []byte("hunter22"))
	require.NoError(t, err)

	err = f.auth.ChangePassword(ctx, []byte("wrong"), []byte("brandnewpw"))
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	require.NoError(t, f.auth.ChangePassword(ctx, []byte("hunter22"), []byte("brandnewpw")))

	_, err = f.auth.OfflineLogin(ctx, "a@b.co", []byte("brandnewpw"))
	assert.NoError(t, err)
}

func TestLogout(t *testing.T) {
	f := newFixture(unreachableURL(t))
	ctx := context.Background()

	_, err := f.auth.OfflineRegister(ctx, "Alice", "a@b.co", []byte("hunter22"))
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx))

	acc, err := f.auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, acc)

	loggedIn, err := f.store.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	// account data survives
	exists, err := f.store.UserExists(ctx, "a@b.co")
	require.NoError(t, err)
	assert.True(t, exists)
}
