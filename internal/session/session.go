// Package session persists the online login session: the JWT access token,
// the refresh token, and a snapshot of the signed-in user. It shares the
// preference store (and the is_logged_in flag) with the local data store,
// mirroring how the mobile client keeps both in one preference file.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventmanager/internal/api"
	"eventmanager/internal/prefs"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUserData     = "user_data"
	keyIsLoggedIn   = "is_logged_in"
)

// Manager reads and writes the session slots of the preference store.
type Manager struct {
	prefs prefs.Store
}

func NewManager(p prefs.Store) *Manager {
	return &Manager{prefs: p}
}

// SaveLoginSession persists both tokens and the user snapshot and raises the
// login flag.
func (m *Manager) SaveLoginSession(ctx context.Context, access, refresh string, user api.UserData) error {
	if err := m.prefs.Set(ctx, keyAccessToken, []byte(access)); err != nil {
		return err
	}
	if err := m.prefs.Set(ctx, keyRefreshToken, []byte(refresh)); err != nil {
		return err
	}
	if err := m.UpdateUserData(ctx, user); err != nil {
		return err
	}
	return m.prefs.Set(ctx, keyIsLoggedIn, []byte("true"))
}

// IsLoggedIn returns the persisted login flag; false if never set.
func (m *Manager) IsLoggedIn(ctx context.Context) (bool, error) {
	raw, err := m.prefs.Get(ctx, keyIsLoggedIn)
	if err != nil {
		return false, err
	}
	var v bool
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", keyIsLoggedIn, err)
	}
	return v, nil
}

// AccessToken returns the stored access token, or "" when absent.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	raw, err := m.prefs.Get(ctx, keyAccessToken)
	return string(raw), err
}

// RefreshToken returns the stored refresh token, or "" when absent.
func (m *Manager) RefreshToken(ctx context.Context) (string, error) {
	raw, err := m.prefs.Get(ctx, keyRefreshToken)
	return string(raw), err
}

// UpdateUserData replaces the stored user snapshot.
func (m *Manager) UpdateUserData(ctx context.Context, user api.UserData) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", keyUserData, err)
	}
	return m.prefs.Set(ctx, keyUserData, raw)
}

// CurrentUser returns the stored user snapshot, or (nil, nil) when absent.
func (m *Manager) CurrentUser(ctx context.Context) (*api.UserData, error) {
	raw, err := m.prefs.Get(ctx, keyUserData)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var user api.UserData
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", keyUserData, err)
	}
	return &user, nil
}

// IsAdmin reports whether the stored user snapshot carries the admin role.
func (m *Manager) IsAdmin(ctx context.Context) (bool, error) {
	user, err := m.CurrentUser(ctx)
	if err != nil || user == nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// AccessTokenExpired inspects the stored JWT's exp claim without verifying
// the signature (the client does not hold the server secret). A missing or
// unparsable token counts as expired.
func (m *Manager) AccessTokenExpired(ctx context.Context, now time.Time) (bool, error) {
	token, err := m.AccessToken(ctx)
	if err != nil {
		return true, err
	}
	if token == "" {
		return true, nil
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true, nil
	}
	if claims.ExpiresAt == nil {
		return false, nil
	}
	return claims.ExpiresAt.Before(now), nil
}

// Logout removes the tokens and the user snapshot and forces the login flag
// to false. The account/event/mark data owned by the local store is not
// touched.
func (m *Manager) Logout(ctx context.Context) error {
	for _, key := range []string{keyAccessToken, keyRefreshToken, keyUserData} {
		if err := m.prefs.Delete(ctx, key); err != nil {
			return err
		}
	}
	return m.prefs.Set(ctx, keyIsLoggedIn, []byte("false"))
}
