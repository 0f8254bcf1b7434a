// Package localstore implements the on-device fallback for the event-manager
// backend: accounts, the event catalogue, per-user registration and reminder
// marks, the session snapshot, and the single password-reset OTP slot, all
// serialized as JSON blobs in a flat preference store.
//
// The store is the sole owner and sole mutator of the persisted entities;
// every query returns copies. Each operation reads the whole relevant blob,
// mutates an in-memory copy, and writes the whole blob back, which is
// adequate for a single-device, single-user fallback.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"eventmanager/internal/common"
	"eventmanager/internal/models"
	"eventmanager/internal/prefs"
)

// Persisted key layout. Registration and reminder marks use one key per
// account id. No versioning or migration scheme exists for this layout.
const (
	keyIsLoggedIn       = "is_logged_in"
	keyCurrentUser      = "current_user"
	keyUsers            = "users"
	keyEvents           = "events"
	keyRegisteredPrefix = "registered_events_"
	keyRemindersPrefix  = "reminders_"
	keyOTP              = "otp"
	keyOTPEmail         = "otp_email"
)

// Bootstrap admin credentials. The admin is re-seeded on any account-list
// load that finds no admin account.
const (
	DefaultAdminID       = "admin_001"
	DefaultAdminName     = "Admin"
	DefaultAdminEmail    = "admin@university.edu"
	DefaultAdminPassword = "admin123"
)

// Store wraps a preference store with the event-manager data layout.
type Store struct {
	prefs prefs.Store
	now   func() time.Time
}

// New returns a Store backed by p.
func New(p prefs.Store) *Store {
	return &Store{prefs: p, now: time.Now}
}

func (s *Store) getJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, err := s.prefs.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.prefs.Set(ctx, key, raw)
}

// ---------- session ----------

// SetLoggedIn persists the login flag.
func (s *Store) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	return s.setJSON(ctx, keyIsLoggedIn, loggedIn)
}

// IsLoggedIn returns the persisted login flag; false if never set.
func (s *Store) IsLoggedIn(ctx context.Context) (bool, error) {
	var v bool
	_, err := s.getJSON(ctx, keyIsLoggedIn, &v)
	return v, err
}

// SetCurrentUser stores a snapshot of the signed-in account.
func (s *Store) SetCurrentUser(ctx context.Context, acc models.Account) error {
	return s.setJSON(ctx, keyCurrentUser, acc)
}

// CurrentUser returns the stored account snapshot, or (nil, nil) if never set.
func (s *Store) CurrentUser(ctx context.Context) (*models.Account, error) {
	var acc models.Account
	ok, err := s.getJSON(ctx, keyCurrentUser, &acc)
	if err != nil || !ok {
		return nil, err
	}
	return &acc, nil
}

// Logout clears the current-account snapshot and forces the login flag to
// false. Account, event, and mark data are untouched: session teardown is
// independent of data teardown.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.prefs.Delete(ctx, keyCurrentUser); err != nil {
		return err
	}
	return s.SetLoggedIn(ctx, false)
}

// ---------- accounts ----------

// loadAccounts reads the account list and guarantees the bootstrap admin
// invariant: if no account with the admin role is present, the default admin
// is appended and the list persisted. Safe to call on every load.
func (s *Store) loadAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if _, err := s.getJSON(ctx, keyUsers, &accounts); err != nil {
		return nil, err
	}

	hasAdmin := false
	for i := range accounts {
		if accounts[i].IsAdmin() {
			hasAdmin = true
			break
		}
	}

	if !hasAdmin {
		hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash bootstrap password: %w", err)
		}
		accounts = append(accounts, models.Account{
			ID:           DefaultAdminID,
			Name:         DefaultAdminName,
			Email:        DefaultAdminEmail,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		})
		if err := s.setJSON(ctx, keyUsers, accounts); err != nil {
			return nil, err
		}
	}

	return accounts, nil
}

// RegisterUser appends a new account. The id is derived from the wall clock
// in milliseconds (unique enough for a single-device store), the role
// defaults to student, and the password is stored as a bcrypt hash. Email
// uniqueness is not enforced here; callers may consult UserExists first.
func (s *Store) RegisterUser(ctx context.Context, name, email, password, role string) (*models.Account, error) {
	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = models.RoleStudent
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acc := models.Account{
		ID:           strconv.FormatInt(s.now().UnixMilli(), 10),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	accounts = append(accounts, acc)
	if err := s.setJSON(ctx, keyUsers, accounts); err != nil {
		return nil, err
	}
	return &acc, nil
}

// LoginUser scans for an account with a case-sensitive email match and a
// matching password. Returns common.ErrNotFound when no account matches.
func (s *Store) LoginUser(ctx context.Context, email, password string) (*models.Account, error) {
	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		if accounts[i].Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(accounts[i].PasswordHash), []byte(password)) == nil {
			acc := accounts[i]
			return &acc, nil
		}
	}
	return nil, common.ErrNotFound
}

// UserExists reports whether any account has the given email (case-sensitive).
func (s *Store) UserExists(ctx context.Context, email string) (bool, error) {
	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return false, err
	}
	for i := range accounts {
		if accounts[i].Email == email {
			return true, nil
		}
	}
	return false, nil
}

// UpdatePassword rehashes and overwrites the password of the first account
// with a matching email, then clears the OTP slot unconditionally (a
// successful update consumes any outstanding OTP). Returns common.ErrNotFound
// when no account matches.
func (s *Store) UpdatePassword(ctx context.Context, email, newPassword string) error {
	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return err
	}

	for i := range accounts {
		if accounts[i].Email != email {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		accounts[i].PasswordHash = string(hash)
		if err := s.setJSON(ctx, keyUsers, accounts); err != nil {
			return err
		}
		if err := s.prefs.Delete(ctx, keyOTP); err != nil {
			return err
		}
		return s.prefs.Delete(ctx, keyOTPEmail)
	}
	return common.ErrNotFound
}

// Accounts returns a copy of the full account list. Used by the admin
// dashboard to compute aggregate statistics.
func (s *Store) Accounts(ctx context.Context) ([]models.Account, error) {
	return s.loadAccounts(ctx)
}
