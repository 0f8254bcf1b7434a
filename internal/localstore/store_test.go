package localstore

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"eventmanager/internal/common"
	"eventmanager/internal/models"
	"eventmanager/internal/prefs"
)

func newTestStore(t *testing.T) (*Store, *prefs.MemoryStore) {
	t.Helper()
	p := prefs.NewMemoryStore()
	return New(p), p
}

// ---------- bootstrap admin ----------

func TestBootstrap_ExactlyOneAdminOnFreshStore(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		accounts, err := s.Accounts(ctx)
		require.NoError(t, err)

		admins := 0
		for _, a := range accounts {
			if a.IsAdmin() {
				admins++
				assert.Equal(t, DefaultAdminID, a.ID)
				assert.Equal(t, DefaultAdminEmail, a.Email)
			}
		}
		assert.Equal(t, 1, admins)
		assert.Len(t, accounts, 1)
	}
}

func TestBootstrap_AdminLoginWithFixedCredentials(t *testing.T) {
	s, _ := newTestStore(t)

	acc, err := s.LoginUser(context.Background(), DefaultAdminEmail, DefaultAdminPassword)
	require.NoError(t, err)
	assert.True(t, acc.IsAdmin())
	assert.NotEqual(t, DefaultAdminPassword, acc.PasswordHash)
}

func TestBootstrap_ReseedsWhenSoleAdminRemoved(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()

	// simulate manual removal of the only admin: persist a student-only list
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	students := []models.Account{{ID: "1", Name: "S", Email: "s@x.com", PasswordHash: string(hash), Role: models.RoleStudent}}
	raw, err := json.Marshal(students)
	require.NoError(t, err)
	require.NoError(t, p.Set(ctx, keyUsers, raw))

	accounts, err := s.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, DefaultAdminID, accounts[1].ID)
}

func TestBootstrap_NoSecondAdminWhileOneRemains(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()

	// a custom admin, not the bootstrap one
	custom := []models.Account{{ID: "42", Name: "Root", Email: "root@x.com", Role: models.RoleAdmin}}
	raw, err := json.Marshal(custom)
	require.NoError(t, err)
	require.NoError(t, p.Set(ctx, keyUsers, raw))

	accounts, err := s.Accounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, "42", accounts[0].ID)
}

// ---------- accounts ----------

func TestRegisterUser_LoginRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.RegisterUser(ctx, "Alice", "a@x.com", "p4ssword", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, created.Role)
	assert.NotEmpty(t, created.ID)

	acc, err := s.LoginUser(ctx, "a@x.com", "p4ssword")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", acc.Email)

	_, err = s.LoginUser(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLoginUser_EmailIsCaseSensitive(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.RegisterUser(ctx, "Alice", "a@x.com", "p4ssword", "")
	require.NoError(t, err)

	_, err = s.LoginUser(ctx, "A@x.com", "p4ssword")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRegisterUser_IDFromWallClock(t *testing.T) {
	s, _ := newTestStore(t)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	acc, err := s.RegisterUser(context.Background(), "B", "b@x.com", "p4ssword", "")
	require.NoError(t, err)
	assert.Equal(t, "1740830400000", acc.ID)
}

func TestUserExists(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ok, err := s.UserExists(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.RegisterUser(ctx, "Alice", "a@x.com", "p4ssword", "")
	require.NoError(t, err)

	ok, err = s.UserExists(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdatePassword(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.RegisterUser(ctx, "Alice", "a@x.com", "oldpass", "")
	require.NoError(t, err)

	_, err = s.GenerateOTP(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, s.UpdatePassword(ctx, "a@x.com", "newpass1"))

	_, err = s.LoginUser(ctx, "a@x.com", "oldpass")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = s.LoginUser(ctx, "a@x.com", "newpass1")
	assert.NoError(t, err)

	// a successful update consumes the OTP slot
	ok, err := s.ValidateOTP(ctx, FixedOTPCode)
	require.NoError(t, err)
	assert.False(t, ok)
	email, err := s.OTPEmail(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestUpdatePassword_UnknownEmail(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.UpdatePassword(context.Background(), "nobody@x.com", "whatever1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

// ---------- session ----------

func TestSession_FlagDefaultsFalse(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	loggedIn, err := s.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	require.NoError(t, s.SetLoggedIn(ctx, true))
	loggedIn, err = s.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)
}

func TestSession_CurrentUserRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	require.NoError(t, s.SetCurrentUser(ctx, models.Account{ID: "7", Email: "a@x.com"}))
	cur, err = s.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "7", cur.ID)
}

func TestLogout_ClearsSessionOnly(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	acc, err := s.RegisterUser(ctx, "Alice", "a@x.com", "p4ssword", "")
	require.NoError(t, err)
	require.NoError(t, s.SetCurrentUser(ctx, *acc))
	require.NoError(t, s.SetLoggedIn(ctx, true))
	require.NoError(t, s.RegisterForEvent(ctx, acc.ID, "1"))

	require.NoError(t, s.Logout(ctx))

	loggedIn, err := s.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	// data teardown is independent of session teardown
	ok, err := s.UserExists(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
	registered, err := s.IsRegisteredForEvent(ctx, acc.ID, "1")
	require.NoError(t, err)
	assert.True(t, registered)
}

// ---------- events ----------

func TestEvents_SeedsFiveFixedEventsOnce(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	events, err := s.Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, "Tech Conference 2024", events[0].Title)
	assert.Equal(t, "2024-12-15", events[0].Date)
	assert.Equal(t, "Workshop on AI", events[4].Title)
	assert.Equal(t, "2025-01-10", events[4].Date)

	again, err := s.Events(ctx)
	require.NoError(t, err)
	assert.Equal(t, events, again)
}

func TestEvents_EmptiedCatalogueDoesNotReseed(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Events(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveEvents(ctx, []models.Event{}))

	events, err := s.Events(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDeleteEvent(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()

	before, err := s.Events(ctx)
	require.NoError(t, err)

	removed, err := s.DeleteEvent(ctx, "3")
	require.NoError(t, err)
	assert.True(t, removed)

	after, err := s.Events(ctx)
	require.NoError(t, err)
	require.Len(t, after, 4)
	// the other events keep their relative order
	assert.Equal(t, []string{"1", "2", "4", "5"}, []string{after[0].ID, after[1].ID, after[2].ID, after[3].ID})
	assert.Equal(t, before[0], after[0])

	// absent id: no removal, catalogue byte-for-byte unchanged
	blobBefore, err := p.Get(ctx, keyEvents)
	require.NoError(t, err)

	removed, err = s.DeleteEvent(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.False(t, removed)

	blobAfter, err := p.Get(ctx, keyEvents)
	require.NoError(t, err)
	assert.Equal(t, blobBefore, blobAfter)
}

// ---------- marks ----------

func TestRegisterForEvent_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RegisterForEvent(ctx, "u1", "e1"))
	require.NoError(t, s.RegisterForEvent(ctx, "u1", "e1"))

	ids, err := s.RegisteredEvents(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, ids)

	ok, err := s.IsRegisteredForEvent(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMarks_UnknownUserHasEmptySet(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ids, err := s.RegisteredEvents(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, ids)

	ok, err := s.HasReminder(ctx, "ghost", "e1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMarks_RegistrationAndReminderNamespacesAreIndependent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RegisterForEvent(ctx, "u1", "e1"))

	hasReminder, err := s.HasReminder(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.False(t, hasReminder)

	require.NoError(t, s.SetReminder(ctx, "u1", "e2"))
	registered, err := s.IsRegisteredForEvent(ctx, "u1", "e2")
	require.NoError(t, err)
	assert.False(t, registered)
}

func TestCancelRegistrationAndReminder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RegisterForEvent(ctx, "u1", "e1"))
	removed, err := s.CancelRegistration(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.CancelRegistration(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, s.SetReminder(ctx, "u1", "e1"))
	removed, err = s.CancelReminder(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.True(t, removed)
}

// ---------- OTP ----------

func TestOTP_SingleSlotOverwrite(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.GenerateOTP(ctx, "first@x.com")
	require.NoError(t, err)
	assert.Equal(t, FixedOTPCode, first)

	_, err = s.GenerateOTP(ctx, "second@x.com")
	require.NoError(t, err)

	email, err := s.OTPEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second@x.com", email)

	// the code never changes, so the "first" code still validates:
	// the single-slot weakness, demonstrated on purpose
	ok, err := s.ValidateOTP(ctx, first)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateOTP_NoSlot(t *testing.T) {
	s, _ := newTestStore(t)

	ok, err := s.ValidateOTP(context.Background(), FixedOTPCode)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateOTP_WrongCode(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.GenerateOTP(ctx, "a@x.com")
	require.NoError(t, err)

	ok, err := s.ValidateOTP(ctx, "000000")
	require.NoError(t, err)
	assert.False(t, ok)
}

// ---------- corrupted blobs ----------

func TestCorruptedBlobPropagatesParseError(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, p.Set(ctx, keyUsers, []byte("{not json")))

	_, err := s.Accounts(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode users")
}
