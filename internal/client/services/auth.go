// Package services contains application services for the event-manager
// client. This file defines the authentication service: online login and
// registration against the REST backend, offline fallbacks backed by the
// local store, and the password-reset flow.
package services

import (
	"context"
	"errors"
	"fmt"

	"eventmanager/internal/api"
	"eventmanager/internal/common"
	"eventmanager/internal/localstore"
	"eventmanager/internal/models"
	"eventmanager/internal/session"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - OnlineLogin / OnlineRegister talk to the server and persist the
//     session on success.
//   - OfflineLogin / OfflineRegister work entirely against the local store.
//   - RequestPasswordReset, VerifyResetCode, and ResetPassword try the
//     server first and fall back to the local store when it is unreachable.
//   - CurrentUser returns the local snapshot of the signed-in account.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	OnlineLogin(ctx context.Context, email string, password []byte) (*api.UserData, error)
	OfflineLogin(ctx context.Context, email string, password []byte) (*models.Account, error)
	OnlineRegister(ctx context.Context, name, email string, password []byte) (*api.UserData, error)
	OfflineRegister(ctx context.Context, name, email string, password []byte) (*models.Account, error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code string, newPassword []byte) error
	ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error
	CurrentUser(ctx context.Context) (*models.Account, error)
	Logout(ctx context.Context) error
}

// authService is the concrete AuthService backed by the REST client, the
// session manager, and the local fallback store.
type authService struct {
	client  *api.Client
	store   *localstore.Store
	session *session.Manager
}

// NewAuthService constructs an AuthService bound to the given API client,
// local store, and session manager.
func NewAuthService(client *api.Client, store *localstore.Store, session *session.Manager) AuthService {
	return &authService{client: client, store: store, session: session}
}

// saveSession persists the login session and mirrors the account snapshot
// into the local store so offline code paths see the same signed-in user.
func (a *authService) saveSession(ctx context.Context, user *api.UserData, tokens *api.TokenData) error {
	if tokens != nil {
		if err := a.session.SaveLoginSession(ctx, tokens.Access, tokens.Refresh, *user); err != nil {
			return err
		}
		a.client.SetToken(tokens.Access)
	}
	if err := a.store.SetCurrentUser(ctx, models.Account{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}); err != nil {
		return err
	}
	return a.store.SetLoggedIn(ctx, true)
}

// OnlineLogin authenticates against the server and persists the session.
func (a *authService) OnlineLogin(ctx context.Context, email string, password []byte) (*api.UserData, error) {
	resp, err := a.client.Login(ctx, api.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if resp.User == nil {
		return nil, common.ErrInternal
	}
	if err := a.saveSession(ctx, resp.User, resp.Tokens); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return resp.User, nil
}

// OfflineLogin verifies the credentials against the local account list and
// installs the account as the current user.
func (a *authService) OfflineLogin(ctx context.Context, email string, password []byte) (*models.Account, error) {
	acc, err := a.store.LoginUser(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := a.store.SetCurrentUser(ctx, *acc); err != nil {
		return nil, err
	}
	if err := a.store.SetLoggedIn(ctx, true); err != nil {
		return nil, err
	}
	return acc, nil
}

// OnlineRegister creates the account on the server and persists the session.
func (a *authService) OnlineRegister(ctx context.Context, name, email string, password []byte) (*api.UserData, error) {
	resp, err := a.client.Register(ctx, api.RegisterRequest{Name: name, Email: email, Password: string(password)})
	if err != nil {
		return nil, fmt.Errorf("registration error: %w", err)
	}
	if resp.User == nil {
		return nil, common.ErrInternal
	}
	if err := a.saveSession(ctx, resp.User, resp.Tokens); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return resp.User, nil
}

// OfflineRegister creates the account in the local store. Duplicate emails
// are rejected here because the store itself does not enforce uniqueness.
func (a *authService) OfflineRegister(ctx context.Context, name, email string, password []byte) (*models.Account, error) {
	exists, err := a.store.UserExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrAlreadyRegistered
	}

	acc, err := a.store.RegisterUser(ctx, name, email, string(password), models.RoleStudent)
	if err != nil {
		return nil, err
	}
	if err := a.store.SetCurrentUser(ctx, *acc); err != nil {
		return nil, err
	}
	if err := a.store.SetLoggedIn(ctx, true); err != nil {
		return nil, err
	}
	return acc, nil
}

// RequestPasswordReset asks the server to issue a reset code, falling back to
// the local OTP slot when the server is unreachable.
func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := a.client.ForgotPassword(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, api.ErrUnavailable) {
		return err
	}

	exists, err := a.store.UserExists(ctx, email)
	if err != nil {
		return err
	}
	if !exists {
		return common.ErrNotFound
	}
	_, err = a.store.GenerateOTP(ctx, email)
	return err
}

// VerifyResetCode checks the code against the server, or against the local
// OTP slot when the server is unreachable.
func (a *authService) VerifyResetCode(ctx context.Context, email, code string) error {
	_, err := a.client.VerifyOTP(ctx, api.VerifyOTPRequest{Email: email, OTP: code})
	if err == nil {
		return nil
	}
	if !errors.Is(err, api.ErrUnavailable) {
		return err
	}
	return a.verifyLocalCode(ctx, email, code)
}

func (a *authService) verifyLocalCode(ctx context.Context, email, code string) error {
	valid, err := a.store.ValidateOTP(ctx, code)
	if err != nil {
		return err
	}
	slotEmail, err := a.store.OTPEmail(ctx)
	if err != nil {
		return err
	}
	if !valid || slotEmail != email {
		return common.ErrInvalidToken
	}
	return nil
}

// ResetPassword completes the reset flow, online first with a local fallback.
func (a *authService) ResetPassword(ctx context.Context, email, code string, newPassword []byte) error {
	_, err := a.client.ResetPassword(ctx, api.ResetPasswordRequest{
		Email:       email,
		OTP:         code,
		NewPassword: string(newPassword),
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, api.ErrUnavailable) {
		return err
	}

	if err := a.verifyLocalCode(ctx, email, code); err != nil {
		return err
	}
	return a.store.UpdatePassword(ctx, email, string(newPassword))
}

// ChangePassword updates the password of the signed-in account, online first
// with a local fallback.
func (a *authService) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error {
	_, err := a.client.ChangePassword(ctx, api.ChangePasswordRequest{
		OldPassword: string(oldPassword),
		NewPassword: string(newPassword),
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, api.ErrUnavailable) {
		return err
	}

	acc, err := a.store.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if acc == nil {
		return common.ErrUnauthorized
	}
	if _, err := a.store.LoginUser(ctx, acc.Email, string(oldPassword)); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidCredentials
		}
		return err
	}
	return a.store.UpdatePassword(ctx, acc.Email, string(newPassword))
}

// CurrentUser returns the local snapshot of the signed-in account, or
// (nil, nil) when nobody is signed in.
func (a *authService) CurrentUser(ctx context.Context) (*models.Account, error) {
	return a.store.CurrentUser(ctx)
}

// Logout tears down both the token session and the local session snapshot.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.client.SetToken("")
	return a.store.Logout(ctx)
}
