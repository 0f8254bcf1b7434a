package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"eventmanager/internal/api"
	"eventmanager/internal/common"
	"eventmanager/internal/models"
	"eventmanager/internal/validate"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account details and creates the account, online
// first. When the server is unreachable the account is created locally so
// the app stays usable without connectivity.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if err := validate.Email(email); err != nil {
		fmt.Println(err.Error())
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validate.Password(string(password)); err != nil {
		fmt.Println(err.Error())
		return err
	}

	user, err := a.authService.OnlineRegister(ctx, name, email, password)
	if err != nil {
		if !errors.Is(err, api.ErrUnavailable) {
			log.Printf("Registration unsuccessful: %s", err.Error())
			return err
		}
		log.Printf("Server unavailable, registering locally...")
		acc, err := a.authService.OfflineRegister(ctx, name, email, password)
		if err != nil {
			log.Printf("Registration unsuccessful: %s", err.Error())
			return err
		}
		a.currentUser = acc
		a.setMode(ModeOffline)
		fmt.Println("Success!")
		return nil
	}

	a.currentUser = &models.Account{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
	a.setMode(ModeOnline)
	fmt.Println("Success!")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
//
// The method first attempts an online login. If the server is unavailable
// (errors.Is(err, api.ErrUnavailable)), it falls back to offline login
// against the local store. On success it sets a.currentUser and updates
// connectivity Mode:
//   - ModeOnline if online login succeeds,
//   - ModeOffline if offline login succeeds,
//   - ModeDisabled if both fail.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.OnlineLogin(ctx, email, password)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			log.Printf("Server unavailable, trying offline login...")
			acc, err := a.authService.OfflineLogin(ctx, email, password)
			if err != nil {
				log.Printf("Offline login unsuccessful: %s", err.Error())
				a.currentUser = nil
				a.setMode(ModeDisabled)
				return err
			}
			log.Printf("Offline login successful")
			a.currentUser = acc
			a.setMode(ModeOffline)
			return nil
		}
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	a.currentUser = &models.Account{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
	a.setMode(ModeOnline)
	return nil
}

// Logout tears down the session and removes the in-memory current user.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.currentUser = nil
	fmt.Println("Logged out")
	return nil
}

// ForgotPassword runs the three-step reset flow: request a code, verify it,
// and set a new password.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.authService.RequestPasswordReset(ctx, email); err != nil {
		log.Printf("Reset request unsuccessful: %s", err.Error())
		return err
	}
	fmt.Println("A reset code was sent to your email")

	code, err := getSimpleText(a.reader, "Enter reset code", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.authService.VerifyResetCode(ctx, email, code); err != nil {
		log.Printf("Code verification unsuccessful: %s", err.Error())
		return err
	}

	newPassword, err := getPassword(os.Stdout, "Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	if err := validate.Password(string(newPassword)); err != nil {
		fmt.Println(err.Error())
		return err
	}

	if err := a.authService.ResetPassword(ctx, email, code, newPassword); err != nil {
		log.Printf("Password reset unsuccessful: %s", err.Error())
		return err
	}
	fmt.Println("Password reset successful")
	return nil
}

// ChangePassword prompts for the old and new passwords of the signed-in
// account.
func (a *App) ChangePassword(ctx context.Context) error {
	oldPassword, err := getPassword(os.Stdout, "Enter current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := getPassword(os.Stdout, "Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	if err := validate.Password(string(newPassword)); err != nil {
		fmt.Println(err.Error())
		return err
	}

	if err := a.authService.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		log.Printf("Password change unsuccessful: %s", err.Error())
		return err
	}
	fmt.Println("Password changed")
	return nil
}
