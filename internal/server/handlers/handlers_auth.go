package handlers

import (
	"context"
	"errors"
	"net/http"

	"eventmanager/internal/api"
	"eventmanager/internal/common"
	"eventmanager/internal/models"
	"eventmanager/internal/server/auth"
	"eventmanager/internal/validate"
)

func userData(acc *models.Account) *api.UserData {
	return &api.UserData{ID: acc.ID, Name: acc.Name, Email: acc.Email, Role: acc.Role}
}

// issueTokens signs an access token for the account and pairs it with an
// opaque refresh token.
func (h *Handler) issueTokens(userID string) (*api.TokenData, error) {
	access, err := auth.GenerateToken(userID, h.secretKey, h.tokenValidity)
	if err != nil {
		return nil, err
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	return &api.TokenData{Access: access, Refresh: refresh}, nil
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		h.fail(ctx, w, http.StatusBadRequest, "name is required")
		return
	}
	if err := validate.Email(req.Email); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Password(req.Password); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := h.store.UserExists(ctx, req.Email)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	if exists {
		h.fail(ctx, w, http.StatusBadRequest, "user with this email already exists")
		return
	}

	acc, err := h.store.RegisterUser(ctx, req.Name, req.Email, req.Password, models.RoleStudent)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}

	tokens, err := h.issueTokens(acc.ID)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}

	h.log.Info(ctx, "user registered", "user_id", acc.ID)
	h.writeJSON(ctx, w, http.StatusCreated, api.AuthResponse{
		BaseResponse: api.BaseResponse{Success: true, Message: "registration successful"},
		User:         userData(acc),
		Tokens:       tokens,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	acc, err := h.store.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			h.fail(ctx, w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.serverError(ctx, w, err)
		return
	}

	tokens, err := h.issueTokens(acc.ID)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}

	h.writeJSON(ctx, w, http.StatusOK, api.AuthResponse{
		BaseResponse: api.BaseResponse{Success: true, Message: "login successful"},
		User:         userData(acc),
		Tokens:       tokens,
	})
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	exists, err := h.store.UserExists(ctx, req.Email)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	if !exists {
		h.fail(ctx, w, http.StatusNotFound, "no account with this email")
		return
	}

	code, err := h.store.GenerateOTP(ctx, req.Email)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}

	// No mail transport here; the code lands in the server log instead.
	h.log.Info(ctx, "password reset code issued", "email", req.Email, "otp", code)
	h.ok(ctx, w, "OTP sent to email")
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.VerifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	valid, err := h.validateOTPFor(ctx, req.Email, req.OTP)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	if !valid {
		h.fail(ctx, w, http.StatusBadRequest, "invalid or expired OTP")
		return
	}
	h.ok(ctx, w, "OTP verified")
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Password(req.NewPassword); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	valid, err := h.validateOTPFor(ctx, req.Email, req.OTP)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	if !valid {
		h.fail(ctx, w, http.StatusBadRequest, "invalid or expired OTP")
		return
	}

	if err := h.store.UpdatePassword(ctx, req.Email, req.NewPassword); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			h.fail(ctx, w, http.StatusNotFound, "no account with this email")
			return
		}
		h.serverError(ctx, w, err)
		return
	}

	h.log.Info(ctx, "password reset", "email", req.Email)
	h.ok(ctx, w, "password reset successful")
}

// validateOTPFor checks both the code and that the slot was issued for the
// given address: only one OTP exists at a time and it is bound to one email.
func (h *Handler) validateOTPFor(ctx context.Context, email, code string) (bool, error) {
	valid, err := h.store.ValidateOTP(ctx, code)
	if err != nil || !valid {
		return false, err
	}
	slotEmail, err := h.store.OTPEmail(ctx)
	if err != nil {
		return false, err
	}
	return slotEmail == email, nil
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	acc := accountFrom(ctx)

	h.writeJSON(ctx, w, http.StatusOK, api.ProfileResponse{
		BaseResponse: api.BaseResponse{Success: true},
		User:         userData(acc),
	})
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	acc := accountFrom(ctx)

	var req api.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Password(req.NewPassword); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.store.LoginUser(ctx, acc.Email, req.OldPassword); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			h.fail(ctx, w, http.StatusBadRequest, "old password is incorrect")
			return
		}
		h.serverError(ctx, w, err)
		return
	}

	if err := h.store.UpdatePassword(ctx, acc.Email, req.NewPassword); err != nil {
		h.serverError(ctx, w, err)
		return
	}

	h.log.Info(ctx, "password changed", "user_id", acc.ID)
	h.ok(ctx, w, "password changed successfully")
}
