package localstore

import "context"

// FixedOTPCode is the stand-in password-reset code issued until a real
// backend generates per-request codes.
const FixedOTPCode = "123456"

// GenerateOTP overwrites the single global OTP slot with the fixed code and
// the requesting email, and returns the code. A second issuance for a
// different email replaces the first: at most one OTP is outstanding
// system-wide.
func (s *Store) GenerateOTP(ctx context.Context, email string) (string, error) {
	if err := s.setJSON(ctx, keyOTP, FixedOTPCode); err != nil {
		return "", err
	}
	if err := s.setJSON(ctx, keyOTPEmail, email); err != nil {
		return "", err
	}
	return FixedOTPCode, nil
}

// ValidateOTP compares the entered code against the current slot's code.
// It deliberately does not check which email the slot belongs to; callers
// that care must correlate via OTPEmail.
func (s *Store) ValidateOTP(ctx context.Context, entered string) (bool, error) {
	var code string
	existed, err := s.getJSON(ctx, keyOTP, &code)
	if err != nil {
		return false, err
	}
	return existed && code == entered, nil
}

// OTPEmail returns the email associated with the current OTP slot, or ""
// when no OTP is outstanding.
func (s *Store) OTPEmail(ctx context.Context) (string, error) {
	var email string
	if _, err := s.getJSON(ctx, keyOTPEmail, &email); err != nil {
		return "", err
	}
	return email, nil
}
