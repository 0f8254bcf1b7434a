// Package api contains the wire types and the typed HTTP client for the
// event-manager REST service. Every response embeds the success/message
// envelope; field names are snake_case on the wire.
package api

// BaseResponse is the envelope every endpoint wraps its payload in.
type BaseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UserData is the wire representation of an account. Passwords never appear
// on the wire.
type UserData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *UserData) IsAdmin() bool {
	return u.Role == "admin"
}

// TokenData carries the JWT access token and the opaque refresh token.
type TokenData struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// EventData is the wire representation of an event.
type EventData struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Category    string `json:"category"`
}

// RegistrationData describes one event registration of the current user.
type RegistrationData struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	StudentID string `json:"student_id,omitempty"`
}

// ReminderData describes one reminder of the current user.
type ReminderData struct {
	EventID string `json:"event_id"`
}

// ---------- requests ----------

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Category    string `json:"category"`
}

type EventRegistrationRequest struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	StudentID string `json:"student_id,omitempty"`
}

// ---------- responses ----------

type AuthResponse struct {
	BaseResponse
	User   *UserData  `json:"user,omitempty"`
	Tokens *TokenData `json:"tokens,omitempty"`
}

type ProfileResponse struct {
	BaseResponse
	User *UserData `json:"user,omitempty"`
}

type EventListResponse struct {
	BaseResponse
	Count  int         `json:"count"`
	Events []EventData `json:"events"`
}

type EventDetailResponse struct {
	BaseResponse
	Event *EventData `json:"event,omitempty"`
}

type RegistrationResponse struct {
	BaseResponse
	Registration *RegistrationData `json:"registration,omitempty"`
}

type MyRegistrationsResponse struct {
	BaseResponse
	Count         int                `json:"count"`
	Registrations []RegistrationData `json:"registrations"`
}

type ReminderResponse struct {
	BaseResponse
	Reminder *ReminderData `json:"reminder,omitempty"`
}

type MyRemindersResponse struct {
	BaseResponse
	Count     int            `json:"count"`
	Reminders []ReminderData `json:"reminders"`
}

// DashboardStats carries the per-user counters; the admin-only fields stay
// zero for students.
type DashboardStats struct {
	TotalEvents     int `json:"total_events"`
	MyRegistrations int `json:"my_registrations"`
	MyReminders     int `json:"my_reminders"`
	EventsCreated   int `json:"events_created,omitempty"`
	TotalUsers      int `json:"total_users,omitempty"`
}

type DashboardResponse struct {
	BaseResponse
	Stats DashboardStats `json:"stats"`
	User  *UserData      `json:"user,omitempty"`
}

// AdminStats aggregates system-wide counters for the admin dashboard.
type AdminStats struct {
	TotalUsers         int `json:"total_users"`
	TotalStudents      int `json:"total_students"`
	TotalAdmins        int `json:"total_admins"`
	TotalEvents        int `json:"total_events"`
	TotalRegistrations int `json:"total_registrations"`
}

// TopEvent is one row of the most-registered list.
type TopEvent struct {
	EventID           string `json:"event_id"`
	EventTitle        string `json:"event_title"`
	RegistrationCount int    `json:"registration_count"`
}

type AdminDashboardResponse struct {
	BaseResponse
	Stats     AdminStats `json:"stats"`
	TopEvents []TopEvent `json:"top_events"`
}
