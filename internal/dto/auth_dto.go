package dto

import "github.com/academic-voice-hub/avh-go-api/internal/models"

// RegisterRequest is the payload for student and teacher registration.
// RollNumber is required only when Role is student; the service enforces
// that rule because validator tags cannot express it.
type RegisterRequest struct {
	Role       string `json:"role" validate:"required,oneof=student teacher"`
	Name       string `json:"name" validate:"required,min=2,max=255"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	RollNumber string `json:"roll_number" validate:"omitempty,max=64"`
}

// LoginRequest is the payload for both roles' logins.
type LoginRequest struct {
	Role     string `json:"role" validate:"required,oneof=student teacher"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VoiceOverRequest toggles spoken narration for the calling student.
type VoiceOverRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// UserResponse is the public view of either user kind.
type UserResponse struct {
	ID               string `json:"id"`
	Role             string `json:"role"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	RollNumber       string `json:"roll_number,omitempty"`
	VoiceOverEnabled bool   `json:"voice_over_enabled,omitempty"`
}

// AuthResponse carries the issued token plus the authenticated profile.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewStudentResponse maps a student model to its public view.
func NewStudentResponse(student models.Student) UserResponse {
	return UserResponse{
		ID:               student.ID,
		Role:             string(models.RoleStudent),
		Name:             student.Name,
		Email:            student.Email,
		RollNumber:       student.RollNumber,
		VoiceOverEnabled: student.VoiceOverEnabled,
	}
}

// NewTeacherResponse maps a teacher model to its public view.
func NewTeacherResponse(teacher models.Teacher) UserResponse {
	return UserResponse{
		ID:    teacher.ID,
		Role:  string(models.RoleTeacher),
		Name:  teacher.Name,
		Email: teacher.Email,
	}
}
