package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/academic-voice-hub/avh-go-api/internal/dto"
	"github.com/academic-voice-hub/avh-go-api/internal/models"
	"github.com/academic-voice-hub/avh-go-api/internal/repository"
)

const tokenLifetime = 24 * time.Hour

// AuthService handles registration, login and the student voice-over
// preference. Passwords are stored as bcrypt hashes; lookups never reveal
// whether the email or the password was wrong.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error)
	Profile(ctx context.Context, role models.Role, userID string) (dto.UserResponse, error)
	SetVoiceOver(ctx context.Context, studentID string, enabled bool) (dto.UserResponse, error)
}

type authService struct {
	students  repository.StudentRepository
	teachers  repository.TeacherRepository
	validator *validator.Validate
	jwtSecret string
	logger    zerolog.Logger
	now       func() time.Time
	newID     func(role models.Role) string
	hashCost  int
}

// NewAuthService constructs the auth service.
func NewAuthService(students repository.StudentRepository, teachers repository.TeacherRepository, validator *validator.Validate, jwtSecret string, logger zerolog.Logger) AuthService {
	return &authService{
		students:  students,
		teachers:  teachers,
		validator: validator,
		jwtSecret: jwtSecret,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
		newID: func(role models.Role) string {
			return fmt.Sprintf("%s_%d", role, time.Now().UnixNano())
		},
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	role := models.Role(payload.Role)
	if !role.Valid() {
		return dto.AuthResponse{}, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), s.hashCost)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	switch role {
	case models.RoleStudent:
		return s.registerStudent(ctx, payload, string(hash))
	default:
		return s.registerTeacher(ctx, payload, string(hash))
	}
}

func (s *authService) registerStudent(ctx context.Context, payload dto.RegisterRequest, passwordHash string) (dto.AuthResponse, error) {
	if payload.RollNumber == "" {
		return dto.AuthResponse{}, ErrRollNumberRequired
	}

	taken, err := s.students.ExistsByEmail(ctx, payload.Email)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	if taken {
		return dto.AuthResponse{}, ErrEmailTaken
	}

	taken, err = s.students.ExistsByRollNumber(ctx, payload.RollNumber)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	if taken {
		return dto.AuthResponse{}, ErrRollNumberTaken
	}

	now := s.now()
	student := models.Student{
		ID:         s.newID(models.RoleStudent),
		Name:       payload.Name,
		Email:      payload.Email,
		Password:   passwordHash,
		RollNumber: payload.RollNumber,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.students.Create(ctx, &student); err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Str("student_id", student.ID).Msg("student registered")

	token, err := s.issueToken(student.ID, models.RoleStudent)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{Token: token, User: dto.NewStudentResponse(student)}, nil
}

func (s *authService) registerTeacher(ctx context.Context, payload dto.RegisterRequest, passwordHash string) (dto.AuthResponse, error) {
	taken, err := s.teachers.ExistsByEmail(ctx, payload.Email)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	if taken {
		return dto.AuthResponse{}, ErrEmailTaken
	}

	now := s.now()
	teacher := models.Teacher{
		ID:        s.newID(models.RoleTeacher),
		Name:      payload.Name,
		Email:     payload.Email,
		Password:  passwordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.teachers.Create(ctx, &teacher); err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Str("teacher_id", teacher.ID).Msg("teacher registered")

	token, err := s.issueToken(teacher.ID, models.RoleTeacher)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{Token: token, User: dto.NewTeacherResponse(teacher)}, nil
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	role := models.Role(payload.Role)
	switch role {
	case models.RoleStudent:
		student, err := s.students.GetByEmail(ctx, payload.Email)
		if err != nil {
			return dto.AuthResponse{}, loginError(err)
		}
		if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(payload.Password)) != nil {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}

		token, err := s.issueToken(student.ID, models.RoleStudent)
		if err != nil {
			return dto.AuthResponse{}, err
		}
		return dto.AuthResponse{Token: token, User: dto.NewStudentResponse(student)}, nil

	case models.RoleTeacher:
		teacher, err := s.teachers.GetByEmail(ctx, payload.Email)
		if err != nil {
			return dto.AuthResponse{}, loginError(err)
		}
		if bcrypt.CompareHashAndPassword([]byte(teacher.Password), []byte(payload.Password)) != nil {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}

		token, err := s.issueToken(teacher.ID, models.RoleTeacher)
		if err != nil {
			return dto.AuthResponse{}, err
		}
		return dto.AuthResponse{Token: token, User: dto.NewTeacherResponse(teacher)}, nil

	default:
		return dto.AuthResponse{}, ErrInvalidRole
	}
}

func (s *authService) Profile(ctx context.Context, role models.Role, userID string) (dto.UserResponse, error) {
	switch role {
	case models.RoleStudent:
		student, err := s.students.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.UserResponse{}, ErrStudentNotFound
			}
			return dto.UserResponse{}, err
		}
		return dto.NewStudentResponse(student), nil

	case models.RoleTeacher:
		teacher, err := s.teachers.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.UserResponse{}, ErrInvalidCredentials
			}
			return dto.UserResponse{}, err
		}
		return dto.NewTeacherResponse(teacher), nil

	default:
		return dto.UserResponse{}, ErrInvalidRole
	}
}

func (s *authService) SetVoiceOver(ctx context.Context, studentID string, enabled bool) (dto.UserResponse, error) {
	if err := s.students.SetVoiceOver(ctx, studentID, enabled); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrStudentNotFound
		}
		return dto.UserResponse{}, err
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("student_id", studentID).Bool("enabled", enabled).Msg("voice-over preference updated")

	return dto.NewStudentResponse(student), nil
}

func (s *authService) issueToken(userID string, role models.Role) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func loginError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidCredentials
	}
	return err
}
