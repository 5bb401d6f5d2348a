package service

import (
	"context"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/academic-voice-hub/avh-go-api/internal/dto"
	"github.com/academic-voice-hub/avh-go-api/internal/models"
	"github.com/academic-voice-hub/avh-go-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator(t *testing.T) *validator.Validate {
	t.Helper()
	validate := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, dto.RegisterCustomValidators(validate))
	return validate
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.Teacher{}, &models.Result{}))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, id, name, rollNumber string) models.Student {
	t.Helper()
	student := models.Student{
		ID:         id,
		Name:       name,
		Email:      id + "@example.com",
		Password:   "hash",
		RollNumber: rollNumber,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func addResult(t *testing.T, svc ResultService, studentID, subject string, obtained, total float64, year, semester string) dto.ResultResponse {
	t.Helper()
	created, err := svc.Add(context.Background(), dto.AddResultRequest{
		StudentID:     studentID,
		Subject:       subject,
		MarksObtained: &obtained,
		TotalMarks:    &total,
		AcademicYear:  year,
		Semester:      semester,
	})
	require.NoError(t, err)
	return created
}

func newResultService(t *testing.T, db *gorm.DB) ResultService {
	t.Helper()
	return NewResultService(
		repository.NewResultRepository(db),
		repository.NewStudentRepository(db),
		testValidator(t),
		testLogger(),
	)
}

func floatPtr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }
