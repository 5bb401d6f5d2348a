package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/academic-voice-hub/avh-go-api/internal/config"
	"github.com/academic-voice-hub/avh-go-api/internal/dto"
	"github.com/academic-voice-hub/avh-go-api/internal/handler"
	"github.com/academic-voice-hub/avh-go-api/internal/middleware"
	"github.com/academic-voice-hub/avh-go-api/internal/models"
	"github.com/academic-voice-hub/avh-go-api/internal/repository"
	"github.com/academic-voice-hub/avh-go-api/internal/router"
	"github.com/academic-voice-hub/avh-go-api/internal/service"
	"github.com/academic-voice-hub/avh-go-api/pkg/pdfreport"
	"github.com/academic-voice-hub/avh-go-api/pkg/speech"
)

const testJWTSecret = "test-secret"

// testIdentity backs the stub JWT middleware so each test can pick the
// caller without minting real tokens.
type testIdentity struct {
	userID string
	role   string
}

type testApp struct {
	app      *fiber.App
	db       *gorm.DB
	identity *testIdentity
}

// setupApp wires the full router against sqlite and miniredis. When
// realJWT is true the actual bearer-token middleware is used, otherwise
// a stub injects the identity fields into request locals.
func setupApp(t *testing.T, realJWT bool) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.Teacher{}, &models.Result{}))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	validate := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, dto.RegisterCustomValidators(validate))
	logger := zerolog.New(io.Discard)

	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	resultRepo := repository.NewResultRepository(db)

	narrator := speech.NewNarrator(speech.NewLogSynthesizer(logger), logger)

	authService := service.NewAuthService(studentRepo, teacherRepo, validate, testJWTSecret, logger)
	resultService := service.NewResultService(resultRepo, studentRepo, validate, logger)
	analyticsService := service.NewAnalyticsService(resultRepo, redisClient, 5*time.Minute, logger)
	reportService := service.NewReportService(resultRepo, studentRepo, pdfreport.NewRenderer(), logger)
	narrationService := service.NewNarrationService(resultRepo, studentRepo, narrator, speech.DefaultOptions, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	studentHandler := handler.NewStudentHandler(resultService, reportService, narrationService, authService, logger)
	teacherHandler := handler.NewTeacherHandler(resultService, analyticsService, studentRepo, logger)

	identity := &testIdentity{}
	jwtMiddleware := middleware.JWTProtected(testJWTSecret)
	if !realJWT {
		jwtMiddleware = func(c *fiber.Ctx) error {
			if identity.userID != "" {
				c.Locals("user_id", identity.userID)
			}
			if identity.role != "" {
				c.Locals("user_role", identity.role)
			}
			return c.Next()
		}
	}

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", AppEnv: "test", JWTSecret: testJWTSecret}, router.Dependencies{
		AuthHandler:    authHandler,
		StudentHandler: studentHandler,
		TeacherHandler: teacherHandler,
		JWTMiddleware:  jwtMiddleware,
	})

	return &testApp{app: app, db: db, identity: identity}
}

func (ta *testApp) seedStudent(t *testing.T, id, name, roll string, voiceOver bool) models.Student {
	t.Helper()

	student := models.Student{
		ID:               id,
		Name:             name,
		Email:            id + "@example.com",
		Password:         "hashed",
		RollNumber:       roll,
		VoiceOverEnabled: voiceOver,
	}
	require.NoError(t, ta.db.Create(&student).Error)
	return student
}

func (ta *testApp) seedResult(t *testing.T, id, studentID, studentName, subject string, obtained, total float64, year, semester, grade string) models.Result {
	t.Helper()

	result := models.Result{
		ID:            id,
		StudentID:     studentID,
		StudentName:   studentName,
		Subject:       subject,
		MarksObtained: obtained,
		TotalMarks:    total,
		AcademicYear:  year,
		Semester:      semester,
		Grade:         grade,
	}
	require.NoError(t, ta.db.Create(&result).Error)
	return result
}

func (ta *testApp) request(t *testing.T, method, path string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()

	var payload envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func decodeData(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()

	payload := decodeEnvelope(t, resp)
	require.NoError(t, json.Unmarshal(payload.Data, target))
}
