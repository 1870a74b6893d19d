package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"oncotrack/config"
	"oncotrack/internal/delivery/http/handler"
	"oncotrack/internal/delivery/http/middleware"
	"oncotrack/internal/infrastructure/cache"
	"oncotrack/internal/infrastructure/database"
	"oncotrack/internal/repository"
	"oncotrack/internal/service"
	"oncotrack/internal/usecase"
	"oncotrack/pkg/jwt"
	"oncotrack/pkg/timeutil"
	"oncotrack/pkg/validator"

	"github.com/sirupsen/logrus"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "oncotrack.db"), "silent")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	days := timeutil.NewDayResolver(timeutil.FixedClock{At: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}, time.UTC)
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: 15 * time.Minute, RefreshExpiry: time.Hour})
	sessions := cache.NewMemorySessionStore()
	limiter := cache.NewMemoryAttemptLimiter(5, time.Minute)
	customValidator := validator.NewValidator()

	userRepo := repository.NewUserRepository()
	auditRepo := repository.NewAuditLogRepository()
	auditService := service.NewAuditService(log, auditRepo)

	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, auditService, jwtService, sessions, limiter)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditRepo)
	moodUsecase := usecase.NewMoodUsecase(db, log, repository.NewMoodRepository(), auditService, days)
	symptomUsecase := usecase.NewSymptomUsecase(db, log, repository.NewSymptomOptionRepository(), repository.NewSymptomRepository(), auditService, days)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, repository.NewAppointmentRepository(), auditService, days)
	medicationUsecase := usecase.NewMedicationUsecase(db, log, repository.NewMedicationRepository(), auditService, days)
	postUsecase := usecase.NewPostUsecase(db, log, repository.NewPostRepository(), auditService)

	router := NewRouter(
		handler.NewAuthHandler(authUsecase, customValidator),
		handler.NewUserHandler(userUsecase, auditLogUsecase),
		handler.NewMoodHandler(moodUsecase, customValidator),
		handler.NewSymptomHandler(symptomUsecase, customValidator),
		handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		handler.NewMedicationHandler(medicationUsecase, customValidator),
		handler.NewPostHandler(postUsecase, customValidator),
		middleware.NewAuthMiddleware(jwtService, sessions, log),
		middleware.NewCORSMiddleware("*"),
		middleware.NewLoggingMiddleware(log),
	)
	return router.Setup()
}

type session struct {
	id    uint
	token string
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func signUp(t *testing.T, h http.Handler, username string) session {
	t.Helper()

	rec := do(t, h, http.MethodPost, "/users", "", map[string]string{
		"name":          "User " + username,
		"email":         username + "@example.com",
		"birthday":      "1980-05-01",
		"phone":         "11999990000",
		"disease":       "Linfoma",
		"diagnosisDate": "2023-01-15",
		"username":      username,
		"password":      "segredo123",
	})
	expectStatus(t, rec, http.StatusCreated)

	rec = do(t, h, http.MethodPost, "/login", "", map[string]string{"username": username, "password": "segredo123"})
	expectStatus(t, rec, http.StatusOK)

	var login struct {
		ID          uint   `json:"id"`
		AccessToken string `json:"accessToken"`
	}
	decode(t, rec, &login)
	return session{id: login.ID, token: login.AccessToken}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/health", "", nil)
	expectStatus(t, rec, http.StatusOK)
}

func TestMoodRecordThenUpdateToday(t *testing.T) {
	h := newTestHandler(t)
	maria := signUp(t, h, "maria")

	rec := do(t, h, http.MethodPost, "/moods", maria.token, map[string]interface{}{"userId": maria.id, "label": "Feliz"})
	expectStatus(t, rec, http.StatusCreated)
	var created struct {
		ID    uint   `json:"id"`
		Label string `json:"label"`
		Day   string `json:"day"`
	}
	decode(t, rec, &created)
	if created.Day != "2024-03-10" {
		t.Fatalf("expected mood dated today, got %s", created.Day)
	}

	rec = do(t, h, http.MethodPut, fmt.Sprintf("/moods/%d/today", maria.id), maria.token, map[string]string{"label": "Triste"})
	expectStatus(t, rec, http.StatusOK)
	var updated struct {
		ID    uint   `json:"id"`
		Label string `json:"label"`
	}
	decode(t, rec, &updated)
	if updated.ID != created.ID || updated.Label != "Triste" {
		t.Fatalf("expected row %d relabeled Triste, got %+v", created.ID, updated)
	}

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/moods/%d", maria.id), maria.token, nil)
	expectStatus(t, rec, http.StatusOK)
	var moods []map[string]interface{}
	decode(t, rec, &moods)
	if len(moods) != 1 {
		t.Fatalf("expected one mood today, got %d", len(moods))
	}

	rec = do(t, h, http.MethodPost, "/moods", maria.token, map[string]string{"label": "Calma"})
	expectStatus(t, rec, http.StatusOK)
}

func TestUpdateTodayMoodWithoutMoodIsNotFound(t *testing.T) {
	h := newTestHandler(t)
	maria := signUp(t, h, "maria")

	rec := do(t, h, http.MethodPut, fmt.Sprintf("/moods/%d/today", maria.id), maria.token, map[string]string{"label": "Triste"})
	expectStatus(t, rec, http.StatusNotFound)
}

func TestSymptomOptionAndSymptomScenario(t *testing.T) {
	h := newTestHandler(t)
	maria := signUp(t, h, "maria")

	rec := do(t, h, http.MethodPost, "/symptoms/options", maria.token, map[string]interface{}{"name": "Dor de cabeça", "userId": maria.id})
	expectStatus(t, rec, http.StatusCreated)
	var option struct {
		ID uint `json:"id"`
	}
	decode(t, rec, &option)

	rec = do(t, h, http.MethodPost, "/symptoms/options", maria.token, map[string]interface{}{"name": "dor de cabeça"})
	expectStatus(t, rec, http.StatusOK)

	rec = do(t, h, http.MethodPost, "/symptoms", maria.token, map[string]interface{}{
		"userId":          maria.id,
		"symptomOptionId": option.ID,
		"severity":        5,
		"note":            "leve",
	})
	expectStatus(t, rec, http.StatusCreated)
	var symptom struct {
		ID            uint `json:"id"`
		SymptomOption struct {
			Name string `json:"name"`
		} `json:"symptomOption"`
	}
	decode(t, rec, &symptom)
	if symptom.SymptomOption.Name != "Dor de cabeça" {
		t.Fatalf("expected nested option name, got %q", symptom.SymptomOption.Name)
	}

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/symptoms/%d/today", maria.id), maria.token, nil)
	expectStatus(t, rec, http.StatusOK)
	var today []map[string]interface{}
	decode(t, rec, &today)
	if len(today) != 1 {
		t.Fatalf("expected one symptom today, got %d", len(today))
	}

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/symptoms/options/%d", maria.id), maria.token, nil)
	expectStatus(t, rec, http.StatusOK)

	rec = do(t, h, http.MethodDelete, fmt.Sprintf("/symptoms/%d", symptom.ID), maria.token, nil)
	expectStatus(t, rec, http.StatusOK)
}

func TestSymptomSeverityValidation(t *testing.T) {
	h := newTestHandler(t)
	maria := signUp(t, h, "maria")

	rec := do(t, h, http.MethodPost, "/symptoms", maria.token, map[string]interface{}{"symptomOptionId": 1, "severity": 11})
	expectStatus(t, rec, http.StatusBadRequest)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	decode(t, rec, &body)
	if _, ok := body.Fields["severity"]; !ok {
		t.Fatalf("expected severity field error, got %+v", body)
	}
}

func TestOwnershipIsEnforced(t *testing.T) {
	h := newTestHandler(t)
	maria := signUp(t, h, "maria")
	joao := signUp(t, h, "joao")

	rec := do(t, h, http.MethodPost, "/appointments", maria.token, map[string]interface{}{
		"type": "CONSULTATION", "date": "2024-03-10T14:30:00", "title": "Oncologista", "location": "Hospital",
	})
	expectStatus(t, rec, http.StatusCreated)
	var appointment struct {
		ID uint `json:"id"`
	}
	decode(t, rec, &appointment)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"read other moods", http.MethodGet, fmt.Sprintf("/moods/%d", maria.id), nil, http.StatusForbidden},
		{"read other profile", http.MethodGet, fmt.Sprintf("/users/%d", maria.id), nil, http.StatusForbidden},
		{"read other appointments", http.MethodGet, fmt.Sprintf("/appointments/user/%d", maria.id), nil, http.StatusForbidden},
		{"record mood for other", http.MethodPost, "/moods", map[string]interface{}{"userId": maria.id, "label": "Feliz"}, http.StatusForbidden},
		{"delete other appointment", http.MethodDelete, fmt.Sprintf("/appointments/%d", appointment.ID), nil, http.StatusNotFound},
		{"update other appointment", http.MethodPut, fmt.Sprintf("/appointments/%d", appointment.ID), map[string]string{"title": "x"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, joao.token, tt.body)
			expectStatus(t, rec, tt.want)
		})
	}

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/appointments/user/%d", maria.id), maria.token, nil)
	expectStatus(t, rec, http.StatusOK)
	var list []map[string]interface{}
	decode(t, rec, &list)
	if len(list) != 1 || list[0]["title"] != "Oncologista" {
		t.Fatalf("expected appointment untouched, got %+v", list)
	}
}

func TestProfileHidesPassword(t *testing.T) {
	h := newTestHandler(t)
	maria := signUp(t, h, "maria")

	rec := do(t, h, http.MethodGet, fmt.Sprintf("/users/%d", maria.id), maria.token, nil)
	expectStatus(t, rec, http.StatusOK)

	var user map[string]interface{}
	decode(t, rec, &user)
	if _, ok := user["password"]; ok {
		t.Fatal("password must not be serialized")
	}
	if user["username"] != "maria" {
		t.Fatalf("unexpected user: %v", user)
	}
}

func TestAuthentication(t *testing.T) {
	h := newTestHandler(t)
	maria := signUp(t, h, "maria")

	rec := do(t, h, http.MethodGet, "/users", "", nil)
	expectStatus(t, rec, http.StatusUnauthorized)

	rec = do(t, h, http.MethodPost, "/login", "", map[string]string{"username": "maria", "password": "errada"})
	expectStatus(t, rec, http.StatusUnauthorized)

	rec = do(t, h, http.MethodPost, "/logout", maria.token, nil)
	expectStatus(t, rec, http.StatusOK)

	rec = do(t, h, http.MethodGet, "/users", maria.token, nil)
	expectStatus(t, rec, http.StatusUnauthorized)
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	h := newTestHandler(t)
	signUp(t, h, "maria")

	rec := do(t, h, http.MethodPost, "/users", "", map[string]string{
		"name": "Outra", "email": "outra@example.com", "birthday": "1990-01-01",
		"diagnosisDate": "2024-01-01", "username": "maria", "password": "segredo123",
	})
	expectStatus(t, rec, http.StatusConflict)
}

func TestPostsAndMedications(t *testing.T) {
	h := newTestHandler(t)
	maria := signUp(t, h, "maria")

	rec := do(t, h, http.MethodPost, "/posts", maria.token, map[string]string{"title": "Primeiro ciclo", "content": "Tudo bem"})
	expectStatus(t, rec, http.StatusCreated)

	rec = do(t, h, http.MethodGet, "/posts", maria.token, nil)
	expectStatus(t, rec, http.StatusOK)
	var posts []struct {
		Author struct {
			Name string `json:"name"`
		} `json:"author"`
	}
	decode(t, rec, &posts)
	if len(posts) != 1 || posts[0].Author.Name != "User maria" {
		t.Fatalf("unexpected posts: %+v", posts)
	}

	rec = do(t, h, http.MethodPost, "/medications", maria.token, map[string]string{
		"name": "Tamoxifeno", "dosage": "20mg", "frequency": "1x ao dia", "startDate": "2024-01-10",
	})
	expectStatus(t, rec, http.StatusCreated)
	var medication struct {
		ID uint `json:"id"`
	}
	decode(t, rec, &medication)

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/medications/user/%d", maria.id), maria.token, nil)
	expectStatus(t, rec, http.StatusOK)

	rec = do(t, h, http.MethodDelete, fmt.Sprintf("/medications/%d", medication.ID), maria.token, nil)
	expectStatus(t, rec, http.StatusOK)

	rec = do(t, h, http.MethodDelete, fmt.Sprintf("/medications/%d", medication.ID), maria.token, nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestPreflightIsAnsweredByCORS(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodOptions, "/moods", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("expected CORS headers on preflight")
	}
}
