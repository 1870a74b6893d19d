package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"oncotrack/config"
	"oncotrack/internal/infrastructure/cache"
	"oncotrack/internal/service"
	"oncotrack/pkg/jwt"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func newAuthMiddleware(t *testing.T) (*AuthMiddleware, *jwt.JWTService, *cache.MemorySessionStore) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	sessions := cache.NewMemorySessionStore()
	return NewAuthMiddleware(jwtService, sessions, log), jwtService, sessions
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetUserIDFromContext(r.Context()); !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func TestAuthenticate(t *testing.T) {
	mw, jwtService, sessions := newAuthMiddleware(t)

	active, activeID, err := jwtService.GenerateAccessToken(7, "maria")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	if err := sessions.Save(context.Background(), service.AccessTokenKey(7, activeID), time.Minute); err != nil {
		t.Fatalf("save session: %v", err)
	}
	revoked, _, _ := jwtService.GenerateAccessToken(7, "maria")
	refresh, refreshID, _ := jwtService.GenerateRefreshToken(7, "maria")
	_ = sessions.Save(context.Background(), service.AccessTokenKey(7, refreshID), time.Minute)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + active, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"revoked token", "Bearer " + revoked, http.StatusUnauthorized},
		{"active token", "Bearer " + active, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mw.Authenticate(http.HandlerFunc(echoUser)).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAuthorizeOwner(t *testing.T) {
	if err := AuthorizeOwner(context.Background(), 1); err != ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	ctx := WithUser(context.Background(), 1, "maria", "token")
	if err := AuthorizeOwner(ctx, 1); err != nil {
		t.Fatalf("expected owner to pass, got %v", err)
	}
	if err := AuthorizeOwner(ctx, 2); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireOwner(t *testing.T) {
	router := mux.NewRouter()
	router.Handle("/moods/{userId}", RequireOwner("userId")(http.HandlerFunc(echoUser)))

	tests := []struct {
		name string
		path string
		ctx  context.Context
		want int
	}{
		{"owner", "/moods/1", WithUser(context.Background(), 1, "maria", "t"), http.StatusOK},
		{"other user", "/moods/2", WithUser(context.Background(), 1, "maria", "t"), http.StatusForbidden},
		{"no session", "/moods/1", context.Background(), http.StatusUnauthorized},
		{"bad id", "/moods/abc", WithUser(context.Background(), 1, "maria", "t"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil).WithContext(tt.ctx)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCORSAnswersPreflight(t *testing.T) {
	called := false
	handler := NewCORSMiddleware("").Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/moods", nil))

	if called {
		t.Fatal("preflight must not reach the next handler")
	}
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("unexpected preflight response: %d %v", rec.Code, rec.Header())
	}
}
