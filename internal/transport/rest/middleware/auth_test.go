package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quizarena/internal/service"
)

func TestRequireUser(t *testing.T) {
	authSvc := service.NewAuthService(nil, "test-secret")
	mw := NewAuthMiddleware(authSvc)

	token, err := authSvc.IssueToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	var gotUserID, gotEmail string
	protected := mw.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		gotEmail = GetEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/quiz/history", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}

	if gotUserID != "user-1" || gotEmail != "alice@example.com" {
		t.Fatalf("expected identity on context, got %q / %q", gotUserID, gotEmail)
	}
}
