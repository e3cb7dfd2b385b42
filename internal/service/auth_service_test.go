package service

import (
	"testing"

	"go.uber.org/zap"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/auth"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/config"
	apperrors "github.com/SamirYadav48/interactive-helpdesk-ticket-system/pkg/util"
)

func newTestAuthService(t *testing.T, password string) *AuthService {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	cfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		OperatorName:          "operator",
		OperatorPasswordHash:  hash,
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes)
	return NewAuthService(tokens, cfg, zap.NewNop())
}

func TestLoginIssuesParsableToken(t *testing.T) {
	svc := newTestAuthService(t, "hunter2")

	result, err := svc.Login("operator", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}

	tokens := auth.NewTokenManager("test-secret", 5)
	claims, err := tokens.ParseToken(result.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Operator != "operator" {
		t.Errorf("claims operator = %q, want operator", claims.Operator)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t, "hunter2")

	cases := []struct {
		name     string
		operator string
		password string
		code     string
	}{
		{"wrong password", "operator", "nope", "UNAUTHORIZED"},
		{"unknown operator", "intruder", "hunter2", "UNAUTHORIZED"},
		{"empty operator", "", "hunter2", "VALIDATION_FAILED"},
		{"empty password", "operator", "", "VALIDATION_FAILED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(tc.operator, tc.password)
			if !apperrors.HasCode(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}
