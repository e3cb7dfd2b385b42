package service

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/auth"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/config"
	apperrors "github.com/SamirYadav48/interactive-helpdesk-ticket-system/pkg/util"
)

// AuthService authenticates the console operator and issues access tokens.
type AuthService struct {
	tokens *auth.TokenManager
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(tokens *auth.TokenManager, cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	return &AuthService{tokens: tokens, cfg: cfg, logger: logger}
}

// LoginResult carries an issued token and its expiry.
type LoginResult struct {
	Operator  string
	Token     string
	ExpiresAt time.Time
}

// Login verifies operator credentials and returns a signed token.
func (s *AuthService) Login(operator, password string) (*LoginResult, error) {
	operator = strings.TrimSpace(operator)
	if operator == "" || password == "" {
		return nil, apperrors.NewValidationError("operator and password are required", nil)
	}
	if operator != s.cfg.OperatorName {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if s.cfg.OperatorPasswordHash == "" {
		s.logger.Warn("operator login rejected: no password hash configured")
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(s.cfg.OperatorPasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(operator)
	if err != nil {
		s.logger.Error("failed to sign operator token", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Operator: operator, Token: token, ExpiresAt: expiresAt}, nil
}
