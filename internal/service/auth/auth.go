// internal/service/auth/auth.go
package auth

import (
	"context"
	"time"

	xerrors "llamacrm-service/internal/pkg/errors"
	"llamacrm-service/internal/pkg/jwt"
	"llamacrm-service/internal/pkg/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles the single-operator dashboard login. There is no
// user table: the operator name and bcrypt password hash come from
// configuration, and issued tokens are tracked as Redis sessions.
type AuthService struct {
	generator *jwt.Generator
	verifier  *jwt.Verifier
	sessions  *session.Manager

	operatorName string
	passwordHash string

	logger *zap.Logger
}

func NewAuthService(cfg jwt.Config, sessions *session.Manager, operatorName, passwordHash string, logger *zap.Logger) *AuthService {
	return &AuthService{
		generator:    jwt.NewGenerator(cfg),
		verifier:     jwt.NewVerifier(cfg),
		sessions:     sessions,
		operatorName: operatorName,
		passwordHash: passwordHash,
		logger:       logger,
	}
}

// Login verifies the dashboard password and issues a session token.
func (s *AuthService) Login(ctx context.Context, password, ip, userAgent string) (string, error) {
	if s.passwordHash == "" {
		return "", xerrors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		s.logger.Warn("dashboard login rejected", zap.String("ip", ip))
		return "", xerrors.ErrUnauthorized
	}

	token, jti, err := s.generator.Generate(s.operatorName)
	if err != nil {
		return "", xerrors.Wrap(err, "failed to generate token")
	}

	now := time.Now()
	sess := &session.SessionData{
		JTI:       jti,
		Operator:  s.operatorName,
		IPAddress: ip,
		UserAgent: userAgent,
		LoginAt:   now,
		ExpiresAt: now.Add(s.generator.Ttl),
	}
	if err := s.sessions.CreateSession(ctx, sess); err != nil {
		return "", xerrors.Wrap(err, "failed to create session")
	}

	s.logger.Info("dashboard login", zap.String("operator", s.operatorName), zap.String("ip", ip))
	return token, nil
}

// ValidateToken checks the token signature and that its session is
// still registered.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	if _, err := s.sessions.GetSession(ctx, claims.ID); err != nil {
		return nil, xerrors.ErrSessionExpired
	}

	return claims, nil
}

// Logout drops the token's session, invalidating it immediately.
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	return s.sessions.DeleteSession(ctx, jti)
}
