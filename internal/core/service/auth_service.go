package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/jobdesk/dashboard-system/internal/api/metrics"
	"github.com/jobdesk/dashboard-system/internal/core/domain"
	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

// AuthService implements login and registration against the gateway, which
// owns all credentials. On success the profile is persisted in the session
// store with the password stripped, the session is registered so polling
// starts, and a signed dashboard token is issued.
type AuthService struct {
	gateway   ports.GatewayClient
	sessions  ports.SessionStore
	registry  ports.SessionRegistry
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(gateway ports.GatewayClient, sessions ports.SessionStore, registry ports.SessionRegistry, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		gateway:   gateway,
		sessions:  sessions,
		registry:  registry,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues("login", "error").Inc()
		return "", nil, err
	}

	profile := user.StripPassword()
	if err := s.sessions.SaveProfile(ctx, profile); err != nil {
		return "", nil, err
	}
	s.registry.Register(profile.ID)

	token, err := s.generateToken(profile)
	if err != nil {
		return "", nil, err
	}

	metrics.MutationsTotal.WithLabelValues("login", "success").Inc()
	s.log.Info().Str("user_id", profile.ID).Str("role", profile.Role).Msg("user logged in")
	return token, &profile, nil
}

func (s *AuthService) Register(ctx context.Context, user ports.NewUser) (string, *domain.User, error) {
	if strings.TrimSpace(user.FirstName) == "" || strings.TrimSpace(user.LastName) == "" {
		return "", nil, &domain.ValidationError{Field: "name", Reason: "first and last name are required"}
	}
	if user.Email == "" || user.Password == "" {
		return "", nil, &domain.ValidationError{Field: "credentials", Reason: "email and password are required"}
	}
	if !domain.ValidRole(user.Role) {
		return "", nil, &domain.ValidationError{Field: "role", Reason: "must be Sales or Support"}
	}

	registered, err := s.gateway.Register(ctx, user)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues("register", "error").Inc()
		return "", nil, err
	}

	// The password travels only through the register exchange; the stored
	// profile never carries it.
	profile := registered.StripPassword()
	if err := s.sessions.SaveProfile(ctx, profile); err != nil {
		return "", nil, err
	}
	s.registry.Register(profile.ID)

	token, err := s.generateToken(profile)
	if err != nil {
		return "", nil, err
	}

	metrics.MutationsTotal.WithLabelValues("register", "success").Inc()
	s.log.Info().Str("user_id", profile.ID).Str("role", profile.Role).Msg("user registered")
	return token, &profile, nil
}

// Logout clears the stored profile and ends the session. The saved theme
// deliberately survives logout.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.sessions.ClearProfile(ctx, userID); err != nil {
		return err
	}
	s.registry.Unregister(userID)
	s.log.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

func (s *AuthService) generateToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
