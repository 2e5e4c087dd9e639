package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vaishnavicode/rentagora/internal/hash"
	"github.com/vaishnavicode/rentagora/internal/logging"
	"github.com/vaishnavicode/rentagora/internal/models"
	"github.com/vaishnavicode/rentagora/internal/mykafka"
	"github.com/vaishnavicode/rentagora/internal/repo"
)

const tokenTTL = 7 * 24 * time.Hour

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Producer  *mykafka.Producer
}

type RegisterParams struct {
	Name     string
	Email    string
	Contact  string
	Address  string
	Password string
	Role     string
}

type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	if p.Name == "" || p.Email == "" || p.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if !strings.Contains(p.Email, "@") {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if p.Role == "" {
		p.Role = "customer"
	}

	role, err := s.Repo.RoleByName(ctx, p.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, p.Role)
		}
		return nil, err
	}

	pwHash, err := hash.HashPassword(p.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Name:         p.Name,
		Email:        p.Email,
		Contact:      p.Contact,
		Address:      p.Address,
		PasswordHash: pwHash,
		RoleID:       role.ID,
		Role:         *role,
		Active:       true,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}

	s.publish(ctx, map[string]interface{}{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	l.Info("register_success", "user_id", user.ID)
	return user, nil
}

// Login enforces a single active session: every previously active token of
// the user is deactivated before the new one is issued.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: missing credentials", ErrValidation)
	}

	user, err := s.Repo.FindActiveUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	if err := s.Repo.DeactivateUserTokens(ctx, user.ID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expiry := now.Add(tokenTTL)
	token, err := SignAccessToken(user.ID, s.JWTSecret, now, expiry)
	if err != nil {
		l.Error("login_error", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	record := &models.UserAccessToken{
		UserID:    user.ID,
		TokenHash: Sha256Hex(token),
		ExpiresAt: expiry,
		Active:    true,
	}
	if err := s.Repo.CreateToken(ctx, record); err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]interface{}{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"email":   user.Email,
	})

	l.Info("login_success", "user_id", user.ID)
	return &LoginResult{User: user, Token: token, ExpiresAt: expiry}, nil
}

// Authenticate accepts a token only when the signature verifies AND an
// active, unexpired DB record for it still exists AND the user is active.
// Signature validity alone is not enough once the record was revoked.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*models.User, error) {
	claims, err := AccessClaimsFromToken(raw, s.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	}

	record, err := s.Repo.FindActiveToken(ctx, Sha256Hex(raw))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
		}
		return nil, err
	}
	if record.ExpiresAt.Before(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	}

	user, err := s.Repo.FindUserByID(ctx, claims.UserID)
	if err != nil || !user.Active || user.ID != record.UserID {
		return nil, fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	}

	if err := s.Repo.TouchToken(ctx, record.ID); err != nil {
		logging.FromContext(ctx).Warn("token_touch_failed", "error", err)
	}

	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, raw string) error {
	deactivated, err := s.Repo.DeactivateToken(ctx, Sha256Hex(raw))
	if err != nil {
		return err
	}
	if !deactivated {
		return fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, event map[string]interface{}) {
	key := fmt.Sprint(event["user_id"])
	if err := s.Producer.PublishEvent(ctx, mykafka.TopicUserEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}
