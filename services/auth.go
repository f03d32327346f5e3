package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"wisewallet/backend/apperr"
	"wisewallet/backend/logger"
	"wisewallet/backend/models"
	"wisewallet/backend/security"
)

// MinPasswordLength matches Firebase Authentication's rule.
const MinPasswordLength = 6

const loginFailed = "Login failed"

// ProfileStore persists user profiles keyed by identity provider uid.
type ProfileStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, uid string) (*models.User, error)
}

// RegisterInput is what a new user submits.
type RegisterInput struct {
	Email    string
	Password string
	models.Profile
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// AuthService registers users, logs them in and verifies session tokens.
type AuthService struct {
	identity IdentityProvider
	profiles ProfileStore
	tokens   *security.TokenManager
	log      *logger.Logger
	now      func() time.Time
}

func NewAuthService(identity IdentityProvider, profiles ProfileStore, tokens *security.TokenManager, log *logger.Logger) *AuthService {
	return &AuthService{
		identity: identity,
		profiles: profiles,
		tokens:   tokens,
		log:      log.WithComponent(logger.ComponentAuth),
		now:      time.Now,
	}
}

// Register creates the account and its profile. If the profile cannot be
// stored the account is removed again so a retry with the same email works.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	account, err := s.identity.CreateAccount(ctx, in.Email, in.Password, in.Name)
	if errors.Is(err, ErrEmailTaken) {
		return nil, apperr.Validation("Email already in use")
	}
	if err != nil {
		return nil, apperr.Provider("Registration failed", err)
	}

	now := s.now().UTC()
	profile := in.Profile
	profile.Email = in.Email
	user := &models.User{ID: account.UID, Profile: profile, CreatedAt: now, UpdatedAt: now}

	if err := s.profiles.Create(ctx, user); err != nil {
		s.log.Error("profile creation failed, removing account", "user_id", account.UID, "error", err)
		if delErr := s.identity.DeleteAccount(ctx, account.UID); delErr != nil {
			s.log.Error("failed to remove orphaned account", "user_id", account.UID, "error", delErr)
		}
		return nil, apperr.Provider("Registration failed", err)
	}

	return s.issue(user)
}

// Login checks the password with the identity provider. Every failure reads
// the same to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.Auth(loginFailed, nil)
	}

	account, err := s.identity.VerifyPassword(ctx, email, password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			s.log.Error("password verification failed", "error", err)
		}
		return nil, apperr.Auth(loginFailed, err)
	}

	user, err := s.profiles.Get(ctx, account.UID)
	if err != nil {
		s.log.Warn("login for account without profile", "user_id", account.UID, "error", err)
		return nil, apperr.Auth(loginFailed, err)
	}
	return s.issue(user)
}

// Verify validates the token and re-reads the account and profile it names,
// so deleting either invalidates outstanding tokens.
func (s *AuthService) Verify(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperr.Auth("Invalid or expired token", err)
	}

	if _, err := s.identity.GetAccount(ctx, claims.UID); err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			s.log.Error("account lookup failed", "user_id", claims.UID, "error", err)
		}
		return nil, apperr.Auth("Invalid or expired token", err)
	}

	user, err := s.profiles.Get(ctx, claims.UID)
	if err != nil {
		return nil, apperr.Auth("Invalid or expired token", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, expires, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Could not create session", err)
	}
	return &AuthResult{Token: token, ExpiresAt: expires, User: user}, nil
}

func validateRegistration(in RegisterInput) error {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return apperr.Validation("Email, password and name are required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apperr.Validation("Invalid email address")
	}
	if len(in.Password) < MinPasswordLength {
		return apperr.Validation("Password must be at least 6 characters")
	}
	return nil
}
