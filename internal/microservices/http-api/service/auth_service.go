package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"yamdb/internal/config"
	"yamdb/internal/mail"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTypeAccess = "access"

// Claims is the payload of an access token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// AuthService covers the unauthenticated entry path: signup by email and the
// confirmation-code-for-token exchange.
type AuthService interface {
	RequestSignup(ctx context.Context, username, email string) (*models.User, error)
	ExchangeToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	// Authenticate validates the token and loads the user it names.
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)
	AccessTokenTTL() time.Duration
}

type authService struct {
	userRepo  repository.UserRepository
	codeStore repository.ConfirmationStore
	mailer    mail.Mailer
	codes     *auth.CodeGenerator
	validator *UserValidator

	jwtSecret      string
	accessTokenTTL time.Duration
	now            func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	codeStore repository.ConfirmationStore,
	mailer mail.Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		codeStore:      codeStore,
		mailer:         mailer,
		codes:          auth.NewCodeGenerator(cfg.JWTSecret, cfg.ConfirmationCodeTTL),
		validator:      NewUserValidator(userRepo),
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
		now:            time.Now,
	}
}

func (s *authService) AccessTokenTTL() time.Duration {
	return s.accessTokenTTL
}

// RequestSignup registers the user on first contact, or re-sends a code to an
// existing user whose email matches, then mails a fresh confirmation code.
func (s *authService) RequestSignup(ctx context.Context, username, email string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	ve := &ValidationError{}
	ve.Merge(CheckUsernameFormat(username))
	ve.Merge(CheckEmailFormat(email))
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if !strings.EqualFold(user.Email, email) {
			return nil, &ConflictError{Field: "email", Message: "This username is registered with a different email."}
		}
	case repository.IsNotFound(err):
		user, err = s.register(ctx, username, email)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.sendCode(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) register(ctx context.Context, username, email string) (*models.User, error) {
	ve := &ValidationError{}
	for _, err := range []error{
		s.validator.ValidateUsername(ctx, username, ""),
		s.validator.ValidateEmail(ctx, email, ""),
	} {
		if err != nil && !isValidation(err) {
			return nil, err
		}
		ve.Merge(err)
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	user := &models.User{Username: username, Email: email, Role: models.RoleUser}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, storeError("create user", err)
	}
	return user, nil
}

func (s *authService) sendCode(ctx context.Context, user *models.User) error {
	code := s.codes.Make(user, s.now())
	if err := s.codeStore.Save(ctx, user.ID, code, s.codes.TTL()); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}

	msg := mail.Message{
		To:      user.Email,
		Subject: "YaMDb confirmation code",
		Body: fmt.Sprintf(
			"Hello, %s!\n\nYour confirmation code: %s\n\nExchange it at /api/v1/auth/token within %s.\n",
			user.Username, code, s.codes.TTL()),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

// ExchangeToken trades a valid, unused confirmation code for an access token.
// A failed check leaves the user and the stored code untouched.
func (s *authService) ExchangeToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if repository.IsNotFound(err) {
			return "", notFound("user")
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	now := s.now()
	if err := s.codes.Check(user, strings.TrimSpace(code), now); err != nil {
		return "", ErrInvalidCredentials
	}

	ok, err := s.codeStore.Consume(ctx, user.ID, strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("consume confirmation code: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	// moves the fingerprint, so every other outstanding code stops verifying
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return "", fmt.Errorf("touch last login: %w", err)
	}

	return s.generateAccessToken(user, now)
}

func (s *authService) generateAccessToken(user *models.User, now time.Time) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Type:     tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Type != tokenTypeAccess || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
