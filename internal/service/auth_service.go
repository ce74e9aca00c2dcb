package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogspace/internal/auth"
	"blogspace/internal/model"
	"blogspace/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when trying to register an existing user.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// AuthService handles registration, login and logout. Both register and
// login establish a server-side session whose token the handler places
// in the session cookie.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (user *model.User, sessionToken string, err error)
	Login(ctx context.Context, email, password string) (user *model.User, sessionToken string, err error)
	Logout(ctx context.Context, sessionToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	sessions   auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessions auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// Register creates a new member user with a hashed password and opens a
// session for it.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	// Role is always member at registration; admins are promoted out of
	// band, never through the API.
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleMember,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a user and opens a session.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout invalidates the session behind the token. An invalid or absent
// token is not an error: the cookie gets cleared either way.
func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	claims, err := s.jwtService.ValidateToken(sessionToken)
	if err != nil {
		return nil
	}
	return s.sessions.DeleteSession(ctx, claims.ID)
}

func (s *authService) openSession(ctx context.Context, user *model.User) (string, error) {
	sessionID, token, err := s.jwtService.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	if err := s.sessions.StoreSession(ctx, sessionID, user.ID, user.Email, auth.SessionTTL); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}
