package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

const (
	minUsernameLength = 3
	minPasswordLength = 4

	tokenTTL = 24 * time.Hour
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*entity.User, string, error)
}

type authUserRepo interface {
	Create(ctx context.Context, user *entity.User) error
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

type authService struct {
	userRepo  authUserRepo
	secretKey string
}

func NewAuthService(userRepo authUserRepo, secretKey string) AuthService {
	return &authService{
		userRepo:  userRepo,
		secretKey: secretKey,
	}
}

// Register creates an account with an argon2id password hash. The
// username rules keep names safe to echo back into pages: alphanumeric
// only, at least three characters.
func (that *authService) Register(ctx context.Context, username, password string) (*entity.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:     username,
		PasswordHash: hash,
	}

	if err = that.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies the password and issues a signed token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (that *authService) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	user, err := that.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, apperror.ErrUserNotFound) {
		return nil, "", apperror.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user by username: %w", err)
	}

	match, err := argon2id.ComparePasswordAndHash(password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return nil, "", apperror.ErrInvalidCredentials
	}

	token, err := that.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

func (that *authService) generateToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(that.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func validateCredentials(username, password string) error {
	if len(username) < minUsernameLength {
		return fmt.Errorf("%w: username must be at least %d characters", apperror.ErrInvalidInput, minUsernameLength)
	}

	for _, r := range username {
		if !isAlphanumeric(r) {
			return fmt.Errorf("%w: only alphanumeric usernames allowed", apperror.ErrInvalidInput)
		}
	}

	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperror.ErrInvalidInput, minPasswordLength)
	}

	return nil
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
