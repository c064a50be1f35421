package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase/interfaces"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidUserPayload = errors.New("username, email and password are required")
	ErrUserNotFound       = errors.New("user not found")
)

type RegisterCommand struct {
	Username string
	Email    string
	Password string
	FullName string
}

type IAuthUseCase interface {
	Register(ctx context.Context, cmd RegisterCommand) (entities.User, error)
	Login(ctx context.Context, username, password string) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
}

type AuthUseCase struct {
	users interfaces.IUserRepository
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(users interfaces.IUserRepository) *AuthUseCase {
	return &AuthUseCase{users: users}
}

// Register creates an operator account with a bcrypt-hashed password after
// checking username and email uniqueness.
func (u *AuthUseCase) Register(ctx context.Context, cmd RegisterCommand) (entities.User, error) {
	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.Email = strings.TrimSpace(strings.ToLower(cmd.Email))
	if cmd.Username == "" || cmd.Email == "" || cmd.Password == "" {
		return entities.User{}, ErrInvalidUserPayload
	}

	if existing, err := u.users.GetByUsername(ctx, cmd.Username); err != nil {
		return entities.User{}, err
	} else if existing.ID != "" {
		return entities.User{}, ErrUsernameTaken
	}
	if existing, err := u.users.GetByEmail(ctx, cmd.Email); err != nil {
		return entities.User{}, err
	} else if existing.ID != "" {
		return entities.User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, err
	}

	user := entities.User{
		ID:             uuid.NewString(),
		Username:       cmd.Username,
		Email:          cmd.Email,
		FullName:       cmd.FullName,
		HashedPassword: string(hash),
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	created, err := u.users.Create(ctx, user)
	if err != nil {
		return entities.User{}, err
	}

	log.Printf("[auth][usecase] user registered user_id=%s username=%s", created.ID, created.Username)
	return created, nil
}

// Login verifies the password against the stored bcrypt hash. Unknown users
// and bad passwords collapse into the same error on purpose.
func (u *AuthUseCase) Login(ctx context.Context, username, password string) (entities.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return entities.User{}, ErrInvalidCredentials
	}

	user, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" || !user.IsActive {
		return entities.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return entities.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (u *AuthUseCase) GetByID(ctx context.Context, id string) (entities.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.User{}, ErrUserNotFound
	}
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return user, nil
}
