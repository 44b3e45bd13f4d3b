package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/ezstore-dev/go-backend/pkg/logger"
	"github.com/google/uuid"
)

// UserUseCase реализует регистрацию, вход и администрирование пользователей.
// Сессии хранятся в redis под непрозрачным uuid из HTTP-only cookie.
type UserUseCase struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	logger      logger.Logger
}

func NewUserUC(userRepo UserRepository, sessionRepo SessionRepository, logger logger.Logger) *UserUseCase {
	return &UserUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Register создаёт нового пользователя с солёным хэшем пароля.
func (u *UserUseCase) Register(ctx context.Context, req *RegisterUserReq) error {
	const op = "UserUseCase.Register"

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return e.Wrap(op, e.ErrMissingFields)
	}

	if _, err := domain.ParseRole(string(req.Role)); err != nil {
		return e.Wrap(op, err)
	}

	salt, err := newSalt()
	if err != nil {
		return e.Wrap(op, err)
	}

	user := domain.NewUser(req.Username, req.Name, req.Surname, req.Role)
	if err := u.userRepo.Create(ctx, user, hashPassword(req.Password, salt), salt); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Login проверяет учётные данные и открывает сессию, возвращая её идентификатор.
func (u *UserUseCase) Login(ctx context.Context, username, password string) (string, error) {
	const op = "UserUseCase.Login"

	hash, salt, err := u.userRepo.GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, e.ErrUserNotFound) {
			return "", e.Wrap(op, e.ErrInvalidCredentials)
		}
		return "", e.Wrap(op, err)
	}

	if subtle.ConstantTimeCompare([]byte(hash), []byte(hashPassword(password, salt))) != 1 {
		return "", e.Wrap(op, e.ErrInvalidCredentials)
	}

	sessionID := uuid.NewString()
	if err := u.sessionRepo.Create(ctx, sessionID, username); err != nil {
		return "", e.Wrap(op, err)
	}

	return sessionID, nil
}

// Logout закрывает сессию; отсутствующая сессия не считается ошибкой.
func (u *UserUseCase) Logout(ctx context.Context, sessionID string) error {
	const op = "UserUseCase.Logout"

	if err := u.sessionRepo.Delete(ctx, sessionID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Resolve восстанавливает пользователя по идентификатору сессии.
func (u *UserUseCase) Resolve(ctx context.Context, sessionID string) (*domain.User, error) {
	const op = "UserUseCase.Resolve"

	username, err := u.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, e.ErrSessionNotFound) {
			return nil, e.Wrap(op, e.ErrUnauthorized)
		}
		return nil, e.Wrap(op, err)
	}

	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

func (u *UserUseCase) GetAll(ctx context.Context) ([]domain.User, error) {
	const op = "UserUseCase.GetAll"

	users, err := u.userRepo.GetAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return users, nil
}

func (u *UserUseCase) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const op = "UserUseCase.GetByUsername"

	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

func (u *UserUseCase) Delete(ctx context.Context, username string) error {
	const op = "UserUseCase.Delete"

	if err := u.userRepo.Delete(ctx, username); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

func newSalt() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
