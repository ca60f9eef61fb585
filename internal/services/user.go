package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/botgpt/botgpt-backend/internal/platform/apierr"
	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/repos"
	"github.com/botgpt/botgpt-backend/internal/types"
)

type UserService interface {
	Create(ctx context.Context, username, email string) (*types.User, error)
	List(ctx context.Context) ([]*types.User, error)
	Get(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      baseLog.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) Create(ctx context.Context, username, email string) (*types.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	exists, err := us.userRepo.UsernameExists(ctx, nil, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.BadRequest("username_exists", fmt.Errorf("username already exists"))
	}
	if email != "" {
		exists, err := us.userRepo.EmailExists(ctx, nil, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apierr.BadRequest("email_exists", fmt.Errorf("email already exists"))
		}
	}

	user := &types.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
	}
	created, err := us.userRepo.Create(ctx, nil, []*types.User{user})
	if err != nil {
		return nil, err
	}
	us.log.Info("Created user", "user_id", user.ID, "username", username)
	return created[0], nil
}

func (us *userService) List(ctx context.Context) ([]*types.User, error) {
	return us.userRepo.List(ctx, nil)
}

func (us *userService) Get(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user not found: %s", userID))
	}
	return users[0], nil
}
