package repositories

import (
	"context"
	"errors"
	"fmt"

	"gamenight/internal/constants"
	"gamenight/internal/database"
	"gamenight/internal/errs"
	. "gamenight/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, tx *gorm.DB, user *User) error
	ClearCache(ctx context.Context, userID uuid.UUID) error
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func userCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", constants.UserCachePrefix, userID)
}

func (r *userRepository) GetByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var cached User
	found, err := database.CacheGetJSON(ctx, r.db.Cache.User, userCacheKey(userID), &cached)
	if err != nil {
		log.Warn("failed to get user from cache", "userID", userID, "error", err)
	}
	if found {
		return &cached, nil
	}

	user, err := gorm.G[*User](r.db.SQL).
		Where(User{BaseUUIDModel: BaseUUIDModel{ID: userID}}).
		First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, errs.ErrNotFound)
		}
		return nil, log.Err("failed to get user", err, "userID", userID)
	}

	if err := database.CacheSetJSON(ctx, r.db.Cache.User, userCacheKey(userID), user, constants.UserCacheExpiry); err != nil {
		log.Warn("failed to cache user", "userID", userID, "error", err)
	}

	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	log := r.log.Function("GetByUsername")

	user, err := gorm.G[*User](r.db.SQL).
		Where(User{Username: username}).
		First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, errs.ErrNotFound)
		}
		return nil, log.Err("failed to get user by username", err, "username", username)
	}

	return user, nil
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.Function("Create")

	if err := gorm.G[User](tx).Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %q: %w", user.Username, errs.ErrConflict)
		}
		return log.Err("failed to create user", err, "username", user.Username)
	}

	return nil
}

func (r *userRepository) ClearCache(ctx context.Context, userID uuid.UUID) error {
	return database.CacheDelete(ctx, r.db.Cache.User, userCacheKey(userID))
}
