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

type GameRepository interface {
	GetByBGGID(ctx context.Context, bggID int64) (*Game, error)
	GetScoped(ctx context.Context, userID, gameID uuid.UUID) (*Game, error)
	Create(ctx context.Context, tx *gorm.DB, game *Game) error
	Library(ctx context.Context, userID uuid.UUID) ([]*Game, error)
	Wishlist(ctx context.Context, userID uuid.UUID) ([]*Game, error)
	LibraryWithCategories(ctx context.Context, userID uuid.UUID) ([]*Game, error)
	ToggleOwner(ctx context.Context, tx *gorm.DB, game *Game, user *User) (added bool, err error)
	ToggleWishlisted(ctx context.Context, tx *gorm.DB, game *Game, user *User) (added bool, err error)
	ClearUserCache(ctx context.Context, userID uuid.UUID)
}

type gameRepository struct {
	db  database.DB
	log logger.Logger
}

func NewGameRepository(db database.DB) GameRepository {
	return &gameRepository{
		db:  db,
		log: logger.New("gameRepository"),
	}
}

func (r *gameRepository) GetByBGGID(ctx context.Context, bggID int64) (*Game, error) {
	log := r.log.Function("GetByBGGID")

	game, err := gorm.G[*Game](r.db.SQL).
		Preload("Categories", nil).
		Preload("Tags", nil).
		Where(Game{BGGID: bggID}).
		First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("game bgg=%d: %w", bggID, errs.ErrNotFound)
		}
		return nil, log.Err("failed to get game", err, "bggID", bggID)
	}

	return game, nil
}

// GetScoped fetches a game only when userID owns it.
func (r *gameRepository) GetScoped(ctx context.Context, userID, gameID uuid.UUID) (*Game, error) {
	log := r.log.Function("GetScoped")

	game := new(Game)
	err := r.db.SQL.WithContext(ctx).
		Joins("JOIN game_owners ON game_owners.game_id = games.id").
		Where("games.id = ? AND game_owners.user_id = ?", gameID, userID).
		First(game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("game %s: %w", gameID, errs.ErrNotFound)
		}
		return nil, log.Err("failed to get owned game", err, "gameID", gameID)
	}

	return game, nil
}

func (r *gameRepository) Create(ctx context.Context, tx *gorm.DB, game *Game) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Create(game).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("game bgg=%d: %w", game.BGGID, errs.ErrConflict)
		}
		return log.Err("failed to create game", err, "bggID", game.BGGID)
	}

	return nil
}

func libraryCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", constants.LibraryCachePrefix, userID)
}

func wishlistCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", constants.WishlistCachePrefix, userID)
}

func (r *gameRepository) Library(ctx context.Context, userID uuid.UUID) ([]*Game, error) {
	return r.listForUser(ctx, userID, "game_owners", libraryCacheKey(userID))
}

func (r *gameRepository) Wishlist(ctx context.Context, userID uuid.UUID) ([]*Game, error) {
	return r.listForUser(ctx, userID, "game_wishlisters", wishlistCacheKey(userID))
}

func (r *gameRepository) listForUser(
	ctx context.Context,
	userID uuid.UUID,
	joinTable string,
	cacheKey string,
) ([]*Game, error) {
	log := r.log.Function("listForUser")

	var cached []*Game
	found, err := database.CacheGetJSON(ctx, r.db.Cache.User, cacheKey, &cached)
	if err != nil {
		log.Warn("failed to get game list from cache", "key", cacheKey, "error", err)
	}
	if found {
		return cached, nil
	}

	var games []*Game
	err = r.db.SQL.WithContext(ctx).
		Joins(fmt.Sprintf("JOIN %s jt ON jt.game_id = games.id", joinTable)).
		Where("jt.user_id = ?", userID).
		Order("games.title").
		Find(&games).Error
	if err != nil {
		return nil, log.Err("failed to list games for user", err, "userID", userID)
	}

	if err := database.CacheSetJSON(ctx, r.db.Cache.User, cacheKey, games, constants.LibraryCacheExpiry); err != nil {
		log.Warn("failed to cache game list", "key", cacheKey, "error", err)
	}

	return games, nil
}

// LibraryWithCategories loads the owned games with categories preloaded, in
// catalog insertion order. Used by the statistics reporter; never cached.
func (r *gameRepository) LibraryWithCategories(ctx context.Context, userID uuid.UUID) ([]*Game, error) {
	log := r.log.Function("LibraryWithCategories")

	var games []*Game
	err := r.db.SQL.WithContext(ctx).
		Preload("Categories").
		Joins("JOIN game_owners ON game_owners.game_id = games.id").
		Where("game_owners.user_id = ?", userID).
		Order("games.created_at").
		Find(&games).Error
	if err != nil {
		return nil, log.Err("failed to list owned games", err, "userID", userID)
	}

	return games, nil
}

func (r *gameRepository) ToggleOwner(
	ctx context.Context,
	tx *gorm.DB,
	game *Game,
	user *User,
) (bool, error) {
	return r.toggleRelation(ctx, tx, game, user, "Owners", libraryCacheKey(user.ID))
}

func (r *gameRepository) ToggleWishlisted(
	ctx context.Context,
	tx *gorm.DB,
	game *Game,
	user *User,
) (bool, error) {
	return r.toggleRelation(ctx, tx, game, user, "Wishlisted", wishlistCacheKey(user.ID))
}

func (r *gameRepository) toggleRelation(
	ctx context.Context,
	tx *gorm.DB,
	game *Game,
	user *User,
	association string,
	cacheKey string,
) (bool, error) {
	log := r.log.Function("toggleRelation")

	assoc := tx.WithContext(ctx).Model(game).Association(association)

	var existing []User
	if err := assoc.Find(&existing, "users.id = ?", user.ID); err != nil {
		return false, log.Err("failed to check game relation", err, "gameID", game.ID)
	}

	added := len(existing) == 0
	var err error
	if added {
		err = assoc.Append(user)
	} else {
		err = assoc.Delete(user)
	}
	if err != nil {
		return false, log.Err("failed to toggle game relation", err,
			"gameID", game.ID, "association", association)
	}

	if cacheErr := database.CacheDelete(ctx, r.db.Cache.User, cacheKey); cacheErr != nil {
		log.Warn("failed to invalidate game list cache", "key", cacheKey, "error", cacheErr)
	}

	return added, nil
}

func (r *gameRepository) ClearUserCache(ctx context.Context, userID uuid.UUID) {
	err := database.CacheDelete(ctx, r.db.Cache.User,
		libraryCacheKey(userID), wishlistCacheKey(userID))
	if err != nil {
		r.log.Warn("failed to clear game caches", "userID", userID, "error", err)
	}
}
