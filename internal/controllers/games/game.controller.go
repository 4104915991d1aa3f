package gameController

import (
	"context"
	"errors"

	"gamenight/internal/errs"
	. "gamenight/internal/models"
	"gamenight/internal/repositories"
	"gamenight/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type GameControllerInterface interface {
	Library(ctx context.Context, user *User) ([]*Game, error)
	Wishlist(ctx context.Context, user *User) ([]*Game, error)
	GetByBGGID(ctx context.Context, user *User, bggID int64) (*Game, error)
	ToggleOwned(ctx context.Context, user *User, bggID int64) (*Game, bool, error)
	ToggleWishlisted(ctx context.Context, user *User, bggID int64) (*Game, bool, error)
}

type GameController struct {
	gameRepo           repositories.GameRepository
	categoryRepo       repositories.CategoryRepository
	catalogService     *services.CatalogService
	transactionService *services.TransactionService
	log                logger.Logger
}

func New(repos repositories.Repository, service services.Service) *GameController {
	return &GameController{
		gameRepo:           repos.Game,
		categoryRepo:       repos.Category,
		catalogService:     service.Catalog,
		transactionService: service.Transaction,
		log:                logger.New("gameController"),
	}
}

func (c *GameController) Library(ctx context.Context, user *User) ([]*Game, error) {
	return c.gameRepo.Library(ctx, user.ID)
}

func (c *GameController) Wishlist(ctx context.Context, user *User) ([]*Game, error) {
	return c.gameRepo.Wishlist(ctx, user.ID)
}

// GetByBGGID returns the local copy of a catalog game, creating it from the
// external catalog on first sight. The lookup is synchronous; a catalog
// failure fails this request.
func (c *GameController) GetByBGGID(
	ctx context.Context,
	user *User,
	bggID int64,
) (*Game, error) {
	return c.fetchOrCreate(ctx, bggID)
}

// ToggleOwned flips the game in and out of the user's library, importing it
// from the catalog first if it was never seen. Returns whether the game is
// owned after the toggle.
func (c *GameController) ToggleOwned(
	ctx context.Context,
	user *User,
	bggID int64,
) (*Game, bool, error) {
	log := c.log.Function("ToggleOwned")

	game, err := c.fetchOrCreate(ctx, bggID)
	if err != nil {
		return nil, false, err
	}

	var owned bool
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		owned, err = c.gameRepo.ToggleOwner(ctx, tx, game, user)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	log.Info("library toggled", "userID", user.ID, "bggID", bggID, "owned", owned)
	return game, owned, nil
}

// ToggleWishlisted mirrors ToggleOwned for the wishlist relation.
func (c *GameController) ToggleWishlisted(
	ctx context.Context,
	user *User,
	bggID int64,
) (*Game, bool, error) {
	log := c.log.Function("ToggleWishlisted")

	game, err := c.fetchOrCreate(ctx, bggID)
	if err != nil {
		return nil, false, err
	}

	var wishlisted bool
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		wishlisted, err = c.gameRepo.ToggleWishlisted(ctx, tx, game, user)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	log.Info("wishlist toggled", "userID", user.ID, "bggID", bggID, "wishlisted", wishlisted)
	return game, wishlisted, nil
}

func (c *GameController) fetchOrCreate(ctx context.Context, bggID int64) (*Game, error) {
	game, err := c.gameRepo.GetByBGGID(ctx, bggID)
	if err == nil {
		return game, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	record, err := c.catalogService.Fetch(ctx, bggID)
	if err != nil {
		return nil, err
	}

	// Category names come back as free text; they must already exist in the
	// seeded Category table or the import is rejected.
	categories := make([]Category, 0, len(record.Categories))
	for _, name := range record.Categories {
		category, err := c.categoryRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}

	game = &Game{
		Title:       record.Title,
		BGGID:       record.BGGID,
		PubYear:     record.PubYear,
		Description: record.Description,
		MinPlayers:  record.MinPlayers,
		MaxPlayers:  record.MaxPlayers,
		Playtime:    record.Playtime,
		PlayerAge:   record.PlayerAge,
		Weight:      record.Weight,
		Image:       record.Image,
		Categories:  categories,
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.gameRepo.Create(ctx, tx, game)
	})
	if errors.Is(err, errs.ErrConflict) {
		// Lost a concurrent import race; the other writer's row wins.
		return c.gameRepo.GetByBGGID(ctx, bggID)
	}
	if err != nil {
		return nil, err
	}

	return game, nil
}
