package tagController

import (
	"context"
	"fmt"
	"strings"

	"gamenight/internal/errs"
	. "gamenight/internal/models"
	"gamenight/internal/repositories"
	"gamenight/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type TagControllerInterface interface {
	List(ctx context.Context, user *User) ([]*Tag, error)
	Create(ctx context.Context, user *User, name string) (*Tag, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}

type TagController struct {
	tagRepo            repositories.TagRepository
	categoryRepo       repositories.CategoryRepository
	transactionService *services.TransactionService
	log                logger.Logger
}

func New(repos repositories.Repository, service services.Service) *TagController {
	return &TagController{
		tagRepo:            repos.Tag,
		categoryRepo:       repos.Category,
		transactionService: service.Transaction,
		log:                logger.New("tagController"),
	}
}

func (c *TagController) List(ctx context.Context, user *User) ([]*Tag, error) {
	return c.tagRepo.ListByUser(ctx, user.ID)
}

func (c *TagController) Create(ctx context.Context, user *User, name string) (*Tag, error) {
	log := c.log.Function("Create")

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tag name is required: %w", errs.ErrValidation)
	}

	tag := &Tag{UserID: user.ID, Name: name}
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.tagRepo.Create(ctx, tx, tag)
	})
	if err != nil {
		return nil, err
	}

	log.Info("tag created", "userID", user.ID, "name", name)
	return tag, nil
}

// ListCategories is read-only; the category table is global and seeded by
// migration.
func (c *TagController) ListCategories(ctx context.Context) ([]*Category, error) {
	return c.categoryRepo.List(ctx)
}
