package repositories

import (
	"context"
	"errors"
	"fmt"

	"gamenight/internal/database"
	"gamenight/internal/errs"
	. "gamenight/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
}

type TagRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Tag, error)
	Create(ctx context.Context, tx *gorm.DB, tag *Tag) error
}

type categoryRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCategoryRepository(db database.DB) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: logger.New("categoryRepository"),
	}
}

// GetByName resolves an external catalog category name against the seeded
// Category table. A miss is an upstream mapping failure, not a not-found:
// the core does not self-heal missing categories.
func (r *categoryRepository) GetByName(ctx context.Context, name string) (*Category, error) {
	log := r.log.Function("GetByName")

	category, err := gorm.G[*Category](r.db.SQL).
		Where(Category{Name: name}).
		First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %q has no local mapping: %w", name, errs.ErrUpstream)
		}
		return nil, log.Err("failed to get category", err, "name", name)
	}

	return category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*Category, error) {
	log := r.log.Function("List")

	categories, err := gorm.G[*Category](r.db.SQL).
		Order("name").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list categories", err)
	}

	return categories, nil
}

type tagRepository struct {
	db  database.DB
	log logger.Logger
}

func NewTagRepository(db database.DB) TagRepository {
	return &tagRepository{
		db:  db,
		log: logger.New("tagRepository"),
	}
}

func (r *tagRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Tag, error) {
	log := r.log.Function("ListByUser")

	tags, err := gorm.G[*Tag](r.db.SQL).
		Where(Tag{UserID: userID}).
		Order("name").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list tags", err, "userID", userID)
	}

	return tags, nil
}

func (r *tagRepository) Create(ctx context.Context, tx *gorm.DB, tag *Tag) error {
	log := r.log.Function("Create")

	if err := gorm.G[Tag](tx).Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("tag %q: %w", tag.Name, errs.ErrConflict)
		}
		return log.Err("failed to create tag", err, "name", tag.Name)
	}

	return nil
}
