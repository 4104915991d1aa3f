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

type ContactRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Contact, error)
	GetScoped(ctx context.Context, userID, contactID uuid.UUID) (*Contact, error)
	FindByIdentity(ctx context.Context, userID uuid.UUID, firstName, lastName, email string) (*Contact, error)
	Create(ctx context.Context, tx *gorm.DB, contact *Contact) error
	Update(ctx context.Context, tx *gorm.DB, contact *Contact) error
	Delete(ctx context.Context, tx *gorm.DB, userID, contactID uuid.UUID) error
}

type contactRepository struct {
	db  database.DB
	log logger.Logger
}

func NewContactRepository(db database.DB) ContactRepository {
	return &contactRepository{
		db:  db,
		log: logger.New("contactRepository"),
	}
}

func (r *contactRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Contact, error) {
	log := r.log.Function("ListByUser")

	contacts, err := gorm.G[*Contact](r.db.SQL).
		Where(Contact{UserID: userID}).
		Order("last_name, first_name").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list contacts", err, "userID", userID)
	}

	return contacts, nil
}

// GetScoped fetches a contact only when it belongs to userID. A contact owned
// by another host is indistinguishable from a missing one.
func (r *contactRepository) GetScoped(ctx context.Context, userID, contactID uuid.UUID) (*Contact, error) {
	log := r.log.Function("GetScoped")

	contact, err := gorm.G[*Contact](r.db.SQL).
		Where("id = ? AND user_id = ?", contactID, userID).
		First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contact %s: %w", contactID, errs.ErrNotFound)
		}
		return nil, log.Err("failed to get contact", err, "contactID", contactID)
	}

	return contact, nil
}

func (r *contactRepository) FindByIdentity(
	ctx context.Context,
	userID uuid.UUID,
	firstName, lastName, email string,
) (*Contact, error) {
	log := r.log.Function("FindByIdentity")

	contact, err := gorm.G[*Contact](r.db.SQL).
		Where(Contact{UserID: userID, FirstName: firstName, LastName: lastName, Email: email}).
		First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contact %s %s: %w", firstName, lastName, errs.ErrNotFound)
		}
		return nil, log.Err("failed to find contact by identity", err, "userID", userID)
	}

	return contact, nil
}

func (r *contactRepository) Create(ctx context.Context, tx *gorm.DB, contact *Contact) error {
	log := r.log.Function("Create")

	if err := gorm.G[Contact](tx).Create(ctx, contact); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("contact %s %s: %w", contact.FirstName, contact.LastName, errs.ErrConflict)
		}
		return log.Err("failed to create contact", err, "userID", contact.UserID)
	}

	return nil
}

func (r *contactRepository) Update(ctx context.Context, tx *gorm.DB, contact *Contact) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Save(contact).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("contact %s %s: %w", contact.FirstName, contact.LastName, errs.ErrConflict)
		}
		return log.Err("failed to update contact", err, "contactID", contact.ID)
	}

	return nil
}

func (r *contactRepository) Delete(ctx context.Context, tx *gorm.DB, userID, contactID uuid.UUID) error {
	log := r.log.Function("Delete")

	rowsAffected, err := gorm.G[*Contact](tx).
		Where("id = ? AND user_id = ?", contactID, userID).
		Delete(ctx)
	if err != nil {
		return log.Err("failed to delete contact", err, "contactID", contactID)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("contact %s: %w", contactID, errs.ErrNotFound)
	}

	return nil
}
