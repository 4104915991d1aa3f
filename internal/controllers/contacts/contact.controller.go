package contactController

import (
	"context"
	"fmt"
	"strings"

	"gamenight/internal/errs"
	. "gamenight/internal/models"
	"gamenight/internal/repositories"
	"gamenight/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactControllerInterface interface {
	List(ctx context.Context, user *User) ([]*Contact, error)
	Get(ctx context.Context, user *User, contactID uuid.UUID) (*Contact, error)
	Create(ctx context.Context, user *User, req ContactRequest) (*Contact, error)
	Update(ctx context.Context, user *User, contactID uuid.UUID, req ContactRequest) (*Contact, error)
	Delete(ctx context.Context, user *User, contactID uuid.UUID) error
}

type ContactController struct {
	contactRepo        repositories.ContactRepository
	transactionService *services.TransactionService
	log                logger.Logger
}

func New(repos repositories.Repository, service services.Service) *ContactController {
	return &ContactController{
		contactRepo:        repos.Contact,
		transactionService: service.Transaction,
		log:                logger.New("contactController"),
	}
}

type ContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (r *ContactRequest) validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)

	if r.FirstName == "" {
		return fmt.Errorf("first name is required: %w", errs.ErrValidation)
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return fmt.Errorf("a valid email is required: %w", errs.ErrValidation)
	}
	return nil
}

func (c *ContactController) List(ctx context.Context, user *User) ([]*Contact, error) {
	return c.contactRepo.ListByUser(ctx, user.ID)
}

func (c *ContactController) Get(
	ctx context.Context,
	user *User,
	contactID uuid.UUID,
) (*Contact, error) {
	return c.contactRepo.GetScoped(ctx, user.ID, contactID)
}

func (c *ContactController) Create(
	ctx context.Context,
	user *User,
	req ContactRequest,
) (*Contact, error) {
	log := c.log.Function("Create")

	if err := req.validate(); err != nil {
		return nil, err
	}

	contact := &Contact{
		UserID:    user.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.contactRepo.Create(ctx, tx, contact)
	})
	if err != nil {
		return nil, err
	}

	log.Info("contact created", "userID", user.ID, "contactID", contact.ID)
	return contact, nil
}

func (c *ContactController) Update(
	ctx context.Context,
	user *User,
	contactID uuid.UUID,
	req ContactRequest,
) (*Contact, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	contact, err := c.contactRepo.GetScoped(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}

	contact.FirstName = req.FirstName
	contact.LastName = req.LastName
	contact.Email = req.Email

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.contactRepo.Update(ctx, tx, contact)
	})
	if err != nil {
		return nil, err
	}

	return contact, nil
}

func (c *ContactController) Delete(
	ctx context.Context,
	user *User,
	contactID uuid.UUID,
) error {
	return c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.contactRepo.Delete(ctx, tx, user.ID, contactID)
	})
}
