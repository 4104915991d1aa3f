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

// FeedbackRepository covers the immutable engagement records: votes, RSVPs,
// general and per-game feedback. None of these have an update or delete path.
type FeedbackRepository interface {
	CreateVotes(ctx context.Context, tx *gorm.DB, votes []*Voting) error
	VotedGameIDs(ctx context.Context, gamenightID, inviteeID uuid.UUID) (map[uuid.UUID]bool, error)

	CreateGeneralFeedback(ctx context.Context, tx *gorm.DB, feedback *GeneralFeedback) error
	GeneralFeedbackExists(ctx context.Context, gamenightID, attendeeID uuid.UUID) (bool, error)

	CreateGameFeedback(ctx context.Context, tx *gorm.DB, feedback []*GameFeedback) error
	GameFeedbackGameIDs(ctx context.Context, gamenightID, attendeeID uuid.UUID) (map[uuid.UUID]bool, error)
	GameFeedbackExists(ctx context.Context, gamenightID, attendeeID uuid.UUID) (bool, error)

	CreateRSVP(ctx context.Context, tx *gorm.DB, rsvp *RSVP) error
	ListRSVPs(ctx context.Context, gamenightID uuid.UUID) ([]*RSVP, error)
}

type feedbackRepository struct {
	db  database.DB
	log logger.Logger
}

func NewFeedbackRepository(db database.DB) FeedbackRepository {
	return &feedbackRepository{
		db:  db,
		log: logger.New("feedbackRepository"),
	}
}

func (r *feedbackRepository) CreateVotes(ctx context.Context, tx *gorm.DB, votes []*Voting) error {
	log := r.log.Function("CreateVotes")

	if len(votes) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).Create(votes).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("vote: %w", errs.ErrConflict)
		}
		return log.Err("failed to create votes", err, "count", len(votes))
	}

	return nil
}

// VotedGameIDs returns the games an invitee has already voted on for a night,
// used to silently drop re-votes from a batch.
func (r *feedbackRepository) VotedGameIDs(
	ctx context.Context,
	gamenightID, inviteeID uuid.UUID,
) (map[uuid.UUID]bool, error) {
	log := r.log.Function("VotedGameIDs")

	votes, err := gorm.G[*Voting](r.db.SQL).
		Where(Voting{GameNightID: gamenightID, InviteeID: inviteeID}).
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list votes", err, "gamenightID", gamenightID)
	}

	voted := make(map[uuid.UUID]bool, len(votes))
	for _, vote := range votes {
		voted[vote.GameID] = true
	}

	return voted, nil
}

func (r *feedbackRepository) CreateGeneralFeedback(
	ctx context.Context,
	tx *gorm.DB,
	feedback *GeneralFeedback,
) error {
	log := r.log.Function("CreateGeneralFeedback")

	if err := gorm.G[GeneralFeedback](tx).Create(ctx, feedback); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("general feedback: %w", errs.ErrConflict)
		}
		return log.Err("failed to create general feedback", err,
			"gamenightID", feedback.GameNightID, "attendeeID", feedback.AttendeeID)
	}

	return nil
}

func (r *feedbackRepository) GeneralFeedbackExists(
	ctx context.Context,
	gamenightID, attendeeID uuid.UUID,
) (bool, error) {
	log := r.log.Function("GeneralFeedbackExists")

	var count int64
	err := r.db.SQL.WithContext(ctx).
		Model(&GeneralFeedback{}).
		Where("game_night_id = ? AND attendee_id = ?", gamenightID, attendeeID).
		Count(&count).Error
	if err != nil {
		return false, log.Err("failed to check general feedback", err, "gamenightID", gamenightID)
	}

	return count > 0, nil
}

func (r *feedbackRepository) CreateGameFeedback(
	ctx context.Context,
	tx *gorm.DB,
	feedback []*GameFeedback,
) error {
	log := r.log.Function("CreateGameFeedback")

	if len(feedback) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).Create(feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("game feedback: %w", errs.ErrConflict)
		}
		return log.Err("failed to create game feedback", err, "count", len(feedback))
	}

	return nil
}

func (r *feedbackRepository) GameFeedbackGameIDs(
	ctx context.Context,
	gamenightID, attendeeID uuid.UUID,
) (map[uuid.UUID]bool, error) {
	log := r.log.Function("GameFeedbackGameIDs")

	feedback, err := gorm.G[*GameFeedback](r.db.SQL).
		Where(GameFeedback{GameNightID: gamenightID, AttendeeID: attendeeID}).
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list game feedback", err, "gamenightID", gamenightID)
	}

	rated := make(map[uuid.UUID]bool, len(feedback))
	for _, fb := range feedback {
		rated[fb.GameID] = true
	}

	return rated, nil
}

func (r *feedbackRepository) GameFeedbackExists(
	ctx context.Context,
	gamenightID, attendeeID uuid.UUID,
) (bool, error) {
	rated, err := r.GameFeedbackGameIDs(ctx, gamenightID, attendeeID)
	if err != nil {
		return false, err
	}
	return len(rated) > 0, nil
}

func (r *feedbackRepository) CreateRSVP(ctx context.Context, tx *gorm.DB, rsvp *RSVP) error {
	log := r.log.Function("CreateRSVP")

	if err := gorm.G[RSVP](tx).Create(ctx, rsvp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("rsvp: %w", errs.ErrConflict)
		}
		return log.Err("failed to create rsvp", err,
			"gamenightID", rsvp.GameNightID, "inviteeID", rsvp.InviteeID)
	}

	return nil
}

func (r *feedbackRepository) ListRSVPs(ctx context.Context, gamenightID uuid.UUID) ([]*RSVP, error) {
	log := r.log.Function("ListRSVPs")

	rsvps, err := gorm.G[*RSVP](r.db.SQL).
		Preload("Invitee", nil).
		Where(RSVP{GameNightID: gamenightID}).
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list rsvps", err, "gamenightID", gamenightID)
	}

	return rsvps, nil
}
