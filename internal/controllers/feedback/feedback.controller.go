package feedbackController

import (
	"context"
	"fmt"

	"gamenight/internal/errs"
	. "gamenight/internal/models"
	"gamenight/internal/repositories"
	"gamenight/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackControllerInterface interface {
	RecordVotes(ctx context.Context, rid string, req VoteBatchRequest) (*BatchResult, error)
	RecordGeneralFeedback(ctx context.Context, rid string, req GeneralFeedbackRequest) (*GeneralFeedback, error)
	RecordGameFeedback(ctx context.Context, rid string, req GameFeedbackBatchRequest) (*BatchResult, error)
	RecordRSVP(ctx context.Context, rid string, req RSVPRequest) (*RSVP, error)
	ListRSVPs(ctx context.Context, user *User, rid string) ([]*RSVP, error)
}

type FeedbackController struct {
	gameNightRepo      repositories.GameNightRepository
	contactRepo        repositories.ContactRepository
	feedbackRepo       repositories.FeedbackRepository
	transactionService *services.TransactionService
	log                logger.Logger
}

func New(repos repositories.Repository, service services.Service) *FeedbackController {
	return &FeedbackController{
		gameNightRepo:      repos.GameNight,
		contactRepo:        repos.Contact,
		feedbackRepo:       repos.Feedback,
		transactionService: service.Transaction,
		log:                logger.New("feedbackController"),
	}
}

// ContactIdentity is how rid-capability submissions identify the submitter:
// by name and email, matched under the host's contact scope.
type ContactIdentity struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type VoteEntry struct {
	GameID uuid.UUID `json:"gameId"`
	Vote   int       `json:"vote"`
}

type VoteBatchRequest struct {
	Contact ContactIdentity `json:"contact"`
	Votes   []VoteEntry     `json:"votes"`
}

type GeneralFeedbackRequest struct {
	Contact        ContactIdentity `json:"contact"`
	OverallRating  int             `json:"overallRating"`
	PeopleRating   int             `json:"peopleRating"`
	LocationRating int             `json:"locationRating"`
	Comment        string          `json:"comment,omitempty"`
}

type GameFeedbackEntry struct {
	GameID uuid.UUID `json:"gameId"`
	Rating int       `json:"rating"`
}

type GameFeedbackBatchRequest struct {
	Contact ContactIdentity     `json:"contact"`
	Ratings []GameFeedbackEntry `json:"ratings"`
}

type RSVPRequest struct {
	Contact   ContactIdentity `json:"contact"`
	Attending bool            `json:"attending"`
}

// BatchResult reports partial acceptance: already-recorded entries are
// silently dropped, the rest go through.
type BatchResult struct {
	Recorded int `json:"recorded"`
	Skipped  int `json:"skipped"`
}

// RecordVotes stores one invitee's ballot batch. Votes for games already
// voted on are dropped without failing the batch.
func (c *FeedbackController) RecordVotes(
	ctx context.Context,
	rid string,
	req VoteBatchRequest,
) (*BatchResult, error) {
	log := c.log.Function("RecordVotes")

	gamenight, err := c.gameNightRepo.GetByRID(ctx, rid)
	if err != nil {
		return nil, err
	}
	contact, err := c.resolveInvitee(ctx, gamenight, req.Contact)
	if err != nil {
		return nil, err
	}

	for _, entry := range req.Votes {
		if !ValidVote(entry.Vote) {
			return nil, fmt.Errorf("vote %d out of range: %w", entry.Vote, errs.ErrValidation)
		}
		if !gamenight.HasOption(entry.GameID) {
			return nil, fmt.Errorf("game %s is not an option: %w", entry.GameID, errs.ErrNotFound)
		}
	}

	recorded, err := c.feedbackRepo.VotedGameIDs(ctx, gamenight.ID, contact.ID)
	if err != nil {
		return nil, err
	}

	votes := make([]*Voting, 0, len(req.Votes))
	skipped := 0
	for _, entry := range req.Votes {
		if recorded[entry.GameID] {
			skipped++
			continue
		}
		recorded[entry.GameID] = true
		votes = append(votes, &Voting{
			GameNightID: gamenight.ID,
			InviteeID:   contact.ID,
			GameID:      entry.GameID,
			Vote:        entry.Vote,
		})
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.feedbackRepo.CreateVotes(ctx, tx, votes)
	})
	if err != nil {
		return nil, err
	}

	log.Info("ballot recorded", "rid", rid, "recorded", len(votes), "skipped", skipped)
	return &BatchResult{Recorded: len(votes), Skipped: skipped}, nil
}

func (c *FeedbackController) RecordGeneralFeedback(
	ctx context.Context,
	rid string,
	req GeneralFeedbackRequest,
) (*GeneralFeedback, error) {
	log := c.log.Function("RecordGeneralFeedback")

	gamenight, err := c.gameNightRepo.GetByRID(ctx, rid)
	if err != nil {
		return nil, err
	}
	contact, err := c.resolveAttendee(ctx, gamenight, req.Contact)
	if err != nil {
		return nil, err
	}

	for _, rating := range []int{req.OverallRating, req.PeopleRating, req.LocationRating} {
		if !ValidRating(rating) {
			return nil, fmt.Errorf("rating %d out of range: %w", rating, errs.ErrValidation)
		}
	}

	exists, err := c.feedbackRepo.GeneralFeedbackExists(ctx, gamenight.ID, contact.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("feedback already recorded: %w", errs.ErrConflict)
	}

	feedback := &GeneralFeedback{
		GameNightID:    gamenight.ID,
		AttendeeID:     contact.ID,
		OverallRating:  req.OverallRating,
		PeopleRating:   req.PeopleRating,
		LocationRating: req.LocationRating,
		Comment:        req.Comment,
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.feedbackRepo.CreateGeneralFeedback(ctx, tx, feedback)
	})
	if err != nil {
		return nil, err
	}

	log.Info("general feedback recorded", "rid", rid, "attendeeID", contact.ID)
	return feedback, nil
}

// RecordGameFeedback stores per-game ratings from one attendee. An attendee
// who already left game feedback for this night is rejected wholesale; within
// a first submission, duplicate game entries are dropped silently.
func (c *FeedbackController) RecordGameFeedback(
	ctx context.Context,
	rid string,
	req GameFeedbackBatchRequest,
) (*BatchResult, error) {
	log := c.log.Function("RecordGameFeedback")

	gamenight, err := c.gameNightRepo.GetByRID(ctx, rid)
	if err != nil {
		return nil, err
	}
	contact, err := c.resolveAttendee(ctx, gamenight, req.Contact)
	if err != nil {
		return nil, err
	}

	for _, entry := range req.Ratings {
		if !ValidRating(entry.Rating) {
			return nil, fmt.Errorf("rating %d out of range: %w", entry.Rating, errs.ErrValidation)
		}
		if !gamenight.HasGame(entry.GameID) {
			return nil, fmt.Errorf("game %s was not played: %w", entry.GameID, errs.ErrNotFound)
		}
	}

	exists, err := c.feedbackRepo.GameFeedbackExists(ctx, gamenight.ID, contact.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("game feedback already recorded: %w", errs.ErrConflict)
	}

	seen := make(map[uuid.UUID]bool, len(req.Ratings))
	entries := make([]*GameFeedback, 0, len(req.Ratings))
	skipped := 0
	for _, entry := range req.Ratings {
		if seen[entry.GameID] {
			skipped++
			continue
		}
		seen[entry.GameID] = true
		entries = append(entries, &GameFeedback{
			GameNightID: gamenight.ID,
			AttendeeID:  contact.ID,
			GameID:      entry.GameID,
			Rating:      entry.Rating,
		})
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.feedbackRepo.CreateGameFeedback(ctx, tx, entries)
	})
	if err != nil {
		return nil, err
	}

	log.Info("game feedback recorded", "rid", rid, "recorded", len(entries), "skipped", skipped)
	return &BatchResult{Recorded: len(entries), Skipped: skipped}, nil
}

// RecordRSVP stores an invitee's yes/no. An attending RSVP also moves the
// contact into the attendee set, so hosts see the headcount without a second
// step.
func (c *FeedbackController) RecordRSVP(
	ctx context.Context,
	rid string,
	req RSVPRequest,
) (*RSVP, error) {
	log := c.log.Function("RecordRSVP")

	gamenight, err := c.gameNightRepo.GetByRID(ctx, rid)
	if err != nil {
		return nil, err
	}
	contact, err := c.resolveInvitee(ctx, gamenight, req.Contact)
	if err != nil {
		return nil, err
	}

	rsvp := &RSVP{
		GameNightID: gamenight.ID,
		InviteeID:   contact.ID,
		Attending:   req.Attending,
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.feedbackRepo.CreateRSVP(ctx, tx, rsvp); err != nil {
			return err
		}
		if req.Attending && !gamenight.HasAttendee(contact.ID) {
			gamenight.ToggleAttendee(*contact)
			return c.gameNightRepo.AppendMember(ctx, tx, gamenight, "Attendees", contact)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("rsvp recorded", "rid", rid, "inviteeID", contact.ID, "attending", req.Attending)
	return rsvp, nil
}

// ListRSVPs is host-facing and therefore scoped, unlike the submissions
// above where the rid is the capability.
func (c *FeedbackController) ListRSVPs(
	ctx context.Context,
	user *User,
	rid string,
) ([]*RSVP, error) {
	gamenight, err := c.gameNightRepo.GetByRIDScoped(ctx, user.ID, rid)
	if err != nil {
		return nil, err
	}
	return c.feedbackRepo.ListRSVPs(ctx, gamenight.ID)
}

func (c *FeedbackController) resolveContact(
	ctx context.Context,
	gamenight *GameNight,
	identity ContactIdentity,
) (*Contact, error) {
	return c.contactRepo.FindByIdentity(
		ctx,
		gamenight.UserID,
		identity.FirstName,
		identity.LastName,
		identity.Email,
	)
}

func (c *FeedbackController) resolveInvitee(
	ctx context.Context,
	gamenight *GameNight,
	identity ContactIdentity,
) (*Contact, error) {
	contact, err := c.resolveContact(ctx, gamenight, identity)
	if err != nil {
		return nil, err
	}
	if !gamenight.HasInvitee(contact.ID) {
		return nil, fmt.Errorf("contact %s is not invited: %w", contact.ID, errs.ErrNotFound)
	}
	return contact, nil
}

func (c *FeedbackController) resolveAttendee(
	ctx context.Context,
	gamenight *GameNight,
	identity ContactIdentity,
) (*Contact, error) {
	contact, err := c.resolveContact(ctx, gamenight, identity)
	if err != nil {
		return nil, err
	}
	if !gamenight.HasAttendee(contact.ID) {
		return nil, fmt.Errorf("contact %s did not attend: %w", contact.ID, errs.ErrNotFound)
	}
	return contact, nil
}
