package gamenightController

import (
	"context"
	"fmt"
	"strings"
	"time"

	statsController "gamenight/internal/controllers/stats"
	"gamenight/internal/errs"
	. "gamenight/internal/models"
	"gamenight/internal/repositories"
	"gamenight/internal/services"
	"gamenight/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxRIDAttempts = 10

	// Feedback requests go out the morning after the session.
	feedbackRequestHour = 10
)

type GameNightControllerInterface interface {
	Create(ctx context.Context, user *User, req CreateGameNightRequest) (*GameNight, error)
	GetByRID(ctx context.Context, user *User, rid string) (*GameNightResponse, error)
	ListByUser(ctx context.Context, user *User) ([]*GameNight, error)
	ToggleAttendee(ctx context.Context, user *User, rid string, contactID uuid.UUID) (*GameNight, error)
	ToggleInvitee(ctx context.Context, user *User, rid string, contactID uuid.UUID) (*GameNight, error)
	ToggleOption(ctx context.Context, user *User, rid string, gameID uuid.UUID) (*GameNight, error)
	ToggleGame(ctx context.Context, user *User, rid string, gameID uuid.UUID) (*GameNight, error)
	SetStatus(ctx context.Context, user *User, rid string, status GameNightStatus) (*GameNight, error)
	UpdateSchedule(ctx context.Context, user *User, rid string, req UpdateScheduleRequest) (*GameNight, error)
}

type GameNightController struct {
	gameNightRepo      repositories.GameNightRepository
	contactRepo        repositories.ContactRepository
	gameRepo           repositories.GameRepository
	transactionService *services.TransactionService
	dispatcher         services.Dispatcher
	mailer             services.Mailer
	log                logger.Logger
}

func New(repos repositories.Repository, service services.Service) *GameNightController {
	return &GameNightController{
		gameNightRepo:      repos.GameNight,
		contactRepo:        repos.Contact,
		gameRepo:           repos.Game,
		transactionService: service.Transaction,
		dispatcher:         service.Dispatch,
		mailer:             service.Mailer,
		log:                logger.New("gamenightController"),
	}
}

type CreateGameNightRequest struct {
	Date       string      `json:"date"`
	StartTime  string      `json:"startTime"`
	EndTime    string      `json:"endTime,omitempty"`
	Location   string      `json:"location,omitempty"`
	InviteeIDs []uuid.UUID `json:"inviteeIds,omitempty"`
	OptionIDs  []uuid.UUID `json:"optionIds,omitempty"`
}

type UpdateScheduleRequest struct {
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Location  *string `json:"location,omitempty"`
}

// GameNightResponse decorates a night with the derived numbers the host's
// dashboard shows next to it.
type GameNightResponse struct {
	*GameNight
	VoteTallies     map[string]int `json:"voteTallies"`
	AvgOverall      *float64       `json:"avgOverall,omitempty"`
	AttendanceRatio *float64       `json:"attendanceRatio,omitempty"`
}

func (c *GameNightController) Create(
	ctx context.Context,
	user *User,
	req CreateGameNightRequest,
) (*GameNight, error) {
	log := c.log.Function("Create")

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, errs.ErrValidation)
	}
	startTime, err := utils.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, errs.ErrValidation)
	}
	var endTime *time.Time
	if req.EndTime != "" {
		parsed, err := utils.ParseClock(req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", err, errs.ErrValidation)
		}
		endTime = &parsed
	}

	invitees, err := c.loadContacts(ctx, user, req.InviteeIDs)
	if err != nil {
		return nil, err
	}
	options, err := c.loadGames(ctx, user, req.OptionIDs)
	if err != nil {
		return nil, err
	}

	rid, err := c.allocateRID(ctx)
	if err != nil {
		return nil, err
	}

	gamenight := &GameNight{
		UserID:    user.ID,
		Date:      date,
		RID:       rid,
		StartTime: startTime,
		EndTime:   endTime,
		Location:  req.Location,
		Status:    StatusVoting,
		Invitees:  invitees,
		Options:   options,
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.gameNightRepo.Create(ctx, tx, gamenight)
	})
	if err != nil {
		return nil, err
	}

	if recipients := gamenight.InviteeEmails(); len(recipients) > 0 {
		subject, body := inviteMail(user, gamenight)
		if err := c.mailer.Send(ctx, subject, body, recipients); err != nil {
			log.Warn("invitation mail failed", "rid", gamenight.RID, "error", err)
		}
	}

	log.Info("gamenight created", "rid", gamenight.RID, "userID", user.ID)
	return gamenight, nil
}

func (c *GameNightController) GetByRID(
	ctx context.Context,
	user *User,
	rid string,
) (*GameNightResponse, error) {
	gamenight, err := c.gameNightRepo.GetByRIDScoped(ctx, user.ID, rid)
	if err != nil {
		return nil, err
	}
	return decorate(gamenight), nil
}

func (c *GameNightController) ListByUser(
	ctx context.Context,
	user *User,
) ([]*GameNight, error) {
	return c.gameNightRepo.ListByUser(ctx, user.ID)
}

func (c *GameNightController) ToggleAttendee(
	ctx context.Context,
	user *User,
	rid string,
	contactID uuid.UUID,
) (*GameNight, error) {
	gamenight, err := c.gameNightRepo.GetByRIDScoped(ctx, user.ID, rid)
	if err != nil {
		return nil, err
	}
	contact, err := c.contactRepo.GetScoped(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}

	op := gamenight.ToggleAttendee(*contact)
	if op == MembershipNone {
		return gamenight, nil
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.applyMembership(ctx, tx, gamenight, "Attendees", contact, op)
	})
	if err != nil {
		return nil, err
	}

	return gamenight, nil
}

func (c *GameNightController) ToggleInvitee(
	ctx context.Context,
	user *User,
	rid string,
	contactID uuid.UUID,
) (*GameNight, error) {
	gamenight, err := c.gameNightRepo.GetByRIDScoped(ctx, user.ID, rid)
	if err != nil {
		return nil, err
	}
	contact, err := c.contactRepo.GetScoped(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}

	op, attendeeRemoved := gamenight.ToggleInvitee(*contact)

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.applyMembership(ctx, tx, gamenight, "Invitees", contact, op); err != nil {
			return err
		}
		if attendeeRemoved {
			return c.gameNightRepo.RemoveMember(ctx, tx, gamenight, "Attendees", contact)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return gamenight, nil
}

func (c *GameNightController) ToggleOption(
	ctx context.Context,
	user *User,
	rid string,
	gameID uuid.UUID,
) (*GameNight, error) {
	gamenight, err := c.gameNightRepo.GetByRIDScoped(ctx, user.ID, rid)
	if err != nil {
		return nil, err
	}
	game, err := c.gameRepo.GetScoped(ctx, user.ID, gameID)
	if err != nil {
		return nil, err
	}

	op, playRemoved := gamenight.ToggleOption(*game)

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.applyMembership(ctx, tx, gamenight, "Options", game, op); err != nil {
			return err
		}
		if playRemoved {
			return c.gameNightRepo.RemoveMember(ctx, tx, gamenight, "Games", game)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return gamenight, nil
}

func (c *GameNightController) ToggleGame(
	ctx context.Context,
	user *User,
	rid string,
	gameID uuid.UUID,
) (*GameNight, error) {
	gamenight, err := c.gameNightRepo.GetByRIDScoped(ctx, user.ID, rid)
	if err != nil {
		return nil, err
	}
	game, err := c.gameRepo.GetScoped(ctx, user.ID, gameID)
	if err != nil {
		return nil, err
	}

	op := gamenight.ToggleGame(*game)
	if op == MembershipNone {
		return gamenight, nil
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.applyMembership(ctx, tx, gamenight, "Games", game, op)
	})
	if err != nil {
		return nil, err
	}

	return gamenight, nil
}

func (c *GameNightController) SetStatus(
	ctx context.Context,
	user *User,
	rid string,
	status GameNightStatus,
) (*GameNight, error) {
	log := c.log.Function("SetStatus")

	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q: %w", status, errs.ErrValidation)
	}

	gamenight, err := c.gameNightRepo.GetByRIDScoped(ctx, user.ID, rid)
	if err != nil {
		return nil, err
	}
	if gamenight.Status == status {
		return gamenight, nil
	}

	if err := c.transitionStatus(ctx, gamenight, status); err != nil {
		return nil, err
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.gameNightRepo.SaveLifecycle(ctx, tx, gamenight)
	})
	if err != nil {
		return nil, err
	}

	log.Info("gamenight status changed", "rid", rid, "status", status)
	return gamenight, nil
}

// transitionStatus applies the status change and its side effects to the
// in-memory record: entering Finalized schedules the deferred feedback
// request and mails attendees; leaving Finalized revokes the pending request.
// Persistence is the caller's job.
func (c *GameNightController) transitionStatus(
	ctx context.Context,
	gamenight *GameNight,
	status GameNightStatus,
) error {
	log := c.log.Function("transitionStatus")

	leavingFinalized := gamenight.Status == StatusFinalized && status != StatusFinalized
	enteringFinalized := gamenight.Status != StatusFinalized && status == StatusFinalized

	if leavingFinalized {
		handle, err := gamenight.FeedbackTask.Revoke()
		if err == nil {
			if err := c.dispatcher.Revoke(ctx, handle); err != nil {
				return err
			}
		}
	}

	if enteringFinalized {
		fireAt := feedbackFireAt(gamenight)
		payload := feedbackRequestPayload(gamenight)
		handle, err := c.dispatcher.Schedule(ctx, payload, fireAt)
		if err != nil {
			return err
		}
		if err := gamenight.FeedbackTask.Schedule(handle, fireAt); err != nil {
			// A live handle here means state drifted; revoke the new timer
			// rather than leaking it.
			if revokeErr := c.dispatcher.Revoke(ctx, handle); revokeErr != nil {
				log.Warn("failed to revoke orphaned task", "handle", handle, "error", revokeErr)
			}
			return err
		}

		if recipients := gamenight.AttendeeEmails(); len(recipients) > 0 {
			subject, body := confirmedMail(gamenight)
			if err := c.mailer.Send(ctx, subject, body, recipients); err != nil {
				log.Warn("confirmation mail failed", "rid", gamenight.RID, "error", err)
			}
		}
	}

	gamenight.Status = status
	return nil
}

func (c *GameNightController) UpdateSchedule(
	ctx context.Context,
	user *User,
	rid string,
	req UpdateScheduleRequest,
) (*GameNight, error) {
	log := c.log.Function("UpdateSchedule")

	gamenight, err := c.gameNightRepo.GetByRIDScoped(ctx, user.ID, rid)
	if err != nil {
		return nil, err
	}

	dateChanged := false
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", err, errs.ErrValidation)
		}
		dateChanged = !date.Equal(gamenight.Date)
		gamenight.Date = date
	}
	if req.StartTime != nil {
		startTime, err := utils.ParseClock(*req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", err, errs.ErrValidation)
		}
		gamenight.StartTime = startTime
	}
	if req.EndTime != nil {
		if *req.EndTime == "" {
			gamenight.EndTime = nil
		} else {
			endTime, err := utils.ParseClock(*req.EndTime)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", err, errs.ErrValidation)
			}
			gamenight.EndTime = &endTime
		}
	}
	if req.Location != nil {
		gamenight.Location = *req.Location
	}

	// Moving a finalized night moves its pending feedback request with it.
	if dateChanged && gamenight.FeedbackTask.Live() {
		if err := c.rescheduleFeedback(ctx, gamenight); err != nil {
			return nil, err
		}
		log.Info("feedback request rescheduled", "rid", rid)
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.gameNightRepo.SaveLifecycle(ctx, tx, gamenight)
	})
	if err != nil {
		return nil, err
	}

	return gamenight, nil
}

func (c *GameNightController) rescheduleFeedback(
	ctx context.Context,
	gamenight *GameNight,
) error {
	handle, err := gamenight.FeedbackTask.Revoke()
	if err != nil {
		return err
	}
	if err := c.dispatcher.Revoke(ctx, handle); err != nil {
		return err
	}

	fireAt := feedbackFireAt(gamenight)
	newHandle, err := c.dispatcher.Schedule(ctx, feedbackRequestPayload(gamenight), fireAt)
	if err != nil {
		return err
	}
	return gamenight.FeedbackTask.Schedule(newHandle, fireAt)
}

func (c *GameNightController) applyMembership(
	ctx context.Context,
	tx *gorm.DB,
	gamenight *GameNight,
	association string,
	value any,
	op MembershipOp,
) error {
	switch op {
	case MembershipAdded:
		return c.gameNightRepo.AppendMember(ctx, tx, gamenight, association, value)
	case MembershipRemoved:
		return c.gameNightRepo.RemoveMember(ctx, tx, gamenight, association, value)
	}
	return nil
}

func (c *GameNightController) allocateRID(ctx context.Context) (string, error) {
	log := c.log.Function("allocateRID")

	for range maxRIDAttempts {
		rid := utils.RandomRID()
		exists, err := c.gameNightRepo.RIDExists(ctx, rid)
		if err != nil {
			return "", err
		}
		if !exists {
			return rid, nil
		}
	}

	return "", log.ErrMsg("could not allocate a unique rid")
}

func (c *GameNightController) loadContacts(
	ctx context.Context,
	user *User,
	contactIDs []uuid.UUID,
) ([]Contact, error) {
	contacts := make([]Contact, 0, len(contactIDs))
	for _, contactID := range contactIDs {
		contact, err := c.contactRepo.GetScoped(ctx, user.ID, contactID)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}
	return contacts, nil
}

func (c *GameNightController) loadGames(
	ctx context.Context,
	user *User,
	gameIDs []uuid.UUID,
) ([]Game, error) {
	games := make([]Game, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		game, err := c.gameRepo.GetScoped(ctx, user.ID, gameID)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}
	return games, nil
}

func feedbackFireAt(gamenight *GameNight) time.Time {
	date := gamenight.Date
	return time.Date(
		date.Year(), date.Month(), date.Day()+1,
		feedbackRequestHour, 0, 0, 0,
		time.Local,
	)
}

func feedbackRequestPayload(gamenight *GameNight) NotificationPayload {
	return NotificationPayload{
		Subject: "How was game night?",
		Body: fmt.Sprintf(
			"Thanks for coming to game night on %s! Leave your feedback here: /gamenights/%s/feedback",
			gamenight.Date.Format("Monday, January 2"),
			gamenight.RID,
		),
		Recipients: gamenight.AttendeeEmails(),
	}
}

func inviteMail(host *User, gamenight *GameNight) (subject, body string) {
	subject = "You're invited to game night!"

	var b strings.Builder
	fmt.Fprintf(&b, "%s is hosting a game night on %s at %s.\n",
		host.DisplayName,
		gamenight.Date.Format("Monday, January 2"),
		gamenight.StartTime.Format("15:04"),
	)
	if gamenight.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", gamenight.Location)
	}
	fmt.Fprintf(&b, "Vote on what to play: /gamenights/%s\n", gamenight.RID)

	return subject, b.String()
}

func confirmedMail(gamenight *GameNight) (subject, body string) {
	subject = "Game night is confirmed!"
	body = fmt.Sprintf(
		"Game night on %s at %s is locked in. See you there: /gamenights/%s\n",
		gamenight.Date.Format("Monday, January 2"),
		gamenight.StartTime.Format("15:04"),
		gamenight.RID,
	)
	return subject, body
}

func decorate(gamenight *GameNight) *GameNightResponse {
	tallies := make(map[string]int, len(gamenight.Options))
	for _, option := range gamenight.Options {
		tallies[option.ID.String()] = statsController.TallyVotes(gamenight, option.ID)
	}

	return &GameNightResponse{
		GameNight:       gamenight,
		VoteTallies:     tallies,
		AvgOverall:      statsController.AverageOverall(gamenight),
		AttendanceRatio: statsController.AttendanceRatio(gamenight),
	}
}
