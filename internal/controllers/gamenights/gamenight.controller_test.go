package gamenightController

import (
	"context"
	"testing"
	"time"

	. "gamenight/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDispatcher struct {
	scheduled []uuid.UUID
	revoked   []uuid.UUID
	payloads  map[uuid.UUID]NotificationPayload
	fireAts   map[uuid.UUID]time.Time
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{
		payloads: make(map[uuid.UUID]NotificationPayload),
		fireAts:  make(map[uuid.UUID]time.Time),
	}
}

func (d *fakeDispatcher) Schedule(
	_ context.Context,
	payload NotificationPayload,
	fireAt time.Time,
) (uuid.UUID, error) {
	handle := uuid.New()
	d.scheduled = append(d.scheduled, handle)
	d.payloads[handle] = payload
	d.fireAts[handle] = fireAt
	return handle, nil
}

func (d *fakeDispatcher) Revoke(_ context.Context, handle uuid.UUID) error {
	d.revoked = append(d.revoked, handle)
	return nil
}

type fakeMailer struct {
	subjects   []string
	recipients [][]string
}

func (m *fakeMailer) Send(_ context.Context, subject, _ string, recipients []string) error {
	m.subjects = append(m.subjects, subject)
	m.recipients = append(m.recipients, recipients)
	return nil
}

func testController(dispatcher *fakeDispatcher, mailer *fakeMailer) *GameNightController {
	return &GameNightController{
		dispatcher: dispatcher,
		mailer:     mailer,
		log:        logger.New("gamenightControllerTest"),
	}
}

func finalizedFixture() *GameNight {
	host := Contact{FirstName: "Ann", LastName: "A", Email: "ann@example.com"}
	host.ID = uuid.New()
	guest := Contact{FirstName: "Bob", LastName: "B", Email: "bob@example.com"}
	guest.ID = uuid.New()

	gamenight := &GameNight{
		RID:       "abcDEF123abcDEF",
		Date:      time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		StartTime: time.Date(0, 1, 1, 19, 0, 0, 0, time.UTC),
		Status:    StatusVoting,
		Invitees:  []Contact{host, guest},
		Attendees: []Contact{host, guest},
	}
	gamenight.ID = uuid.New()
	return gamenight
}

func TestTransitionStatusSchedulesFeedbackOnFinalize(t *testing.T) {
	dispatcher := newFakeDispatcher()
	mailer := &fakeMailer{}
	controller := testController(dispatcher, mailer)
	gamenight := finalizedFixture()

	err := controller.transitionStatus(context.Background(), gamenight, StatusFinalized)
	require.NoError(t, err)

	assert.Equal(t, StatusFinalized, gamenight.Status)
	require.Len(t, dispatcher.scheduled, 1)
	assert.Empty(t, dispatcher.revoked)
	assert.True(t, gamenight.FeedbackTask.Live())
	assert.Equal(t, dispatcher.scheduled[0], *gamenight.FeedbackTask.Handle)

	fireAt := dispatcher.fireAts[dispatcher.scheduled[0]]
	assert.Equal(t, 14, fireAt.Day(), "feedback request fires the morning after")
	assert.Equal(t, 10, fireAt.Hour())

	payload := dispatcher.payloads[dispatcher.scheduled[0]]
	assert.ElementsMatch(t,
		[]string{"ann@example.com", "bob@example.com"},
		payload.Recipients,
	)

	require.Len(t, mailer.subjects, 1, "attendees get an immediate confirmation")
	assert.Equal(t, "Game night is confirmed!", mailer.subjects[0])
	assert.ElementsMatch(t,
		[]string{"ann@example.com", "bob@example.com"},
		mailer.recipients[0],
	)
}

func TestTransitionStatusRevokesOnUnfinalize(t *testing.T) {
	dispatcher := newFakeDispatcher()
	controller := testController(dispatcher, &fakeMailer{})
	gamenight := finalizedFixture()
	ctx := context.Background()

	require.NoError(t, controller.transitionStatus(ctx, gamenight, StatusFinalized))
	handle := dispatcher.scheduled[0]

	require.NoError(t, controller.transitionStatus(ctx, gamenight, StatusVoting))
	assert.Equal(t, StatusVoting, gamenight.Status)
	require.Len(t, dispatcher.revoked, 1)
	assert.Equal(t, handle, dispatcher.revoked[0])
	assert.False(t, gamenight.FeedbackTask.Live())
}

func TestTransitionStatusRefinalizeSchedulesExactlyOneNewTask(t *testing.T) {
	dispatcher := newFakeDispatcher()
	controller := testController(dispatcher, &fakeMailer{})
	gamenight := finalizedFixture()
	ctx := context.Background()

	require.NoError(t, controller.transitionStatus(ctx, gamenight, StatusFinalized))
	require.NoError(t, controller.transitionStatus(ctx, gamenight, StatusVoting))
	require.NoError(t, controller.transitionStatus(ctx, gamenight, StatusFinalized))

	require.Len(t, dispatcher.scheduled, 2, "one task per finalization, no duplicates")
	require.Len(t, dispatcher.revoked, 1)
	assert.True(t, gamenight.FeedbackTask.Live())
	assert.Equal(t, dispatcher.scheduled[1], *gamenight.FeedbackTask.Handle,
		"the live handle is the new one, not a lingering old one")
}

func TestTransitionStatusCancelRevokesPendingTask(t *testing.T) {
	dispatcher := newFakeDispatcher()
	mailer := &fakeMailer{}
	controller := testController(dispatcher, mailer)
	gamenight := finalizedFixture()
	ctx := context.Background()

	require.NoError(t, controller.transitionStatus(ctx, gamenight, StatusFinalized))
	require.NoError(t, controller.transitionStatus(ctx, gamenight, StatusCancelled))

	assert.Equal(t, StatusCancelled, gamenight.Status)
	assert.Len(t, dispatcher.revoked, 1)
	assert.Len(t, mailer.subjects, 1, "no mail goes out on cancellation")
}

func TestTransitionStatusVotingToCancelledHasNoSideEffects(t *testing.T) {
	dispatcher := newFakeDispatcher()
	mailer := &fakeMailer{}
	controller := testController(dispatcher, mailer)
	gamenight := finalizedFixture()

	err := controller.transitionStatus(context.Background(), gamenight, StatusCancelled)
	require.NoError(t, err)

	assert.Empty(t, dispatcher.scheduled)
	assert.Empty(t, dispatcher.revoked)
	assert.Empty(t, mailer.subjects)
}

func TestRescheduleFeedbackMovesTheTimer(t *testing.T) {
	dispatcher := newFakeDispatcher()
	controller := testController(dispatcher, &fakeMailer{})
	gamenight := finalizedFixture()
	ctx := context.Background()

	require.NoError(t, controller.transitionStatus(ctx, gamenight, StatusFinalized))
	oldHandle := dispatcher.scheduled[0]

	gamenight.Date = gamenight.Date.AddDate(0, 0, 7)
	require.NoError(t, controller.rescheduleFeedback(ctx, gamenight))

	require.Len(t, dispatcher.scheduled, 2)
	assert.Equal(t, []uuid.UUID{oldHandle}, dispatcher.revoked)
	assert.Equal(t, dispatcher.scheduled[1], *gamenight.FeedbackTask.Handle)
	assert.Equal(t, 21, dispatcher.fireAts[dispatcher.scheduled[1]].Day())
}

func TestRescheduleFeedbackRejectsDeliveredRequest(t *testing.T) {
	dispatcher := newFakeDispatcher()
	controller := testController(dispatcher, &fakeMailer{})
	gamenight := finalizedFixture()
	ctx := context.Background()

	require.NoError(t, controller.transitionStatus(ctx, gamenight, StatusFinalized))
	require.NoError(t, gamenight.FeedbackTask.MarkFired())

	// A date change after delivery must not send a second request.
	assert.False(t, gamenight.FeedbackTask.Live())
	gamenight.Date = gamenight.Date.AddDate(0, 0, 7)
	assert.ErrorIs(t, controller.rescheduleFeedback(ctx, gamenight), ErrTaskNotScheduled)

	assert.Len(t, dispatcher.scheduled, 1)
	assert.Empty(t, dispatcher.revoked)
}

func TestFeedbackFireAtRollsMonthBoundary(t *testing.T) {
	gamenight := &GameNight{Date: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)}

	fireAt := feedbackFireAt(gamenight)
	assert.Equal(t, time.April, fireAt.Month())
	assert.Equal(t, 1, fireAt.Day())
	assert.Equal(t, 10, fireAt.Hour())
}
