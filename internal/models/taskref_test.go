package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackTask_Transitions(t *testing.T) {
	fireAt := time.Now().Add(24 * time.Hour)

	t.Run("Schedule from none", func(t *testing.T) {
		task := &FeedbackTask{}
		handle := uuid.New()

		require.NoError(t, task.Schedule(handle, fireAt))
		assert.True(t, task.Live())
		assert.Equal(t, &handle, task.Handle)
		assert.Equal(t, TaskScheduled, task.State)
	})

	t.Run("Double schedule without revoke is rejected", func(t *testing.T) {
		task := &FeedbackTask{}
		require.NoError(t, task.Schedule(uuid.New(), fireAt))

		err := task.Schedule(uuid.New(), fireAt)
		assert.ErrorIs(t, err, ErrTaskAlreadyScheduled)
	})

	t.Run("Revoke returns the live handle", func(t *testing.T) {
		task := &FeedbackTask{}
		handle := uuid.New()
		require.NoError(t, task.Schedule(handle, fireAt))

		revoked, err := task.Revoke()
		require.NoError(t, err)
		assert.Equal(t, handle, revoked)
		assert.False(t, task.Live())
	})

	t.Run("Revoke without a live task fails", func(t *testing.T) {
		task := &FeedbackTask{}
		_, err := task.Revoke()
		assert.ErrorIs(t, err, ErrTaskNotScheduled)
	})

	t.Run("Revoke then reschedule leaves one live handle", func(t *testing.T) {
		task := &FeedbackTask{}
		first := uuid.New()
		require.NoError(t, task.Schedule(first, fireAt))

		_, err := task.Revoke()
		require.NoError(t, err)

		second := uuid.New()
		require.NoError(t, task.Schedule(second, fireAt))
		assert.Equal(t, &second, task.Handle)
		assert.True(t, task.Live())
	})

	t.Run("MarkFired ends the scheduled state", func(t *testing.T) {
		task := &FeedbackTask{}
		require.NoError(t, task.Schedule(uuid.New(), fireAt))
		require.NoError(t, task.MarkFired())
		assert.Equal(t, TaskFired, task.State)
		assert.ErrorIs(t, task.MarkFired(), ErrTaskNotScheduled)
	})
}
