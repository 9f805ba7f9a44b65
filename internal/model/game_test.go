package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestNewGameIsUpcoming(t *testing.T) {
	g := &Game{Name: "Chess Night", MinParticipants: 2, MaxParticipants: 10}
	assert.Equal(t, GameStatusUpcoming, g.Status())
}

func TestStartTransitionsToInProgress(t *testing.T) {
	g := &Game{}
	assert.True(t, g.Start(t0))
	assert.Equal(t, GameStatusInProgress, g.Status())
	assert.Equal(t, t0, *g.StartedAt)
}

func TestStartTwiceReturnsFalse(t *testing.T) {
	g := &Game{}
	g.Start(t0)

	assert.False(t, g.Start(t0.Add(time.Hour)))
	assert.Equal(t, t0, *g.StartedAt, "started_at must not change")
}

func TestCompleteBeforeStartReturnsFalse(t *testing.T) {
	g := &Game{}
	assert.False(t, g.Complete(t0))
	assert.Nil(t, g.CompletedAt)
	assert.Equal(t, GameStatusUpcoming, g.Status())
}

func TestCompleteTwiceReturnsFalse(t *testing.T) {
	g := &Game{}
	g.Start(t0)
	assert.True(t, g.Complete(t0.Add(time.Hour)))

	assert.False(t, g.Complete(t0.Add(2*time.Hour)))
	assert.Equal(t, t0.Add(time.Hour), *g.CompletedAt)
}

func TestFullLifecycle(t *testing.T) {
	g := &Game{Name: "Chess Night", Description: "...", MinParticipants: 2, MaxParticipants: 10}
	assert.Equal(t, GameStatusUpcoming, g.Status())

	assert.True(t, g.Start(t0))
	assert.Equal(t, GameStatusInProgress, g.Status())

	assert.True(t, g.Complete(t0.Add(time.Hour)))
	assert.Equal(t, GameStatusCompleted, g.Status())

	assert.False(t, g.Start(t0.Add(2*time.Hour)))
	assert.Equal(t, GameStatusCompleted, g.Status())
}

func TestCloneIsDeep(t *testing.T) {
	g := &Game{}
	g.Start(t0)

	c := g.Clone()
	*c.StartedAt = t0.Add(time.Hour)

	assert.Equal(t, t0, *g.StartedAt)
}

func TestParseGameStatus(t *testing.T) {
	s, ok := ParseGameStatus("in_progress")
	assert.True(t, ok)
	assert.Equal(t, GameStatusInProgress, s)

	_, ok = ParseGameStatus("paused")
	assert.False(t, ok)
}

func TestValidationErrorFullMessages(t *testing.T) {
	ve := &ValidationError{}
	ve.Add("password_confirmation", MsgConfirmation)
	ve.Add("username", MsgTaken)

	assert.True(t, ve.Has("username"))
	assert.False(t, ve.Has("email"))
	assert.Equal(t, []string{
		"Password confirmation doesn't match Password",
		"Username has already been taken",
	}, ve.FullMessages())
	assert.Error(t, ve.ErrOrNil())
}

func TestSessionExpired(t *testing.T) {
	s := &Session{ExpiresAt: t0}
	assert.False(t, s.Expired(t0))
	assert.True(t, s.Expired(t0.Add(time.Second)))
}
