package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/constant"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchIntent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"job keyword", "Are there any job openings in Berlin?", constant.IntentJobSearch},
		{"career keyword", "I'd like to grow my CAREER with you", constant.IntentJobSearch},
		{"partnership keyword", "We want to collaborate on a project", constant.IntentPartnership},
		{"vendor keyword", "Do you accept new vendors?", constant.IntentPartnership},
		{"human keyword", "Can I speak to someone please", constant.IntentHumanAgent},
		{"operator keyword", "OPERATOR", constant.IntentHumanAgent},
		{"human wins over job", "I need an agent to help with my job application", constant.IntentHumanAgent},
		{"no match", "hello there", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchIntent(tt.message); got != tt.want {
				t.Errorf("MatchIntent(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestReplySchedulerFires(t *testing.T) {
	scheduler := NewReplyScheduler()
	sessionId := uuid.New()

	done := make(chan struct{})
	scheduler.Schedule(sessionId, time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled task never fired")
	}

	if scheduler.Pending(sessionId) {
		t.Error("task still pending after firing")
	}
}

func TestReplySchedulerCancel(t *testing.T) {
	scheduler := NewReplyScheduler()
	sessionId := uuid.New()

	var fired atomic.Bool
	scheduler.Schedule(sessionId, 20*time.Millisecond, func() { fired.Store(true) })
	scheduler.Cancel(sessionId)

	if scheduler.Pending(sessionId) {
		t.Error("task still pending after cancel")
	}

	time.Sleep(50 * time.Millisecond)
	if fired.Load() {
		t.Error("cancelled task fired anyway")
	}
}

func TestReplySchedulerReplacesPendingTask(t *testing.T) {
	scheduler := NewReplyScheduler()
	sessionId := uuid.New()

	var first, second atomic.Bool
	scheduler.Schedule(sessionId, 20*time.Millisecond, func() { first.Store(true) })
	scheduler.Schedule(sessionId, time.Millisecond, func() { second.Store(true) })

	time.Sleep(50 * time.Millisecond)
	if first.Load() {
		t.Error("replaced task fired")
	}
	if !second.Load() {
		t.Error("replacement task never fired")
	}
}

func TestReplySchedulerIsolatesSessions(t *testing.T) {
	scheduler := NewReplyScheduler()
	a, b := uuid.New(), uuid.New()

	var fired atomic.Bool
	scheduler.Schedule(a, time.Millisecond, func() { fired.Store(true) })
	scheduler.Schedule(b, time.Hour, func() {})

	scheduler.Cancel(b)

	time.Sleep(30 * time.Millisecond)
	if !fired.Load() {
		t.Error("cancelling one session cancelled another")
	}
	if scheduler.Pending(b) {
		t.Error("cancelled session still pending")
	}
}

// lastBotMessage returns the newest bot-authored message in the session.
func lastBotMessage(f *chatFixture, sessionId uuid.UUID) *entity.ChatMessage {
	msgs := f.store.sessionMessages(sessionId)
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Sender.Kind == entity.SenderBot {
			return msgs[i]
		}
	}
	return nil
}

func TestBotReplyOptionSelectionEscalates(t *testing.T) {
	f := newChatFixture()
	f.openAllDay()
	agent := f.seedAgent(nil)
	session := f.seedSession(nil)

	err := f.bot.reply(context.Background(), session.Id, "Talk to a human", entity.MessageOptionSelection)
	require.NoError(t, err)

	stored := f.store.getSession(session.Id)
	require.NotNil(t, stored.AgentId)
	assert.Equal(t, agent.Id, *stored.AgentId)
	assert.Equal(t, entity.SessionTypeLiveAgent, stored.SessionType)
	assert.Equal(t, entity.SessionActive, stored.Status)
}

func TestBotReplyOptionSelectionUsesOptionIntent(t *testing.T) {
	f := newChatFixture()
	f.openAllDay()
	session := f.seedSession(nil)

	err := f.bot.reply(context.Background(), session.Id, "Partnership inquiry", entity.MessageOptionSelection)
	require.NoError(t, err)

	msg := lastBotMessage(f, session.Id)
	require.NotNil(t, msg)
	assert.Equal(t, constant.BotResponses[constant.IntentPartnership], f.decrypt(msg))
}

func TestBotReplyFormDataAcknowledged(t *testing.T) {
	f := newChatFixture()
	f.openAllDay()
	session := f.seedSession(nil)

	err := f.bot.reply(context.Background(), session.Id, `{"email":"riley@example.com"}`, entity.MessageFormData)
	require.NoError(t, err)

	msg := lastBotMessage(f, session.Id)
	require.NotNil(t, msg)
	assert.Equal(t, constant.FormReceivedMessage, f.decrypt(msg))
}

func TestBotReplyChecksHoursAtReplyTime(t *testing.T) {
	f := newChatFixture()
	f.closedAllWeek()

	// Created during hours, replying after close: the daytime-only template
	// must not apply and the reply must carry the outside-hours flag.
	session := f.seedSession(func(s *entity.ChatSession) { s.CreatedDuringHours = true })

	tpl := &entity.ChatTemplate{
		Id:                uuid.New(),
		Type:              "bot_reply",
		Content:           "Our team is right on it!",
		BusinessHoursOnly: true,
		Priority:          10,
		IsActive:          true,
	}
	require.NoError(t, f.factory.ChatTemplateRepository().Create(context.Background(), tpl))

	err := f.bot.reply(context.Background(), session.Id, "hello there", entity.MessageText)
	require.NoError(t, err)

	msg := lastBotMessage(f, session.Id)
	require.NotNil(t, msg)
	assert.Equal(t, constant.DefaultBotResponse, f.decrypt(msg))
	assert.True(t, msg.Metadata.OutsideHours)
}
