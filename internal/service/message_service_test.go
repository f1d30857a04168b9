package service

import (
	"context"
	"testing"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/dto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// liveSession seeds a session bound to the returned agent so sends do not
// trigger the bot flow.
func liveSession(f *chatFixture) (*entity.ChatSession, *entity.LiveAgent) {
	agent := f.seedAgent(func(a *entity.LiveAgent) { a.CurrentSessions = 1 })
	session := f.seedSession(func(s *entity.ChatSession) {
		s.AgentId = &agent.Id
		s.SessionType = entity.SessionTypeLiveAgent
	})
	return session, agent
}

func TestSendThreadsReplyToSameSession(t *testing.T) {
	f := newChatFixture()
	f.openAllDay()
	session, _ := liveSession(f)

	original := f.seedMessage(session.Id, entity.UserSender(*session.UserId), time.Now().Add(-time.Minute))

	caller := entity.CallerIdentity{Id: *session.UserId, Role: entity.RoleUser}
	res, err := f.messages.Send(context.Background(), caller, session.Id, &dto.SendMessageRequest{
		Body:    "following up on this",
		ReplyTo: &original.Id,
	})
	require.NoError(t, err)

	require.NotNil(t, res.ReplyToId)
	assert.Equal(t, original.Id, *res.ReplyToId)

	var stored *entity.ChatMessage
	for _, m := range f.store.sessionMessages(session.Id) {
		if m.Id == res.Id {
			stored = m
		}
	}
	require.NotNil(t, stored)
	require.NotNil(t, stored.ReplyToId)
	assert.Equal(t, original.Id, *stored.ReplyToId)
}

func TestSendRejectsReplyToForeignMessage(t *testing.T) {
	f := newChatFixture()
	f.openAllDay()
	session, _ := liveSession(f)
	other := f.seedSession(nil)

	foreign := f.seedMessage(other.Id, entity.UserSender(*other.UserId), time.Now().Add(-time.Minute))

	caller := entity.CallerIdentity{Id: *session.UserId, Role: entity.RoleUser}
	for _, target := range []uuid.UUID{foreign.Id, uuid.New()} {
		id := target
		_, err := f.messages.Send(context.Background(), caller, session.Id, &dto.SendMessageRequest{
			Body:    "hello",
			ReplyTo: &id,
		})
		require.Error(t, err)

		appErr, ok := serverutils.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, serverutils.CodeValidation, appErr.Code)
	}
}

func TestAgentReplyRecordsResponseTime(t *testing.T) {
	f := newChatFixture()
	f.openAllDay()
	session, agent := liveSession(f)

	f.seedMessage(session.Id, entity.UserSender(*session.UserId), time.Now().Add(-10*time.Second))

	caller := entity.CallerIdentity{Id: agent.Id, Role: entity.RoleAgent}
	_, err := f.messages.Send(context.Background(), caller, session.Id, &dto.SendMessageRequest{Body: "happy to help"})
	require.NoError(t, err)

	metrics := f.store.getMetrics(session.Id)
	require.NotNil(t, metrics)
	assert.Equal(t, 1, metrics.ResponseSamples)
	assert.GreaterOrEqual(t, metrics.AvgAgentResponseSeconds, 9.0)
	assert.Less(t, metrics.AvgAgentResponseSeconds, 60.0)
}

func TestAgentReplyAfterOwnMessageRecordsNothing(t *testing.T) {
	f := newChatFixture()
	f.openAllDay()
	session, agent := liveSession(f)

	// The last message is the agent's own; there is no visitor wait to
	// measure.
	f.seedMessage(session.Id, entity.AgentSender(agent.Id), time.Now().Add(-10*time.Second))

	caller := entity.CallerIdentity{Id: agent.Id, Role: entity.RoleAgent}
	_, err := f.messages.Send(context.Background(), caller, session.Id, &dto.SendMessageRequest{Body: "one more thing"})
	require.NoError(t, err)

	metrics := f.store.getMetrics(session.Id)
	require.NotNil(t, metrics)
	assert.Equal(t, 0, metrics.ResponseSamples)
	assert.Zero(t, metrics.AvgAgentResponseSeconds)
}
