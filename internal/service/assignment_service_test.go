package service

import (
	"testing"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"

	"github.com/stretchr/testify/assert"
)

func agentFixture(mutate func(*entity.LiveAgent)) *entity.LiveAgent {
	active := time.Now().Add(-10 * time.Minute)
	agent := &entity.LiveAgent{
		Name:            "Agent",
		Status:          entity.AgentOnline,
		CurrentSessions: 0,
		MaxChats:        5,
		Priority:        1,
		IsActive:        true,
		LastActiveAt:    &active,
	}
	if mutate != nil {
		mutate(agent)
	}
	return agent
}

func TestScoreAgent(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		mutate   func(*entity.LiveAgent)
		category string
		want     int
	}{
		{
			// priority 5 + load 30 + recency 10 + online 10
			name:   "idle online agent",
			mutate: nil,
			want:   55,
		},
		{
			// load drops by 6 per active session
			name:   "three active sessions",
			mutate: func(a *entity.LiveAgent) { a.CurrentSessions = 3 },
			want:   37,
		},
		{
			// load component floors at zero, never goes negative
			name:   "overloaded agent",
			mutate: func(a *entity.LiveAgent) { a.CurrentSessions = 10 },
			want:   25,
		},
		{
			name:     "specialization bonus",
			mutate:   func(a *entity.LiveAgent) { a.Skills = []string{"job_search"} },
			category: "job_search",
			want:     75,
		},
		{
			name:     "no bonus for other skills",
			mutate:   func(a *entity.LiveAgent) { a.Skills = []string{"partnership"} },
			category: "job_search",
			want:     55,
		},
		{
			name: "stale activity earns half recency",
			mutate: func(a *entity.LiveAgent) {
				stale := now.Add(-2 * time.Hour)
				a.LastActiveAt = &stale
			},
			want: 50,
		},
		{
			name: "very stale activity earns nothing",
			mutate: func(a *entity.LiveAgent) {
				stale := now.Add(-5 * time.Hour)
				a.LastActiveAt = &stale
			},
			want: 45,
		},
		{
			name:   "never active",
			mutate: func(a *entity.LiveAgent) { a.LastActiveAt = nil },
			want:   45,
		},
		{
			name:   "available beats online",
			mutate: func(a *entity.LiveAgent) { a.Status = entity.AgentAvailable },
			want:   60,
		},
		{
			name:   "priority multiplier",
			mutate: func(a *entity.LiveAgent) { a.Priority = 4 },
			want:   70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := agentFixture(tt.mutate)
			assert.Equal(t, tt.want, ScoreAgent(agent, tt.category, now))
		})
	}
}

func TestSelectBestAgent(t *testing.T) {
	now := time.Now()

	t.Run("empty pool", func(t *testing.T) {
		assert.Nil(t, SelectBestAgent(nil, AssignmentPreferences{}, now))
	})

	t.Run("highest score wins", func(t *testing.T) {
		junior := agentFixture(func(a *entity.LiveAgent) { a.Name = "junior" })
		senior := agentFixture(func(a *entity.LiveAgent) {
			a.Name = "senior"
			a.Priority = 3
		})

		got := SelectBestAgent([]*entity.LiveAgent{junior, senior}, AssignmentPreferences{}, now)
		assert.Equal(t, "senior", got.Name)
	})

	t.Run("specialist wins over generalist", func(t *testing.T) {
		generalist := agentFixture(func(a *entity.LiveAgent) { a.Name = "generalist" })
		specialist := agentFixture(func(a *entity.LiveAgent) {
			a.Name = "specialist"
			a.Skills = []string{"partnership"}
		})

		got := SelectBestAgent(
			[]*entity.LiveAgent{generalist, specialist},
			AssignmentPreferences{Category: "partnership"},
			now,
		)
		assert.Equal(t, "specialist", got.Name)
	})

	t.Run("tie broken by fewest sessions", func(t *testing.T) {
		// Five extra sessions (-30) offset by six priority steps (+30) make
		// the scores equal, so only the tie-break decides.
		busy := agentFixture(func(a *entity.LiveAgent) {
			a.Name = "busy"
			a.CurrentSessions = 5
			a.Priority = 7
		})
		idle := agentFixture(func(a *entity.LiveAgent) {
			a.Name = "idle"
		})
		if ScoreAgent(busy, "", now) != ScoreAgent(idle, "", now) {
			t.Fatalf("fixture scores diverged: %d vs %d", ScoreAgent(busy, "", now), ScoreAgent(idle, "", now))
		}

		got := SelectBestAgent([]*entity.LiveAgent{busy, idle}, AssignmentPreferences{}, now)
		assert.Equal(t, "idle", got.Name)
	})

	t.Run("tie broken by most recent activity", func(t *testing.T) {
		older := now.Add(-50 * time.Minute)
		newer := now.Add(-5 * time.Minute)

		stale := agentFixture(func(a *entity.LiveAgent) {
			a.Name = "stale"
			a.LastActiveAt = &older
		})
		fresh := agentFixture(func(a *entity.LiveAgent) {
			a.Name = "fresh"
			a.LastActiveAt = &newer
		})

		got := SelectBestAgent([]*entity.LiveAgent{stale, fresh}, AssignmentPreferences{}, now)
		assert.Equal(t, "fresh", got.Name)
	})
}
