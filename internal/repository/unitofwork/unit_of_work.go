package unitofwork

import (
	"context"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BusinessHoursRepository() contract.BusinessHoursRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ChatTemplateRepository() contract.ChatTemplateRepository
	LiveAgentRepository() contract.LiveAgentRepository
	ChatMetricsRepository() contract.ChatMetricsRepository
}
