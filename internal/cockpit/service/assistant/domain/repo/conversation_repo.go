package repo

import (
	"context"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
)

// ConversationRepository is the durable store for conversations. The
// orchestrator only ever appends to a conversation; implementations may
// overwrite the whole record on Update.
type ConversationRepository interface {
	Create(ctx context.Context, conv *entity.Conversation) error

	// Get returns errno.ErrConversationNotFound when no conversation
	// exists under id.
	Get(ctx context.Context, id string) (*entity.Conversation, error)

	Update(ctx context.Context, conv *entity.Conversation) error
}
