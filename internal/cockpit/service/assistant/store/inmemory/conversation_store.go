package inmemory

import (
	"context"
	"sync"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/pkg/errno"
)

// ConversationStore is an in-memory implementation of repo.ConversationRepository.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*entity.Conversation
}

// NewConversationStore creates a new instance of the ConversationStore.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]*entity.Conversation),
	}
}

func (s *ConversationStore) Create(_ context.Context, conv *entity.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conv.ID] = conv
	return nil
}

func (s *ConversationStore) Get(_ context.Context, id string) (*entity.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, errno.ErrConversationNotFound
	}
	return conv, nil
}

func (s *ConversationStore) Update(_ context.Context, conv *entity.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[conv.ID]; !ok {
		return errno.ErrConversationNotFound
	}
	s.conversations[conv.ID] = conv
	return nil
}
