package boltdb

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/pkg/errno"
	"github.com/colonyops/cockpit/pkg/utils/json"
)

// ConversationStore implements repo.ConversationRepository using BoltDB.
type ConversationStore struct {
	boltDB *bolt.DB
}

// NewConversationStore creates a new ConversationStore instance.
func NewConversationStore(boltDB *DB) *ConversationStore {
	return &ConversationStore{boltDB: boltDB.Bolt()}
}

func (s *ConversationStore) Create(_ context.Context, conv *entity.Conversation) error {
	return s.boltDB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversations)
		data, err := json.Marshal(conv)
		if err != nil {
			return fmt.Errorf("failed to marshal conversation: %w", err)
		}
		return b.Put([]byte(conv.ID), data)
	})
}

func (s *ConversationStore) Get(_ context.Context, id string) (*entity.Conversation, error) {
	var conv entity.Conversation
	err := s.boltDB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversations)
		data := b.Get([]byte(id))
		if data == nil {
			return errno.ErrConversationNotFound
		}
		return json.Unmarshal(data, &conv)
	})
	if err != nil {
		return nil, fmt.Errorf("get conversation %q: %w", id, err)
	}
	return &conv, nil
}

func (s *ConversationStore) Update(_ context.Context, conv *entity.Conversation) error {
	return s.boltDB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversations)
		if b.Get([]byte(conv.ID)) == nil {
			return fmt.Errorf("conversation %q: %w", conv.ID, errno.ErrConversationNotFound)
		}
		data, err := json.Marshal(conv)
		if err != nil {
			return fmt.Errorf("failed to marshal conversation: %w", err)
		}
		return b.Put([]byte(conv.ID), data)
	})
}
