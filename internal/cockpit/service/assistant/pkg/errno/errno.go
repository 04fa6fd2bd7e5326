package errno

import (
	"errors"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNoModelAvailable     = errors.New("no chat model available")
)
