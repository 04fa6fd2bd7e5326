package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// StoreOptions configure the directory database and the conversation store.
type StoreOptions struct {
	// DirectoryPath is the sqlite file holding places, people, requests,
	// cats and appointments. ":memory:" keeps it ephemeral.
	DirectoryPath string `json:"directory-path" mapstructure:"directory-path"`

	// ConversationStore selects the conversation backend.
	ConversationStore string `json:"conversation-store" mapstructure:"conversation-store"`

	// BoltPath is the bolt file used when ConversationStore is "boltdb".
	BoltPath string `json:"bolt-path" mapstructure:"bolt-path"`

	// Seed loads demo directory data at startup.
	Seed bool `json:"seed" mapstructure:"seed"`
}

const (
	ConversationStoreInMemory = "inmemory"
	ConversationStoreBoltDB   = "boltdb"
)

func NewStoreOptions() *StoreOptions {
	return &StoreOptions{
		DirectoryPath:     "data/directory.db",
		ConversationStore: ConversationStoreBoltDB,
		BoltPath:          "data/conversations.db",
	}
}

func (o *StoreOptions) Validate() []error {
	var errs []error
	if o.DirectoryPath == "" {
		errs = append(errs, fmt.Errorf("directory path is required"))
	}
	switch o.ConversationStore {
	case ConversationStoreInMemory:
	case ConversationStoreBoltDB:
		if o.BoltPath == "" {
			errs = append(errs, fmt.Errorf("bolt path is required for the boltdb conversation store"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid conversation store %q, must be 'inmemory' or 'boltdb'", o.ConversationStore))
	}
	return errs
}

func (o *StoreOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.DirectoryPath, "store.directory-path", o.DirectoryPath, "Path to the sqlite directory database.")
	fs.StringVar(&o.ConversationStore, "store.conversation-store", o.ConversationStore, "Conversation store backend: 'inmemory' or 'boltdb'.")
	fs.StringVar(&o.BoltPath, "store.bolt-path", o.BoltPath, "Path to the bolt conversation database.")
	fs.BoolVar(&o.Seed, "store.seed", o.Seed, "Load demo directory data at startup.")
}
