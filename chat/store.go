// Package chat implements the multi-conversation history store. The whole
// collection lives in memory and is written through to a persistence adapter
// on every mutation, pruned to a fixed bound.
package chat

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"

	"knowbase-core/kv"
	"knowbase-core/metrics"
	"knowbase-core/session"
	"knowbase-core/utils"
)

const (
	// MaxConversations bounds the persisted history. Conversations beyond
	// the bound are dropped from the tail on write, never on read.
	MaxConversations = 50

	// DefaultTitle is the title of a conversation with no user message yet
	DefaultTitle = "New Chat"

	maxTitleLength = 30
)

// Store owns the conversation collection and the active-conversation pointer
type Store struct {
	store   kv.Store
	logger  *utils.Logger
	metrics *metrics.Metrics

	mu            sync.Mutex
	conversations []*Conversation
	currentID     string // empty means no active conversation
	loaded        bool
}

// NewStore creates a conversation store over the given page-context store.
// Load must be called before any other operation.
func NewStore(store kv.Store, logger *utils.Logger) *Store {
	return &Store{store: store, logger: logger}
}

// AttachMetrics enables metrics reporting
func (s *Store) AttachMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// Load reads the persisted collection. Missing, malformed or empty data
// initializes an empty collection; otherwise the newest conversation becomes
// active. Until Load has run, all persistence writes are suppressed so an
// empty initial state cannot overwrite previously stored history.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return
	}
	defer func() { s.loaded = true }()

	raw, ok := s.store.Get(session.KeyConversations)
	if !ok {
		return
	}

	var stored []*Conversation
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("Malformed conversation history, starting empty: %v", err)
		return
	}

	// Validate at the load boundary: drop null entries, never fail
	conversations := make([]*Conversation, 0, len(stored))
	for _, conv := range stored {
		if conv == nil || conv.ID == "" {
			continue
		}
		conversations = append(conversations, conv)
	}
	if len(conversations) == 0 {
		return
	}

	s.conversations = conversations
	s.currentID = conversations[0].ID
}

// CurrentConversationID returns the active conversation id, empty when none
func (s *Store) CurrentConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// Conversations returns the collection, newest first
func (s *Store) Conversations() []*Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

// Messages returns the active conversation's messages, or nil when no
// conversation is active. Pure projection, no side effect.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conv := s.current(); conv != nil {
		return conv.Messages
	}
	return nil
}

// ReplaceMessages replaces the active conversation's messages with msgs,
// creating and activating a new conversation when none is active and msgs is
// non-empty.
func (s *Store) ReplaceMessages(msgs []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyMessages(msgs)
}

// UpdateMessages applies fn to the current active messages and stores the
// result. fn always observes the current in-memory state, so rapid
// sequential updates cannot lose writes to a stale snapshot.
func (s *Store) UpdateMessages(fn func(current []Message) []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current []Message
	if conv := s.current(); conv != nil {
		current = conv.Messages
	}
	s.applyMessages(fn(current))
}

// applyMessages implements the shared mutation path. Caller holds the lock.
func (s *Store) applyMessages(msgs []Message) {
	now := time.Now()

	conv := s.current()
	if conv == nil {
		if len(msgs) == 0 {
			return
		}
		conv = &Conversation{
			ID:        uuid.NewString(),
			Title:     deriveTitle(msgs),
			CreatedAt: now,
			UpdatedAt: now,
			Messages:  msgs,
		}
		s.conversations = append([]*Conversation{conv}, s.conversations...)
		s.truncate()
		s.currentID = conv.ID
		s.persist()
		return
	}

	wasEmpty := len(conv.Messages) == 0
	conv.Messages = msgs
	conv.UpdatedAt = now
	// Title is set exactly once, on the empty-to-non-empty transition
	if wasEmpty && len(msgs) > 0 {
		conv.Title = deriveTitle(msgs)
	}
	s.persist()
}

// CreateConversation prepends a new empty conversation, makes it active and
// returns its id
func (s *Store) CreateConversation() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	conv := &Conversation{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []Message{},
	}
	s.conversations = append([]*Conversation{conv}, s.conversations...)
	s.truncate()
	s.currentID = conv.ID
	s.persist()
	return conv.ID
}

// SelectConversation sets the active pointer. Selecting an id that is not in
// the collection is legal and simply yields empty message views.
func (s *Store) SelectConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = id
}

// DeleteConversation removes the conversation with the given id. If it was
// active, the newest remaining conversation becomes active.
func (s *Store) DeleteConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteConversation(id)
}

// ClearHistory deletes the active conversation; no-op when none is active
func (s *Store) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == "" {
		return
	}
	s.deleteConversation(s.currentID)
}

// deleteConversation implements removal. Caller holds the lock.
func (s *Store) deleteConversation(id string) {
	remaining := make([]*Conversation, 0, len(s.conversations))
	removed := false
	for _, conv := range s.conversations {
		if conv.ID == id {
			removed = true
			continue
		}
		remaining = append(remaining, conv)
	}
	if !removed {
		return
	}

	s.conversations = remaining
	if s.currentID == id {
		if len(remaining) > 0 {
			s.currentID = remaining[0].ID
		} else {
			s.currentID = ""
		}
	}
	s.persist()
}

// current returns the active conversation, or nil. Caller holds the lock.
func (s *Store) current() *Conversation {
	if s.currentID == "" {
		return nil
	}
	for _, conv := range s.conversations {
		if conv.ID == s.currentID {
			return conv
		}
	}
	return nil
}

// truncate prunes the tail of the collection to MaxConversations. Caller
// holds the lock.
func (s *Store) truncate() {
	if len(s.conversations) > MaxConversations {
		s.conversations = s.conversations[:MaxConversations]
	}
}

// persist writes the whole collection through to the persistence adapter,
// pruned to MaxConversations. Suppressed until Load has completed. Caller
// holds the lock.
func (s *Store) persist() {
	if !s.loaded {
		return
	}

	list := s.conversations
	if len(list) > MaxConversations {
		list = list[:MaxConversations]
	}

	data, err := json.Marshal(list)
	if err != nil {
		s.logger.Error("Failed to marshal conversation history: %v", err)
		s.metrics.IncHistoryPersistFailures()
		return
	}

	s.store.Set(session.KeyConversations, string(data))
	s.metrics.IncHistoryPersists()
}

// deriveTitle computes a conversation title from the first user message, or
// falls back to the default title when there is none
func deriveTitle(msgs []Message) string {
	for _, msg := range msgs {
		if msg.Role == RoleUser {
			return titleFromContent(msg.Content)
		}
	}
	return DefaultTitle
}

// titleFromContent collapses newlines, trims, and truncates to 30 characters
// with a trailing ellipsis
func titleFromContent(content string) string {
	title := strings.ReplaceAll(content, "\r\n", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	title = strings.TrimSpace(title)

	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}

	truncated := strings.TrimRightFunc(string(runes[:maxTitleLength]), unicode.IsSpace)
	return truncated + "..."
}
