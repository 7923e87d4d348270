// Package session owns the page-context session state: credentials, provider
// API keys and UI preferences, each stored under a fixed key.
package session

import (
	"strconv"

	"knowbase-core/kv"
	"knowbase-core/utils"
)

// Fixed persistence keys. The first three are watched by the credential sync
// bridge; their names are part of the cross-context wire contract.
const (
	KeyAuthToken     = "authToken"
	KeyUsername      = "username"
	KeyGroqAPIKey    = "groqApiKey"
	KeyOpenAIAPIKey  = "openaiApiKey"
	KeyFontFamily    = "fontFamily"
	KeyFontSize      = "fontSize"
	KeyConversations = "conversations"
)

// DefaultFontSize is used when no stored size exists or parsing fails
const DefaultFontSize = 14

// Session provides typed access to the page-context session state. It is
// constructed explicitly and carries no package-level state.
type Session struct {
	store  kv.Store
	logger *utils.Logger
}

// New creates a session over the given page-context store
func New(store kv.Store, logger *utils.Logger) *Session {
	return &Session{store: store, logger: logger}
}

// Login stores the auth token and username
func (s *Session) Login(token, username string) {
	s.store.Set(KeyAuthToken, token)
	s.store.Set(KeyUsername, username)
	s.logger.Info("Logged in as %s (token %s)", username, utils.RedactSecret(token))
}

// Logout clears the auth token and username
func (s *Session) Logout() {
	s.store.Remove(KeyAuthToken)
	s.store.Remove(KeyUsername)
	s.logger.Info("Logged out")
}

// Token returns the stored auth token, if any
func (s *Session) Token() (string, bool) {
	return s.store.Get(KeyAuthToken)
}

// Username returns the stored username, if any
func (s *Session) Username() (string, bool) {
	return s.store.Get(KeyUsername)
}

// SetGroqAPIKey stores the Groq provider API key
func (s *Session) SetGroqAPIKey(key string) {
	s.store.Set(KeyGroqAPIKey, key)
}

// GroqAPIKey returns the stored Groq provider API key, if any
func (s *Session) GroqAPIKey() (string, bool) {
	return s.store.Get(KeyGroqAPIKey)
}

// SetOpenAIAPIKey stores the OpenAI provider API key
func (s *Session) SetOpenAIAPIKey(key string) {
	s.store.Set(KeyOpenAIAPIKey, key)
}

// OpenAIAPIKey returns the stored OpenAI provider API key, if any
func (s *Session) OpenAIAPIKey() (string, bool) {
	return s.store.Get(KeyOpenAIAPIKey)
}

// SetFont stores the font preferences
func (s *Session) SetFont(family string, size int) {
	s.store.Set(KeyFontFamily, family)
	s.store.Set(KeyFontSize, strconv.Itoa(size))
}

// Font returns the stored font preferences, falling back to defaults
func (s *Session) Font() (string, int) {
	family, ok := s.store.Get(KeyFontFamily)
	if !ok {
		family = "sans-serif"
	}
	size := DefaultFontSize
	if raw, ok := s.store.Get(KeyFontSize); ok {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return family, size
}
