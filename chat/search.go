package chat

import "strings"

const snippetContext = 32

// SearchResult represents a search result
type SearchResult struct {
	ConversationID    string
	ConversationTitle string
	Message           Message
	Snippet           string
}

// Search performs a case-insensitive substring search over all messages in
// the collection, newest conversation first. A limit of 0 means no limit.
func (s *Store) Search(query string, limit int) []SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	var results []SearchResult
	for _, conv := range s.conversations {
		for _, msg := range conv.Messages {
			idx := strings.Index(strings.ToLower(msg.Content), needle)
			if idx < 0 {
				continue
			}
			results = append(results, SearchResult{
				ConversationID:    conv.ID,
				ConversationTitle: conv.Title,
				Message:           msg,
				Snippet:           snippet(msg.Content, idx, len(query)),
			})
			if limit > 0 && len(results) >= limit {
				return results
			}
		}
	}
	return results
}

// snippet extracts the match with surrounding context, marking elided text
// with ellipses
func snippet(content string, idx, matchLen int) string {
	start := idx - snippetContext
	if start < 0 {
		start = 0
	}
	end := idx + matchLen + snippetContext
	if end > len(content) {
		end = len(content)
	}

	out := content[start:end]
	if start > 0 {
		out = "..." + out
	}
	if end < len(content) {
		out = out + "..."
	}
	return out
}
