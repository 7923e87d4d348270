package chat

// HistoryStats represents conversation history statistics
type HistoryStats struct {
	ConversationCount  int
	MessageCount       int
	MessagesByRole     map[string]int
	MessagesByProvider map[string]int
}

// Stats returns statistics over the whole in-memory collection
func (s *Store) Stats() *HistoryStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &HistoryStats{
		ConversationCount:  len(s.conversations),
		MessagesByRole:     make(map[string]int),
		MessagesByProvider: make(map[string]int),
	}

	for _, conv := range s.conversations {
		stats.MessageCount += len(conv.Messages)
		for _, msg := range conv.Messages {
			stats.MessagesByRole[msg.Role]++
			if msg.Provider != "" {
				stats.MessagesByProvider[msg.Provider]++
			}
		}
	}

	return stats
}
