package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// ExportFormat represents the export format
type ExportFormat string

const (
	FormatJSON     ExportFormat = "json"
	FormatMarkdown ExportFormat = "markdown"
)

// conversationExport wraps a conversation with export metadata
type conversationExport struct {
	Conversation *Conversation     `json:"conversation"`
	Metadata     map[string]string `json:"metadata"`
}

// ExportConversation writes a single conversation to a file in the given
// format
func (s *Store) ExportConversation(id, path string, format ExportFormat) error {
	conv := s.findConversation(id)
	if conv == nil {
		return fmt.Errorf("conversation not found: %s", id)
	}

	switch format {
	case FormatJSON:
		return exportJSON(conv, path)
	case FormatMarkdown:
		return exportMarkdown(conv, path)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// findConversation returns a deep copy so the export can run without holding
// the store lock
func (s *Store) findConversation(id string) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, conv := range s.conversations {
		if conv.ID == id {
			copied := *conv
			copied.Messages = make([]Message, len(conv.Messages))
			copy(copied.Messages, conv.Messages)
			return &copied
		}
	}
	return nil
}

// exportJSON exports a conversation to JSON format
func exportJSON(conv *Conversation, path string) error {
	export := conversationExport{
		Conversation: conv,
		Metadata: map[string]string{
			"export_version": "1.0",
			"export_date":    time.Now().Format(time.RFC3339),
			"app_name":       "KnowBase",
		},
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// exportMarkdown exports a conversation to Markdown format
func exportMarkdown(conv *Conversation, path string) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", conv.Title))
	sb.WriteString(fmt.Sprintf("**Created**: %s\n\n", conv.CreatedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString("---\n\n")

	for _, msg := range conv.Messages {
		switch msg.Role {
		case RoleUser:
			sb.WriteString("## You\n\n")
		case RoleAssistant:
			if msg.Provider != "" {
				sb.WriteString(fmt.Sprintf("## Assistant (%s)\n\n", msg.Provider))
			} else {
				sb.WriteString("## Assistant\n\n")
			}
		default:
			sb.WriteString(fmt.Sprintf("## %s\n\n", msg.Role))
		}

		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")

		if len(msg.Sources) > 0 {
			sb.WriteString("**Sources**:\n\n")
			for _, src := range msg.Sources {
				if src.URL != "" {
					sb.WriteString(fmt.Sprintf("- [%s](%s)\n", src.Title, src.URL))
				} else {
					sb.WriteString(fmt.Sprintf("- %s\n", src.Title))
				}
			}
			sb.WriteString("\n")
		}
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
