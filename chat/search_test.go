package chat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func populatedStore(t *testing.T) *Store {
	t.Helper()
	s, _ := newTestStore(t)

	s.ReplaceMessages([]Message{
		{Role: RoleUser, Content: "How does quantum tunneling work?"},
		{Role: RoleAssistant, Content: "Quantum tunneling lets particles cross energy barriers.", Provider: "groq"},
	})
	s.CreateConversation()
	s.ReplaceMessages([]Message{
		{Role: RoleUser, Content: "Summarize my reading list"},
	})
	return s
}

func TestSearchFindsMatchesAcrossConversations(t *testing.T) {
	s := populatedStore(t)

	results := s.Search("quantum", 0)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !strings.Contains(strings.ToLower(r.Snippet), "quantum") {
			t.Errorf("Snippet does not contain the match: %q", r.Snippet)
		}
	}
}

func TestSearchIsCaseInsensitiveAndLimited(t *testing.T) {
	s := populatedStore(t)

	if got := s.Search("QUANTUM", 1); len(got) != 1 {
		t.Errorf("Expected limit to cap results, got %d", len(got))
	}
	if got := s.Search("", 0); got != nil {
		t.Errorf("Expected no results for empty query")
	}
	if got := s.Search("no such phrase anywhere", 0); len(got) != 0 {
		t.Errorf("Expected no results, got %d", len(got))
	}
}

func TestStats(t *testing.T) {
	s := populatedStore(t)

	stats := s.Stats()
	if stats.ConversationCount != 2 {
		t.Errorf("Expected 2 conversations, got %d", stats.ConversationCount)
	}
	if stats.MessageCount != 3 {
		t.Errorf("Expected 3 messages, got %d", stats.MessageCount)
	}
	if stats.MessagesByRole[RoleUser] != 2 || stats.MessagesByRole[RoleAssistant] != 1 {
		t.Errorf("Unexpected role counts: %+v", stats.MessagesByRole)
	}
	if stats.MessagesByProvider["groq"] != 1 {
		t.Errorf("Unexpected provider counts: %+v", stats.MessagesByProvider)
	}
}

func TestExportMarkdown(t *testing.T) {
	s := populatedStore(t)
	id := s.CurrentConversationID()

	path := filepath.Join(t.TempDir(), "export.md")
	if err := s.ExportConversation(id, path, FormatMarkdown); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "Summarize my reading list") {
		t.Errorf("Export missing message content:\n%s", out)
	}
	if !strings.Contains(out, "## You") {
		t.Errorf("Export missing role heading:\n%s", out)
	}
}

func TestExportJSONRoundTrips(t *testing.T) {
	s := populatedStore(t)
	id := s.CurrentConversationID()

	path := filepath.Join(t.TempDir(), "export.json")
	if err := s.ExportConversation(id, path, FormatJSON); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if !strings.Contains(string(data), `"app_name": "KnowBase"`) {
		t.Errorf("Export missing metadata:\n%s", data)
	}
}

func TestExportUnknownConversation(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.ExportConversation("missing", filepath.Join(t.TempDir(), "x.json"), FormatJSON)
	if err == nil {
		t.Errorf("Expected error for unknown conversation")
	}
}
