package cmd

import (
	"strings"
	"testing"

	"github.com/ageborn-dev/architect-mcp-cli/internal/api"
)

func sampleTools() []api.Tool {
	return []api.Tool{
		{Name: "fetch-url", Active: true, Category: "web", Tags: []string{"http", "network"}},
		{Name: "scrape-page", Active: false, Category: "web", Tags: []string{"http"}},
		{Name: "summarize", Active: true, Category: "text", Tags: []string{"nlp"}},
	}
}

func TestFilterTools(t *testing.T) {
	tests := []struct {
		name     string
		filter   toolFilter
		expected []string
	}{
		{
			name:     "empty filter returns everything",
			filter:   toolFilter{},
			expected: []string{"fetch-url", "scrape-page", "summarize"},
		},
		{
			name:     "active only",
			filter:   toolFilter{activeOnly: true},
			expected: []string{"fetch-url", "summarize"},
		},
		{
			name:     "category equality",
			filter:   toolFilter{category: "web"},
			expected: []string{"fetch-url", "scrape-page"},
		},
		{
			name:     "tag membership",
			filter:   toolFilter{tag: "network"},
			expected: []string{"fetch-url"},
		},
		{
			name:     "all predicates combine with AND",
			filter:   toolFilter{activeOnly: true, category: "web", tag: "http"},
			expected: []string{"fetch-url"},
		},
		{
			name:     "AND across filters can be empty",
			filter:   toolFilter{activeOnly: true, category: "web", tag: "nlp"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterTools(sampleTools(), tt.filter)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d tools, got %d", len(tt.expected), len(got))
			}
			for i, tool := range got {
				if tool.Name != tt.expected[i] {
					t.Errorf("tool %d: expected %s, got %s", i, tt.expected[i], tool.Name)
				}
			}
		})
	}
}

func TestFilterToolsDoesNotReturnNilForEmptyResult(t *testing.T) {
	// --json on an empty filtered result must print [], not null.
	got := filterTools(sampleTools(), toolFilter{category: "does-not-exist"})
	if got == nil {
		t.Error("expected empty non-nil slice")
	}
}

func TestFindTool(t *testing.T) {
	t.Run("exact name match", func(t *testing.T) {
		tool, err := findTool(sampleTools(), "scrape-page")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tool.Name != "scrape-page" {
			t.Errorf("expected scrape-page, got %s", tool.Name)
		}
	})

	t.Run("not found is an error naming the tool", func(t *testing.T) {
		_, err := findTool(sampleTools(), "missing-tool")
		if err == nil {
			t.Fatal("expected an error for a missing tool")
		}
		if !strings.Contains(err.Error(), "missing-tool") {
			t.Errorf("expected error to mention the tool name, got %q", err.Error())
		}
	})

	t.Run("no partial matches", func(t *testing.T) {
		_, err := findTool(sampleTools(), "fetch")
		if err == nil {
			t.Error("expected prefix lookup to fail")
		}
	})
}

func TestFormatTimestamp(t *testing.T) {
	if got := formatTimestamp(""); got != "-" {
		t.Errorf("expected - for empty timestamp, got %q", got)
	}
	if got := formatTimestamp("2025-06-01T12:00:00Z"); got != "2025-06-01T12:00:00Z" {
		t.Errorf("expected timestamp unchanged, got %q", got)
	}
}
