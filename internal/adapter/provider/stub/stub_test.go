package stub

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/heartmarshall/flashgen-backend/internal/provider"
)

func TestCompleter_CountDependsOnLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		textLen int
		want    int
	}{
		{1000, 3},
		{6000, 3},
		{8000, 4},
		{10000, 5},
		{20000, 5},
	}
	for _, tt := range tests {
		req := provider.Request{Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: "sys"},
			{Role: provider.RoleUser, Content: strings.Repeat("x", tt.textLen)},
		}}

		raw, err := New().CompleteJSON(context.Background(), req)
		if err != nil {
			t.Fatalf("len %d: unexpected error: %v", tt.textLen, err)
		}

		var got struct {
			Flashcards []map[string]string `json:"flashcards"`
		}
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("len %d: invalid JSON: %v", tt.textLen, err)
		}
		if len(got.Flashcards) != tt.want {
			t.Errorf("len %d: got %d cards, want %d", tt.textLen, len(got.Flashcards), tt.want)
		}
	}
}

func TestCompleter_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().CompleteJSON(ctx, provider.Request{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
