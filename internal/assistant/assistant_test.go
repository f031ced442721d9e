package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsk(t *testing.T) {
	tests := []struct {
		name      string
		question  string
		wantTopic string
		matched   bool
	}{
		{"greeting", "Hi", "greeting", true},
		{"case insensitive", "Which tenants are OVERDUE?", "overdue", true},
		{"maintenance", "how do I open a work order", "maintenance", true},
		{"lease stem", "when do leases expire", "lease", true},
		{"first match wins", "is the overdue repair done", "overdue", true},
		{"export", "download a csv", "export", true},
		{"no match", "what is the weather", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ask(tt.question)
			assert.Equal(t, tt.matched, got.Matched)
			assert.Equal(t, tt.wantTopic, got.Topic)
			if !tt.matched {
				assert.Equal(t, DefaultReply, got.Response)
			}
		})
	}
}

func TestRulesOrderStable(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Rules {
		assert.False(t, seen[r.Topic], "duplicate topic %s", r.Topic)
		seen[r.Topic] = true
		assert.NotEmpty(t, r.Keywords)
		assert.NotEmpty(t, r.Response)
	}
}
