package whitelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCheckerIsTrusted(t *testing.T) {
	checker := NewChecker([]string{"Example.com", " corp.example "}, zap.NewNop())

	tests := []struct {
		name     string
		from     string
		expected bool
	}{
		{"exact domain match", "alice@example.com", true},
		{"case insensitive match", "bob@EXAMPLE.COM", true},
		{"normalized config entry", "carol@corp.example", true},
		{"unknown domain", "mallory@phish.example.net", false},
		{"malformed address", "not-an-address", false},
		{"empty address", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, checker.IsTrusted(tt.from))
		})
	}
}

func TestCheckerEmptyListTrustsNothing(t *testing.T) {
	checker := NewChecker(nil, zap.NewNop())
	assert.False(t, checker.IsTrusted("alice@example.com"))
}
