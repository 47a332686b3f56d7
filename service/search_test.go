package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jansunwai/service"
)

func TestParseSearchID(t *testing.T) {
	tests := []struct {
		name   string
		term   string
		wantID int64
		wantOK bool
	}{
		{"bare id", "1234", 1234, true},
		{"display id", "BG-1234", 1234, true},
		{"legacy display id", "BG-202401-78", 78, true},
		{"whitespace trimmed", "  BG-42  ", 42, true},
		{"wrong prefix", "XX-1234", 0, false},
		{"free text", "water supply", 0, false},
		{"prefix only", "BG-", 0, false},
		{"non-numeric suffix", "BG-abc", 0, false},
		{"legacy with short middle", "BG-2024-78", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := service.ParseSearchID("BG", tt.term)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestParseSearchIDCustomPrefix(t *testing.T) {
	id, ok := service.ParseSearchID("GND", "GND-99")
	assert.True(t, ok)
	assert.Equal(t, int64(99), id)

	_, ok = service.ParseSearchID("GND", "BG-99")
	assert.False(t, ok)
}
