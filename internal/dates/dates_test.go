package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"year first", "2024-05-09", "09-05-2024"},
		{"already day first", "09-05-2024", "09-05-2024"},
		{"no hyphens", "20240509", "20240509"},
		{"two segments", "2024-05", "2024-05"},
		{"four segments", "2024-05-09-01", "2024-05-09-01"},
		{"slashes", "2024/05/09", "2024/05/09"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	once := Normalize("2023-12-31")
	assert.Equal(t, once, Normalize(once))
}

func TestFormat(t *testing.T) {
	ts := time.Date(2024, time.May, 9, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "09-05-2024", Format(ts))
}
