package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"name", "name"},
		{"birthDate", "birth_date"},
		{"createdAt", "created_at"},
		{"created_at", "created_at"},
		{"athleteID", "athlete_id"},
		{"ID", "id"},
		{"HTTPStatus", "http_status"},
		{"level2Score", "level2_score"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, SnakeCase(tc.in))
		})
	}
}
