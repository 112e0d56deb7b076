package sqlxrepos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smashclub/backend/core"
)

func TestOrderBy(t *testing.T) {
	columns := []string{"name", "created_at"}
	tests := []struct {
		name     string
		ordering []core.DBOrdering
		want     string
	}{
		{"fallback", nil, " ORDER BY created_at, id"},
		{"column", core.ParseOrdering("-name"), ` ORDER BY "name" DESC`},
		{"document key", core.ParseOrdering("height_cm,-created_at"), ` ORDER BY doc->'height_cm' ASC, "created_at" DESC`},
		{"camel case", core.ParseOrdering("createdAt"), ` ORDER BY "created_at" ASC`},
		{"camel case document key", core.ParseOrdering("-heightCM,birthDate"), ` ORDER BY doc->'height_cm' DESC, doc->'birth_date' ASC`},
		{"injection dropped", core.ParseOrdering("name;DROP TABLE athlete"), " ORDER BY created_at, id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, orderBy(tc.ordering, columns, "created_at, id"))
		})
	}
}

func TestWhere(t *testing.T) {
	var w where
	assert.Equal(t, "", w.String())

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	w.eq("status", "")
	w.eq("athlete_id::text", "abc")
	w.dateRange("date", from, time.Time{})
	assert.Equal(t, " WHERE athlete_id::text = ? AND date >= ?", w.String())
	assert.Equal(t, []interface{}{"abc", from.UTC()}, w.args)
}
