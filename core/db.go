package core

import (
	"context"
	"strings"
)

// DBOrdering is one `ordering` clause of a query, e.g. "-created_at".
type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// ParseOrdering parses a comma separated list of fields; a leading "-" means descending.
func ParseOrdering(val string) []DBOrdering {
	var orderings []DBOrdering
	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		orderings = append(orderings, DBOrdering{Field: field, Ascending: !descending})
	}
	return orderings
}

// Store is a storage backend handle with an explicit lifecycle.
type Store interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
