package dummydb

import (
	"context"
	"sync"

	"github.com/smashclub/backend/core/achievement"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/attendance"
	"github.com/smashclub/backend/core/note"
	"github.com/smashclub/backend/core/performance"
	"github.com/smashclub/backend/core/program"
	"github.com/smashclub/backend/core/schedule"
	"github.com/smashclub/backend/core/settings"
	"github.com/smashclub/backend/core/user"
)

type (
	// DB is an in-memory store. Rows are returned in insertion order.
	DB struct {
		user        *table[user.User]
		athlete     *table[athlete.Athlete]
		program     *table[program.Program]
		schedule    *table[schedule.Schedule]
		attendance  *table[attendance.Record]
		performance *table[performance.Record]
		note        *table[note.Note]
		achievement *table[achievement.Achievement]
		settings    *table[settings.Settings]
	}

	table[T any] struct {
		sync.RWMutex
		rows  map[string]T
		order []string
	}
)

func Open() *DB {
	return &DB{
		user:        newTable[user.User](),
		athlete:     newTable[athlete.Athlete](),
		program:     newTable[program.Program](),
		schedule:    newTable[schedule.Schedule](),
		attendance:  newTable[attendance.Record](),
		performance: newTable[performance.Record](),
		note:        newTable[note.Note](),
		achievement: newTable[achievement.Achievement](),
		settings:    newTable[settings.Settings](),
	}
}

func (db *DB) Ping(context.Context) error  { return nil }
func (db *DB) Close(context.Context) error { return nil }

// Reset empties all tables.
func (db *DB) Reset() {
	db.user.clear()
	db.athlete.clear()
	db.program.clear()
	db.schedule.clear()
	db.attendance.clear()
	db.performance.clear()
	db.note.clear()
	db.achievement.clear()
	db.settings.clear()
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) clear() {
	t.Lock()
	defer t.Unlock()
	t.rows = make(map[string]T)
	t.order = nil
}

// the callers hold the lock for the methods below

func (t *table[T]) insert(id string, row T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) replace(id string, row T) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = row
	return true
}

func (t *table[T]) delete(ids ...string) {
	for _, id := range ids {
		delete(t.rows, id)
	}
	order := t.order[:0]
	for _, id := range t.order {
		if _, ok := t.rows[id]; ok {
			order = append(order, id)
		}
	}
	t.order = order
}

// filter returns the rows matching match, in insertion order.
func (t *table[T]) filter(match func(T) bool) []T {
	rows := make([]T, 0, len(t.order))
	for _, id := range t.order {
		if row := t.rows[id]; match == nil || match(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}
