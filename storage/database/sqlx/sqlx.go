// Package sqlxrepos implements the repositories on postgres. Entities are stored as JSONB
// documents next to the columns they are filtered on.
package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/strmangle"

	"github.com/smashclub/backend/core"
)

var identRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// docRow is the common shape of the document tables.
type docRow struct {
	ID        string         `db:"id"`
	Doc       types.JSONText `db:"doc"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func newDocRow(id string, v interface{}, createdAt, updatedAt time.Time) (docRow, error) {
	doc, err := json.Marshal(v)
	if err != nil {
		return docRow{}, errors.Wrap(err, "marshalling document")
	}
	return docRow{ID: id, Doc: doc, CreatedAt: createdAt.UTC(), UpdatedAt: updatedAt.UTC()}, nil
}

func decode[T any](row docRow) (T, error) {
	var v T
	err := row.Doc.Unmarshal(&v)
	return v, errors.Wrap(err, "unmarshalling document")
}

// selectDocs runs query (with ? placeholders) and decodes the doc column of each row.
func selectDocs[T any](ctx context.Context, db *sqlx.DB, query string, args ...interface{}) ([]T, error) {
	var rows []docRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, err
	}
	docs := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := decode[T](row)
		if err != nil {
			return nil, err
		}
		docs = append(docs, v)
	}
	return docs, nil
}

// getDoc returns notFound when query matches no row.
func getDoc[T any](ctx context.Context, db *sqlx.DB, notFound error, query string, args ...interface{}) (T, error) {
	var row docRow
	if err := db.GetContext(ctx, &row, db.Rebind(query), args...); err != nil {
		var zero T
		if err == sql.ErrNoRows {
			return zero, notFound
		}
		return zero, err
	}
	return decode[T](row)
}

// execOne runs a named statement that must affect exactly one row.
func execOne(ctx context.Context, db *sqlx.DB, notFound error, query string, arg interface{}) error {
	res, err := db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func deleteByIDs(ctx context.Context, db *sqlx.DB, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM "+table+" WHERE id::text IN (?)", ids)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, db.Rebind(query), args...)
	return err
}

// where accumulates AND-ed conditions written with ? placeholders.
type where struct {
	clauses []string
	args    []interface{}
}

func (w *where) add(clause string, args ...interface{}) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w *where) eq(column, val string) {
	if val != "" {
		w.add(column+" = ?", val)
	}
}

func (w *where) dateRange(column string, from, to time.Time) {
	if !from.IsZero() {
		w.add(column+" >= ?", from.UTC())
	}
	if !to.IsZero() {
		w.add(column+" <= ?", to.UTC())
	}
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// orderBy maps ordering fields to columns, or to document keys when the table has no such column.
func orderBy(ordering []core.DBOrdering, columns []string, fallback string) string {
	list := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		field := core.SnakeCase(ord.Field)
		if !identRegex.MatchString(field) {
			continue
		}
		expr := "doc->" + pq.QuoteLiteral(field)
		if core.ContainsString(columns, field) {
			expr = strmangle.IdentQuote('"', '"', field)
		}
		list = append(list, core.DBOrdering{Field: expr, Ascending: ord.Ascending}.String())
	}
	if len(list) == 0 {
		return " ORDER BY " + fallback
	}
	return " ORDER BY " + strings.Join(list, ", ")
}

func isUniqueViolation(err error) bool {
	pqErr, ok := errors.Cause(err).(*pq.Error)
	return ok && pqErr.Code == "23505"
}
