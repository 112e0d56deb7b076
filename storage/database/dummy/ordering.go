package dummydb

import (
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/smashclub/backend/core"
)

var timeType = reflect.TypeOf(time.Time{})

// orderBy sorts rows by the fields named by their json tag. Unknown fields are ignored.
func orderBy[T any](rows []T, ordering ...core.DBOrdering) {
	if len(ordering) == 0 || len(rows) < 2 {
		return
	}
	typ := reflect.TypeOf(rows[0])
	type key struct {
		index int
		asc   bool
	}
	keys := make([]key, 0, len(ordering))
	for _, ord := range ordering {
		if idx := fieldIndex(typ, ord.Field); idx >= 0 {
			keys = append(keys, key{index: idx, asc: ord.Ascending})
		}
	}
	if len(keys) == 0 {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := reflect.ValueOf(rows[i]), reflect.ValueOf(rows[j])
		for _, k := range keys {
			c := compare(vi.Field(k.index), vj.Field(k.index))
			if c == 0 {
				continue
			}
			if k.asc {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

func fieldIndex(typ reflect.Type, name string) int {
	for i := 0; i < typ.NumField(); i++ {
		tag := strings.Split(typ.Field(i).Tag.Get("json"), ",")[0]
		if tag == name {
			return i
		}
	}
	return -1
}

func compare(a, b reflect.Value) int {
	if a.Type() == timeType {
		ta, tb := a.Interface().(time.Time), b.Interface().(time.Time)
		switch {
		case ta.Before(tb):
			return -1
		case ta.After(tb):
			return 1
		}
		return 0
	}
	switch a.Kind() {
	case reflect.String:
		return strings.Compare(strings.ToLower(a.String()), strings.ToLower(b.String()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return sign(float64(a.Int() - b.Int()))
	case reflect.Float32, reflect.Float64:
		return sign(a.Float() - b.Float())
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case b.Bool():
			return -1
		}
		return 1
	}
	return 0
}

func sign(f float64) int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	}
	return 0
}
