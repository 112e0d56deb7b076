package dummydb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/attendance"
)

func TestOrderBy(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	athletes := []athlete.Athlete{
		{ID: "1", Name: "budi", HeightCM: 170, JoinDate: day},
		{ID: "2", Name: "Ayu", HeightCM: 160, JoinDate: day.AddDate(0, 0, 2)},
		{ID: "3", Name: "Citra", HeightCM: 170, JoinDate: day.AddDate(0, 0, 1)},
	}
	ids := func() []string {
		var res []string
		for _, ath := range athletes {
			res = append(res, ath.ID)
		}
		return res
	}

	tests := []struct {
		name     string
		ordering []core.DBOrdering
		want     []string
	}{
		{"natural", nil, []string{"1", "2", "3"}},
		{"name", core.ParseOrdering("name"), []string{"2", "1", "3"}},
		{"-join_date", core.ParseOrdering("-join_date"), []string{"2", "3", "1"}},
		{"-height_cm,name", core.ParseOrdering("-height_cm,name"), []string{"1", "3", "2"}},
		{"unknown field", core.ParseOrdering("foo"), []string{"1", "3", "2"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			orderBy(athletes, tc.ordering...)
			assert.Equal(t, tc.want, ids())
		})
	}
}

func TestAttendanceRepository_UpsertRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(Open())
	created := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

	first, err := repo.UpsertRecords(ctx, attendance.Record{
		ID: "a", ScheduleID: "s1", AthleteID: "ath1", Status: attendance.Absent, CreatedAt: created,
	})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := repo.UpsertRecords(ctx,
		attendance.Record{ID: "b", ScheduleID: "s1", AthleteID: "ath1", Status: attendance.Present, CreatedAt: created.Add(time.Hour)},
		attendance.Record{ID: "c", ScheduleID: "s1", AthleteID: "ath2", Status: attendance.Excused},
	)
	require.NoError(t, err)
	assert.Equal(t, "a", second[0].ID)
	assert.Equal(t, created, second[0].CreatedAt)

	recs, err := repo.QueryRecords(ctx, &attendance.QueryFilter{ScheduleID: "s1"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, attendance.Present, recs[0].Status)
	assert.Equal(t, "c", recs[1].ID)
}

func TestTable_Delete(t *testing.T) {
	tbl := newTable[int]()
	tbl.insert("a", 1)
	tbl.insert("b", 2)
	tbl.insert("c", 3)
	tbl.delete("b", "x")
	assert.Equal(t, []int{1, 3}, tbl.filter(nil))
	_, ok := tbl.get("b")
	assert.False(t, ok)
}
