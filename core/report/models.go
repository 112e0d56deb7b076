package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
)

type (
	Type       string
	Assessment string
)

const (
	// Monthly keeps the natural athlete order.
	Monthly Type = "monthly"
	// ByAthlete orders by average score and includes athlete photos.
	ByAthlete Type = "athlete"
	// ByAttendance orders by attendance.
	ByAttendance Type = "attendance"

	GoodProgress  Assessment = "Progres Baik"
	Stable        Assessment = "Stabil"
	NeedsEvaluate Assessment = "Perlu Evaluasi"
)

// Query selects the period, athletes and ordering of a report.
type Query struct {
	Type     Type
	Month    int
	Year     int
	Category athlete.Category

	// AthleteIDs restricts the report to some athletes.
	AthleteIDs []string
}

// ParseQuery builds a Query from raw request values. Malformed values fall back to their defaults.
func ParseQuery(typ, month, year, category string) Query {
	q := Query{
		Type:     Type(core.CleanString(typ, true /* lower */)),
		Category: athlete.Category(core.CleanString(category)),
	}
	q.Month, _ = strconv.Atoi(strings.TrimSpace(month))
	q.Year, _ = strconv.Atoi(strings.TrimSpace(year))
	return q
}

// Clean replaces missing or invalid values with their defaults, relative to now.
func (q *Query) Clean(now time.Time) {
	switch q.Type {
	case Monthly, ByAthlete, ByAttendance:
	default:
		q.Type = Monthly
	}
	if q.Month < 1 || q.Month > 12 {
		q.Month = int(now.Month())
	}
	if q.Year < 1 || q.Year > 9999 {
		q.Year = now.Year()
	}
	if strings.EqualFold(string(q.Category), "all") {
		q.Category = ""
	}
}

type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Window returns the first and last instants of the period in loc.
func (p Period) Window(loc *time.Location) (start, end time.Time) {
	start = time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// Previous returns the calendar month before p.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Month: 12, Year: p.Year - 1}
	}
	return Period{Month: p.Month - 1, Year: p.Year}
}

// Row is the assessment of one athlete over a period.
type Row struct {
	AthleteID    string           `json:"id"`
	Name         string           `json:"name"`
	Category     athlete.Category `json:"category"`
	Attendance   int              `json:"attendance"` // percentage of present records
	AvgScore     int              `json:"avgScore"`
	PrevAvgScore int              `json:"-"`
	Sessions     int              `json:"sessions"` // attendance records in the period
	Assessment   Assessment       `json:"assessment"`
	Photo        string           `json:"photo,omitempty"`
}

type Result struct {
	Report        []Row  `json:"report"`
	Period        Period `json:"period"`
	TotalSessions int    `json:"totalSessions"`

	Type     Type             `json:"-"`
	Category athlete.Category `json:"-"`
}

// Thresholds drive the assessment of a Row.
type Thresholds struct {
	ImprovementPercent int // minimum relative increase of the average score over the previous period
	MinAttendance      int
	MinScore           int
}

var DefaultThresholds = Thresholds{ImprovementPercent: 10, MinAttendance: 60, MinScore: 60}

// Improved reports whether avg is at least ImprovementPercent above a non-zero prev.
func (th Thresholds) Improved(avg, prev int) bool {
	if prev <= 0 || avg <= 0 {
		return false
	}
	return 100*(avg-prev) >= th.ImprovementPercent*prev
}

// Assess labels an athlete. An improvement only counts with enough attendance; low attendance
// or a low score otherwise calls for an evaluation.
func (th Thresholds) Assess(attendance, avg, prev int) Assessment {
	switch {
	case th.Improved(avg, prev) && attendance >= th.MinAttendance:
		return GoodProgress
	case attendance < th.MinAttendance || avg < th.MinScore:
		return NeedsEvaluate
	default:
		return Stable
	}
}
