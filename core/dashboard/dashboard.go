// Package dashboard builds the role based home page summary.
package dashboard

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/access"
	"github.com/smashclub/backend/core/achievement"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/report"
	"github.com/smashclub/backend/core/schedule"
)

const (
	upcomingDays       = 7
	recentAchievements = 5
)

type (
	// Viewer is the user the dashboard is built for.
	Viewer struct {
		Roles     []string
		AthleteID string
	}

	AthleteStats struct {
		Total      int                      `json:"total"`
		ByStatus   map[athlete.Status]int   `json:"by_status"`
		ByCategory map[athlete.Category]int `json:"by_category"`
	}

	// Summary is the dashboard content. Staff and athletes see different fields.
	Summary struct {
		Period   report.Period       `json:"period"`
		Upcoming []schedule.Schedule `json:"upcoming"`

		// staff
		Athletes        *AthleteStats `json:"athletes,omitempty"`
		Sessions        int           `json:"sessions"`
		AvgAttendance   int           `json:"avg_attendance"`
		AvgScore        int           `json:"avg_score"`
		NeedsEvaluation int           `json:"needs_evaluation"`

		// athlete
		Me           *report.Row               `json:"me,omitempty"`
		Achievements []achievement.Achievement `json:"achievements,omitempty"`
	}

	Service struct {
		athletes     *athlete.Service
		schedules    *schedule.Service
		achievements *achievement.Service
		reports      *report.Service
		loc          *time.Location
	}
)

func NewService(
	athletes *athlete.Service,
	schedules *schedule.Service,
	achievements *achievement.Service,
	reports *report.Service,
	conf *core.Config,
) *Service {
	return &Service{
		athletes:     athletes,
		schedules:    schedules,
		achievements: achievements,
		reports:      reports,
		loc:          conf.Location(),
	}
}

// IsStaff reports whether roles see the club wide dashboard.
func IsStaff(roles []string) bool {
	return access.Can(roles, access.Reports, access.Read)
}

// Build returns the summary of the current month for viewer.
func (svc *Service) Build(ctx context.Context, viewer Viewer) (Summary, error) {
	now := core.NowFunc().In(svc.loc)
	period := report.Period{Month: int(now.Month()), Year: now.Year()}
	if IsStaff(viewer.Roles) {
		return svc.staffSummary(ctx, period)
	}
	return svc.athleteSummary(ctx, period, viewer.AthleteID)
}

func (svc *Service) staffSummary(ctx context.Context, period report.Period) (Summary, error) {
	sum := Summary{Period: period}
	start, end := period.Window(svc.loc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		athletes, err := svc.athletes.Query(gctx, nil, nil)
		if err != nil {
			return errors.Wrap(err, "querying athletes")
		}
		sum.Athletes = countAthletes(athletes)
		return nil
	})
	g.Go(func() error {
		count, err := svc.schedules.Count(gctx, &schedule.QueryFilter{DateFrom: start, DateTo: end})
		if err != nil {
			return errors.Wrap(err, "counting sessions")
		}
		sum.Sessions = count
		return nil
	})
	g.Go(func() error {
		upcoming, err := svc.schedules.Upcoming(gctx, "", upcomingDays)
		if err != nil {
			return errors.Wrap(err, "querying upcoming sessions")
		}
		sum.Upcoming = upcoming
		return nil
	})
	g.Go(func() error {
		res, err := svc.reports.Generate(gctx, report.Query{Type: report.Monthly, Month: period.Month, Year: period.Year})
		if err != nil {
			return errors.Wrap(err, "generating report")
		}
		attendances := make([]float64, 0, len(res.Report))
		scores := make([]float64, 0, len(res.Report))
		for _, row := range res.Report {
			attendances = append(attendances, float64(row.Attendance))
			scores = append(scores, float64(row.AvgScore))
			if row.Assessment == report.NeedsEvaluate {
				sum.NeedsEvaluation++
			}
		}
		sum.AvgAttendance = core.RoundMean(attendances)
		sum.AvgScore = core.RoundMean(scores)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func (svc *Service) athleteSummary(ctx context.Context, period report.Period, athleteID string) (Summary, error) {
	sum := Summary{Period: period, Upcoming: []schedule.Schedule{}}
	if athleteID == "" {
		return sum, nil
	}

	res, err := svc.reports.Generate(ctx, report.Query{
		Type:       report.Monthly,
		Month:      period.Month,
		Year:       period.Year,
		AthleteIDs: []string{athleteID},
	})
	if err != nil {
		return Summary{}, errors.Wrap(err, "generating report")
	}
	if len(res.Report) > 0 {
		sum.Me = &res.Report[0]
	}

	if sum.Upcoming, err = svc.schedules.Upcoming(ctx, athleteID, upcomingDays); err != nil {
		return Summary{}, errors.Wrap(err, "querying upcoming sessions")
	}
	sum.Achievements, err = svc.achievements.Recent(ctx, &achievement.QueryFilter{AthleteID: athleteID}, recentAchievements)
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying achievements")
	}
	return sum, nil
}

func countAthletes(athletes []athlete.Athlete) *AthleteStats {
	stats := &AthleteStats{
		Total:      len(athletes),
		ByStatus:   make(map[athlete.Status]int),
		ByCategory: make(map[athlete.Category]int),
	}
	for _, ath := range athletes {
		stats.ByStatus[ath.Status]++
		stats.ByCategory[ath.Category]++
	}
	return stats
}
