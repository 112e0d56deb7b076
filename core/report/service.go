package report

import (
	"bytes"
	"context"
	"fmt"
	"net/mail"
	"sort"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/attendance"
	"github.com/smashclub/backend/core/performance"
	"github.com/smashclub/backend/core/schedule"
	"github.com/smashclub/backend/core/settings"
)

var errNoRecipients = core.NewValidationError(nil, core.FieldError{Field: "recipients", Error: "no report recipients configured"})

type Service struct {
	athletes    *athlete.Service
	attendance  *attendance.Service
	performance *performance.Service
	schedules   *schedule.Service
	settings    *settings.Service
	mailSvc     core.EmailService

	thresholds  Thresholds
	concurrency int
	loc         *time.Location
}

func NewService(
	athletes *athlete.Service,
	att *attendance.Service,
	perf *performance.Service,
	schedules *schedule.Service,
	sets *settings.Service,
	mailSvc core.EmailService,
	conf *core.Config,
) (*Service, error) {
	err := vala.BeginValidation().Validate(
		vala.IsNotNil(athletes, "athletes"),
		vala.IsNotNil(att, "attendance"),
		vala.IsNotNil(perf, "performance"),
		vala.IsNotNil(schedules, "schedules"),
		vala.IsNotNil(sets, "settings"),
		vala.IsNotNil(conf, "conf"),
	).Check()
	if err != nil {
		return nil, errors.Wrap(err, "report.NewService")
	}

	th := Thresholds{
		ImprovementPercent: conf.Report.ImprovementPercent,
		MinAttendance:      conf.Report.MinAttendance,
		MinScore:           conf.Report.MinScore,
	}
	if th == (Thresholds{}) {
		th = DefaultThresholds
	}
	concurrency := conf.Report.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		athletes:    athletes,
		attendance:  att,
		performance: perf,
		schedules:   schedules,
		settings:    sets,
		mailSvc:     mailSvc,
		thresholds:  th,
		concurrency: concurrency,
		loc:         conf.Location(),
	}, nil
}

func (svc *Service) Thresholds() Thresholds { return svc.thresholds }

// Generate computes the report of q. Any read error aborts the whole report.
func (svc *Service) Generate(ctx context.Context, q Query) (Result, error) {
	q.Clean(core.NowFunc().In(svc.loc))
	period := Period{Month: q.Month, Year: q.Year}
	start, end := period.Window(svc.loc)
	prevStart, prevEnd := period.Previous().Window(svc.loc)

	athletes, err := svc.athletes.Query(ctx, &athlete.QueryFilter{Category: q.Category, IDs: q.AthleteIDs}, nil)
	if err != nil {
		return Result{}, errors.Wrap(err, "querying athletes")
	}

	res := Result{
		Report:   make([]Row, len(athletes)),
		Period:   period,
		Type:     q.Type,
		Category: q.Category,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(svc.concurrency)
	g.Go(func() error {
		count, err := svc.schedules.Count(gctx, &schedule.QueryFilter{DateFrom: start, DateTo: end})
		if err != nil {
			return errors.Wrap(err, "counting sessions")
		}
		res.TotalSessions = count
		return nil
	})
	for i, ath := range athletes {
		g.Go(func() error {
			row, err := svc.assess(gctx, ath, start, end, prevStart, prevEnd)
			if err != nil {
				return errors.Wrapf(err, "assessing athlete %s", ath.ID)
			}
			if q.Type == ByAthlete {
				row.Photo = ath.Photo
			}
			res.Report[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	switch q.Type {
	case ByAttendance:
		sort.SliceStable(res.Report, func(i, j int) bool {
			return res.Report[i].Attendance > res.Report[j].Attendance
		})
	case ByAthlete:
		sort.SliceStable(res.Report, func(i, j int) bool {
			return res.Report[i].AvgScore > res.Report[j].AvgScore
		})
	}
	return res, nil
}

func (svc *Service) assess(ctx context.Context, ath athlete.Athlete, start, end, prevStart, prevEnd time.Time) (Row, error) {
	recs, err := svc.attendance.Query(ctx, &attendance.QueryFilter{AthleteID: ath.ID, DateFrom: start, DateTo: end}, nil)
	if err != nil {
		return Row{}, errors.Wrap(err, "querying attendance")
	}
	perfs, err := svc.performance.Query(ctx, &performance.QueryFilter{AthleteID: ath.ID, DateFrom: start, DateTo: end}, nil)
	if err != nil {
		return Row{}, errors.Wrap(err, "querying performance")
	}
	prevPerfs, err := svc.performance.Query(ctx, &performance.QueryFilter{AthleteID: ath.ID, DateFrom: prevStart, DateTo: prevEnd}, nil)
	if err != nil {
		return Row{}, errors.Wrap(err, "querying previous performance")
	}

	row := Row{
		AthleteID:    ath.ID,
		Name:         ath.Name,
		Category:     ath.Category,
		Attendance:   attendance.Rate(recs),
		AvgScore:     core.RoundMean(performance.Scores(perfs)),
		PrevAvgScore: core.RoundMean(performance.Scores(prevPerfs)),
		Sessions:     len(recs),
	}
	row.Assessment = svc.thresholds.Assess(row.Attendance, row.AvgScore, row.PrevAvgScore)
	return row, nil
}

// Export generates the report of q as CSV.
func (svc *Service) Export(ctx context.Context, q Query) (Result, []byte, error) {
	res, err := svc.Generate(ctx, q)
	if err != nil {
		return Result{}, nil, err
	}
	var buf bytes.Buffer
	if err = WriteCSV(&buf, res); err != nil {
		return Result{}, nil, err
	}
	return res, buf.Bytes(), nil
}

// SendMonthly emails the report of q, with its CSV export attached.
// Without recipients, the report recipients of the club settings are used.
func (svc *Service) SendMonthly(ctx context.Context, q Query, recipients ...string) (Result, error) {
	if len(recipients) == 0 {
		sets, err := svc.settings.Get(ctx)
		if err != nil {
			return Result{}, errors.Wrap(err, "getting settings")
		}
		recipients = sets.ReportRecipients
	}
	if len(recipients) == 0 {
		return Result{}, errNoRecipients
	}

	res, csvData, err := svc.Export(ctx, q)
	if err != nil {
		return Result{}, err
	}

	to := make([]mail.Address, 0, len(recipients))
	for _, rcpt := range recipients {
		addr, err := mail.ParseAddress(rcpt)
		if err != nil {
			return Result{}, core.NewValidationError(err, core.FieldError{Field: "recipients", Error: "invalid email " + rcpt})
		}
		to = append(to, *addr)
	}

	title := Title(res)
	msg := &core.EmailMessage{
		To:           to,
		Subject:      "Training report " + title,
		TemplateName: "monthly_report",
		TemplateData: emailData{
			Title:         title,
			Category:      categoryLabel(res.Category),
			Period:        res.Period,
			TotalSessions: res.TotalSessions,
			Rows:          res.Report,
		},
	}
	if err = msg.Attach(bytes.NewReader(csvData), Filename(res), "text/csv"); err != nil {
		return Result{}, err
	}
	svc.mailSvc.SendMessages(msg)
	return res, nil
}

type emailData struct {
	Title         string
	Category      string
	Period        Period
	TotalSessions int
	Rows          []Row
}

// Title names the period of res, e.g. "March 2024".
func Title(res Result) string {
	return fmt.Sprintf("%s %d", time.Month(res.Period.Month), res.Period.Year)
}

// Filename is the name of the CSV export of res.
func Filename(res Result) string {
	name := fmt.Sprintf("report-%s-%04d-%02d", res.Type, res.Period.Year, res.Period.Month)
	if res.Category != "" {
		name += "-" + string(res.Category)
	}
	return name + ".csv"
}

func categoryLabel(c athlete.Category) string {
	if c == "" {
		return "All"
	}
	return string(c)
}
