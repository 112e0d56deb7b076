package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/achievement"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/attendance"
	"github.com/smashclub/backend/core/note"
	"github.com/smashclub/backend/core/performance"
	"github.com/smashclub/backend/core/program"
	"github.com/smashclub/backend/core/schedule"
	"github.com/smashclub/backend/core/settings"
	"github.com/smashclub/backend/core/user"
	"github.com/smashclub/backend/storage"
)

const (
	seedSource          = 20240301
	seedMonths          = 3
	defaultSeedPassword = "Smash&Clear24"
)

var errAlreadySeeded = errors.New("database already contains data, use -reset to replace it")

var seedNames = []string{
	"Rina Wulandari", "Budi Santoso", "Dewi Lestari", "Agus Pratama", "Sari Indah",
	"Yoga Saputra", "Putri Maharani", "Fajar Nugroho", "Intan Permata", "Rizky Hidayat",
	"Ayu Kartika", "Dimas Aditya", "Nadia Safitri", "Bayu Firmansyah", "Citra Anggraini",
	"Hendra Wijaya", "Maya Puspita", "Eko Kurniawan",
}

// seedAges are the ages reached this year by the seeded athletes of each category.
var seedAges = map[athlete.Category][2]int{
	athlete.CategoryU11:    {8, 10},
	athlete.CategoryU13:    {11, 12},
	athlete.CategoryU15:    {13, 14},
	athlete.CategoryU17:    {15, 16},
	athlete.CategoryU19:    {17, 18},
	athlete.CategorySenior: {19, 28},
}

// seeder generates demo data. Every value is drawn from rng so that a given seed date yields the same data.
type seeder struct {
	cli *commandLine
	rng *rand.Rand
	now time.Time
	loc *time.Location
	pwd string

	coaches  []user.User
	athletes []athlete.Athlete
	programs []program.Program
}

func (cli *commandLine) seed(ctx context.Context, reset bool, pwd string) error {
	if reset {
		if err := cli.wipe(ctx); err != nil {
			return errors.Wrap(err, "wiping data")
		}
	} else {
		existing, err := cli.repos.Users.QueryUsers(ctx, nil)
		if err != nil {
			return errors.Wrap(err, "checking data")
		}
		if len(existing) > 0 {
			return errAlreadySeeded
		}
	}

	loc := cli.conf.Location()
	sd := &seeder{
		cli: cli,
		rng: rand.New(rand.NewSource(seedSource)),
		now: core.NowFunc().In(loc),
		loc: loc,
		pwd: pwd,
	}
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"settings", sd.seedSettings},
		{"staff", sd.seedStaff},
		{"athletes", sd.seedAthletes},
		{"programs", sd.seedPrograms},
		{"sessions", sd.seedSessions},
		{"notes", sd.seedNotes},
		{"achievements", sd.seedAchievements},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return errors.Wrapf(err, "seeding %s", step.name)
		}
	}
	cli.logger.Info(fmt.Sprintf("seeded %d athletes, %d programs over the last %d months", len(sd.athletes), len(sd.programs), seedMonths))
	return nil
}

// wipe deletes everything but the settings, which seeding overwrites.
func (cli *commandLine) wipe(ctx context.Context) error {
	if cli.repos.Engine == storage.EngineMemory {
		cli.repos.Reset()
		return nil
	}
	r := cli.repos

	recs, err := r.Attendance.QueryRecords(ctx, nil)
	if err != nil {
		return err
	}
	if err = r.Attendance.DeleteRecords(ctx, ids(recs, func(r attendance.Record) string { return r.ID })...); err != nil {
		return err
	}
	perfs, err := r.Performance.QueryRecords(ctx, nil)
	if err != nil {
		return err
	}
	if err = r.Performance.DeleteRecords(ctx, ids(perfs, func(r performance.Record) string { return r.ID })...); err != nil {
		return err
	}
	notes, err := r.Notes.QueryNotes(ctx, nil)
	if err != nil {
		return err
	}
	if err = r.Notes.DeleteNotes(ctx, ids(notes, func(n note.Note) string { return n.ID })...); err != nil {
		return err
	}
	achs, err := r.Achievements.QueryAchievements(ctx, nil)
	if err != nil {
		return err
	}
	if err = r.Achievements.DeleteAchievements(ctx, ids(achs, func(a achievement.Achievement) string { return a.ID })...); err != nil {
		return err
	}
	scheds, err := r.Schedules.QuerySchedules(ctx, nil)
	if err != nil {
		return err
	}
	if err = r.Schedules.DeleteSchedules(ctx, ids(scheds, func(s schedule.Schedule) string { return s.ID })...); err != nil {
		return err
	}
	progs, err := r.Programs.QueryPrograms(ctx, nil)
	if err != nil {
		return err
	}
	if err = r.Programs.DeletePrograms(ctx, ids(progs, func(p program.Program) string { return p.ID })...); err != nil {
		return err
	}
	usrs, err := r.Users.QueryUsers(ctx, nil)
	if err != nil {
		return err
	}
	if err = r.Users.DeleteUsers(ctx, ids(usrs, func(u user.User) string { return u.ID })...); err != nil {
		return err
	}
	aths, err := r.Athletes.QueryAthletes(ctx, nil)
	if err != nil {
		return err
	}
	return r.Athletes.DeleteAthletes(ctx, ids(aths, func(a athlete.Athlete) string { return a.ID })...)
}

func ids[T any](objs []T, id func(T) string) []string {
	res := make([]string, 0, len(objs))
	for _, obj := range objs {
		res = append(res, id(obj))
	}
	return res
}

func (sd *seeder) newID() string {
	id, err := uuid.NewRandomFromReader(sd.rng)
	if err != nil {
		return core.NewID()
	}
	return id.String()
}

func (sd *seeder) between(lo, hi int) int {
	return lo + sd.rng.Intn(hi-lo+1)
}

func (sd *seeder) day(t time.Time) time.Time {
	return core.StartOfDay(t, sd.loc)
}

func (sd *seeder) stamp() time.Time {
	return sd.now.UTC()
}

func (sd *seeder) seedSettings(ctx context.Context) error {
	about := "**Smash Club** trains young badminton players from their first racket to national competitions.\n\n" +
		"- Junior foundations for U-11 and U-13\n- Competitive squads for U-15 and U-17\n- Senior performance group"
	html, err := core.RenderMarkdown(about)
	if err != nil {
		return err
	}
	from := sd.cli.conf.DefaultFromEmail()
	_, err = sd.cli.repos.Settings.SaveSettings(ctx, settings.Settings{
		ID:               settings.ID,
		ClubName:         sd.cli.conf.AppName,
		Tagline:          "Play fast, think faster.",
		About:            about,
		AboutHTML:        html,
		Address:          "Jl. Merdeka 10, Bandung",
		Phone:            "+62 22 555 0101",
		Email:            from.Address,
		Venues:           []string{"GOR Pajajaran", "GOR Saparua"},
		ReportRecipients: []string{"admin@smashclub.test"},
		UpdatedAt:        sd.stamp(),
	})
	return err
}

func (sd *seeder) createUser(ctx context.Context, name, uname string, roles []string, athleteID string) (user.User, error) {
	usr := user.User{
		ID:        sd.newID(),
		Name:      name,
		Username:  uname,
		Email:     uname + "@smashclub.test",
		IsActive:  true,
		Roles:     roles,
		AthleteID: athleteID,
		CreatedAt: sd.stamp(),
		UpdatedAt: sd.stamp(),
	}
	if err := usr.SetPassword(sd.pwd); err != nil {
		return user.User{}, err
	}
	return sd.cli.repos.Users.CreateUser(ctx, usr)
}

func (sd *seeder) seedStaff(ctx context.Context) error {
	if _, err := sd.createUser(ctx, "Club Admin", "admin", []string{user.RoleAdminOwner}, ""); err != nil {
		return err
	}
	coaches := []struct {
		name, uname string
		role        string
	}{
		{"Andi Susanto", "coach.andi", user.RoleHeadCoach},
		{"Lina Marlina", "coach.lina", user.RoleCoach},
	}
	for _, c := range coaches {
		usr, err := sd.createUser(ctx, c.name, c.uname, []string{c.role}, "")
		if err != nil {
			return err
		}
		sd.coaches = append(sd.coaches, usr)
	}
	return nil
}

func (sd *seeder) seedAthletes(ctx context.Context) error {
	hands := []athlete.Hand{athlete.RightHanded, athlete.RightHanded, athlete.RightHanded, athlete.LeftHanded}
	for i, name := range seedNames {
		cat := athlete.Categories[i%len(athlete.Categories)]
		ages := seedAges[cat]
		birth := time.Date(sd.now.Year()-sd.between(ages[0], ages[1]), time.Month(sd.between(1, 12)), sd.between(1, 28), 0, 0, 0, 0, time.UTC)
		gender := athlete.Male
		if i%2 == 0 {
			gender = athlete.Female
		}
		ath := athlete.Athlete{
			ID:           sd.newID(),
			Name:         name,
			Gender:       gender,
			BirthDate:    birth,
			Category:     athlete.CategoryForAge(birth, sd.now),
			DominantHand: hands[sd.rng.Intn(len(hands))],
			HeightCM:     float64(sd.between(130, 185)),
			WeightKG:     float64(sd.between(30, 80)),
			Phone:        fmt.Sprintf("+62 812 %04d %04d", sd.rng.Intn(10000), sd.rng.Intn(10000)),
			Status:       athlete.StatusActive,
			JoinDate:     sd.day(sd.now.AddDate(0, -sd.between(seedMonths+1, 36), 0)).UTC(),
			Injuries:     []athlete.Injury{},
			Sponsors:     []athlete.Sponsor{},
			CreatedAt:    sd.stamp(),
			UpdatedAt:    sd.stamp(),
		}
		if sd.rng.Intn(6) == 0 {
			ath.Injuries = append(ath.Injuries, athlete.Injury{
				Description: "Ankle sprain",
				Date:        sd.day(sd.now.AddDate(0, 0, -sd.between(7, 60))).UTC(),
				Severity:    athlete.SeverityMinor,
				Recovered:   sd.rng.Intn(2) == 0,
			})
		}
		ath, err := sd.cli.repos.Athletes.CreateAthlete(ctx, ath)
		if err != nil {
			return err
		}
		sd.athletes = append(sd.athletes, ath)
	}

	// the first athletes of the list get a login
	for _, ath := range sd.athletes[:2] {
		uname := "athlete." + core.CleanString(ath.Name[:4], true /* lower */)
		if _, err := sd.createUser(ctx, ath.Name, uname, []string{user.RoleAthlete}, ath.ID); err != nil {
			return err
		}
	}
	return nil
}

func (sd *seeder) seedPrograms(ctx context.Context) error {
	progs := []struct {
		name, desc string
		level      program.Level
		drills     []program.Drill
	}{
		{
			"Junior Foundations", "Grip, footwork and basic strokes for U-11 and U-13 players.", program.Beginner,
			[]program.Drill{
				{Name: "Shadow footwork", DurationMinutes: 15, Reps: 4},
				{Name: "High clear rally", DurationMinutes: 20, Reps: 0},
				{Name: "Net kill", DurationMinutes: 10, Reps: 30},
			},
		},
		{
			"Competitive Squad", "Match play and tactics for U-15 and U-17 players.", program.Intermediate,
			[]program.Drill{
				{Name: "Multi-shuttle defense", DurationMinutes: 20, Reps: 5},
				{Name: "Smash and follow", DurationMinutes: 15, Reps: 40},
				{Name: "Doubles rotation", DurationMinutes: 30, Reps: 0, Notes: "Switch partners every game."},
			},
		},
		{
			"Senior Performance", "Tournament preparation for U-19 and senior players.", program.Advanced,
			[]program.Drill{
				{Name: "Interval court sprints", DurationMinutes: 20, Reps: 10},
				{Name: "Jump smash", DurationMinutes: 20, Reps: 60},
				{Name: "Match simulation", DurationMinutes: 45, Reps: 0},
			},
		},
	}
	for i, p := range progs {
		prog, err := sd.cli.repos.Programs.CreateProgram(ctx, program.Program{
			ID:            sd.newID(),
			Name:          p.name,
			Description:   p.desc,
			Level:         p.level,
			DurationWeeks: 12,
			CoachID:       sd.coaches[i%len(sd.coaches)].ID,
			Drills:        p.drills,
			CreatedAt:     sd.stamp(),
			UpdatedAt:     sd.stamp(),
		})
		if err != nil {
			return err
		}
		sd.programs = append(sd.programs, prog)
	}
	return nil
}

// programAthletes groups the athletes two categories per program.
func (sd *seeder) programAthletes(i int) []athlete.Athlete {
	cats := athlete.Categories[i*2 : i*2+2]
	var res []athlete.Athlete
	for _, ath := range sd.athletes {
		if ath.Category == cats[0] || ath.Category == cats[1] {
			res = append(res, ath)
		}
	}
	return res
}

// seedSessions plans Monday, Wednesday and Friday sessions of every program, from seedMonths ago to next week.
// Past sessions are completed with attendance, and present athletes get a performance record.
func (sd *seeder) seedSessions(ctx context.Context) error {
	today := sd.day(sd.now)
	start := today.AddDate(0, -seedMonths, 0)
	end := today.AddDate(0, 0, 7)
	venues := []string{"GOR Pajajaran", "GOR Saparua"}
	slots := [][2]string{{"15:00", "17:00"}, {"17:00", "19:00"}, {"19:00", "21:00"}}

	// each athlete has a base level and a monthly trend
	base := make(map[string]float64, len(sd.athletes))
	trend := make(map[string]float64, len(sd.athletes))
	for _, ath := range sd.athletes {
		base[ath.ID] = float64(sd.between(50, 80))
		trend[ath.ID] = float64(sd.between(-4, 8))
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Monday, time.Wednesday, time.Friday:
		default:
			continue
		}
		past := d.Before(today)
		for i, prog := range sd.programs {
			aths := sd.programAthletes(i)
			s := schedule.Schedule{
				ID:         sd.newID(),
				ProgramID:  prog.ID,
				Title:      prog.Name,
				Date:       d,
				StartTime:  slots[i][0],
				EndTime:    slots[i][1],
				Venue:      venues[i%len(venues)],
				CoachID:    prog.CoachID,
				AthleteIDs: ids(aths, func(a athlete.Athlete) string { return a.ID }),
				Status:     schedule.StatusScheduled,
				CreatedAt:  sd.stamp(),
				UpdatedAt:  sd.stamp(),
			}
			if past {
				s.Status = schedule.StatusCompleted
				if sd.rng.Intn(25) == 0 {
					s.Status = schedule.StatusCancelled
					s.Notes = "Hall unavailable."
				}
			}
			s, err := sd.cli.repos.Schedules.CreateSchedule(ctx, s)
			if err != nil {
				return err
			}
			if s.Status != schedule.StatusCompleted {
				continue
			}
			months := today.Sub(d).Hours() / 24 / 30
			if err = sd.seedRollCall(ctx, s, aths, base, trend, months); err != nil {
				return err
			}
		}
	}
	return nil
}

func (sd *seeder) seedRollCall(ctx context.Context, s schedule.Schedule, aths []athlete.Athlete, base, trend map[string]float64, monthsAgo float64) error {
	recs := make([]attendance.Record, 0, len(aths))
	for _, ath := range aths {
		status := attendance.Present
		switch n := sd.rng.Intn(10); {
		case n == 0:
			status = attendance.Absent
		case n == 1:
			status = attendance.Excused
		}
		recs = append(recs, attendance.Record{
			ID:         sd.newID(),
			ScheduleID: s.ID,
			AthleteID:  ath.ID,
			Date:       s.Date,
			Status:     status,
			RecordedBy: s.CoachID,
			CreatedAt:  sd.stamp(),
			UpdatedAt:  sd.stamp(),
		})
		if status != attendance.Present {
			continue
		}

		level := base[ath.ID] - trend[ath.ID]*monthsAgo
		score := clamp(level+float64(sd.between(-6, 6)), 0, 100)
		stat := func() int { return int(clamp(level+float64(sd.between(-12, 12)), 0, 100)) }
		if _, err := sd.cli.repos.Performance.CreateRecord(ctx, performance.Record{
			ID:         sd.newID(),
			AthleteID:  ath.ID,
			ScheduleID: s.ID,
			Date:       s.Date,
			Score:      score,
			Stats: performance.Stats{
				Smash:     stat(),
				Defense:   stat(),
				Footwork:  stat(),
				Stamina:   stat(),
				Technique: stat(),
			},
			Recovery: performance.Recovery{
				SleepHours:       float64(sd.between(12, 18)) / 2,
				Fatigue:          sd.between(1, 10),
				Soreness:         sd.between(1, 10),
				RestingHeartRate: sd.between(52, 75),
			},
			RecordedBy: s.CoachID,
			CreatedAt:  sd.stamp(),
			UpdatedAt:  sd.stamp(),
		}); err != nil {
			return err
		}
	}
	_, err := sd.cli.repos.Attendance.UpsertRecords(ctx, recs...)
	return err
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

func (sd *seeder) seedNotes(ctx context.Context) error {
	bodies := []struct {
		title, body string
		vis         note.Visibility
	}{
		{"Footwork", "Recovery step after the **smash** is late.\n\n- Split step earlier\n- Stay low", note.VisibilityAthlete},
		{"Tournament plan", "Target the *regional* championship in two months.", note.VisibilityAthlete},
		{"Parents meeting", "Discussed school exams and training load.", note.VisibilityStaff},
	}
	for i, ath := range sd.athletes {
		if i%3 != 0 {
			continue
		}
		b := bodies[sd.rng.Intn(len(bodies))]
		html, err := core.RenderMarkdown(b.body)
		if err != nil {
			return err
		}
		if _, err = sd.cli.repos.Notes.CreateNote(ctx, note.Note{
			ID:         sd.newID(),
			AthleteID:  ath.ID,
			AuthorID:   sd.coaches[i%len(sd.coaches)].ID,
			Title:      b.title,
			Body:       b.body,
			BodyHTML:   html,
			Visibility: b.vis,
			CreatedAt:  sd.stamp(),
			UpdatedAt:  sd.stamp(),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (sd *seeder) seedAchievements(ctx context.Context) error {
	events := []struct {
		title, event string
		level        achievement.Level
	}{
		{"Club championship", "Smash Club Open", achievement.LevelClub},
		{"West Java junior circuit", "Kejurda Jawa Barat", achievement.LevelRegional},
		{"National junior championship", "Kejurnas", achievement.LevelNational},
	}
	medals := []achievement.Medal{achievement.Gold, achievement.Silver, achievement.Bronze, achievement.Participant}
	for i, ath := range sd.athletes {
		if i%2 != 0 {
			continue
		}
		ev := events[sd.rng.Intn(len(events))]
		if _, err := sd.cli.repos.Achievements.CreateAchievement(ctx, achievement.Achievement{
			ID:        sd.newID(),
			AthleteID: ath.ID,
			Title:     ev.title,
			Event:     ev.event,
			Level:     ev.level,
			Medal:     medals[sd.rng.Intn(len(medals))],
			Date:      sd.day(sd.now.AddDate(0, 0, -sd.between(10, 300))).UTC(),
			CreatedAt: sd.stamp(),
			UpdatedAt: sd.stamp(),
		}); err != nil {
			return err
		}
	}
	return nil
}
