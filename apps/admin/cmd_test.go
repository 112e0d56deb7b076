package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/attendance"
	"github.com/smashclub/backend/core/performance"
	"github.com/smashclub/backend/core/report"
	"github.com/smashclub/backend/core/schedule"
	"github.com/smashclub/backend/core/settings"
	"github.com/smashclub/backend/core/user"
	emailsvc "github.com/smashclub/backend/services/email"
	logsvc "github.com/smashclub/backend/services/logger"
	"github.com/smashclub/backend/storage"
	"github.com/smashclub/backend/testutil"
)

var seedNow = time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	conf := core.NewTestConfig()
	core.ParseEmailTemplates(conf, logsvc.NewRollbarLogger(zap.NewNop(), conf))
	core.NowFunc = func() time.Time { return seedNow }
	os.Exit(m.Run())
}

func setup(t *testing.T) (*commandLine, *emailsvc.ConsoleServiceMock) {
	conf := core.NewTestConfig()
	logger := testutil.NewLogger(t, conf)
	repos := testutil.OpenDB()
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)

	schedSvc := schedule.NewService(repos.Schedules, conf)
	reportSvc, err := report.NewService(
		athlete.NewService(repos.Athletes),
		attendance.NewService(repos.Attendance, schedSvc),
		performance.NewService(repos.Performance, conf),
		schedSvc,
		settings.NewService(repos.Settings, conf),
		mailSvc,
		conf,
	)
	require.NoError(t, err)

	return &commandLine{
		conf:      conf,
		logger:    logger,
		repos:     repos,
		usrSvc:    user.NewService(repos.Users, mailSvc, conf),
		reportSvc: reportSvc,
		mailSvc:   mailSvc,
		out:       io.Discard,
	}, mailSvc
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, errors.Cause(err))
	case tt.wantErrStr != "":
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), tt.wantErrStr)
		}
	default:
		assert.NoError(t, err)
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	var gotCommand string
	var gotArgs []string
	migrateFunc = func(_ *storage.Repositories, _ context.Context, command string, args ...string) error {
		gotCommand, gotArgs = command, args
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}
	defer func() { migrateFunc = (*storage.Repositories).Migrate }()

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}, extra: []string{}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}, extra: []string{"2"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}, extra: []string{"1"}},
		{name: "status", args: []string{"migrate", "status"}, extra: []string{}},
		{name: "create", args: []string{"migrate", "create", "venue", "sql"}, extra: []string{"venue", "sql"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			tt.check(t, err)
			if wantArgs, ok := tt.extra.([]string); ok {
				assert.Equal(t, tt.args[1], gotCommand)
				assert.Equal(t, wantArgs, gotArgs)
			}
		})
	}

	t.Run("memory engine", func(t *testing.T) {
		migrateFunc = (*storage.Repositories).Migrate
		assert.NoError(t, cli.run([]string{"admin", "migrate", "up"}))
	})
}

func Test_commandLine_addUser(t *testing.T) {
	cli, _ := setup(t)
	ctx := context.Background()

	type extra struct {
		pwd       string
		wantRoles []string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "no email", args: []string{"adduser", "-username", "coach.budi"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-username", "coach.budi", "-email", "budi@smashclub.test"}, wantErr: errHelp},
		{
			name:  "create",
			args:  []string{"adduser", "-username", "Coach.Budi", "-email", "Budi@Smashclub.test", "-name", " Budi "},
			extra: extra{pwd: "Shuttle#2024", wantRoles: []string{}},
		},
		{
			name:  "update as admin",
			args:  []string{"adduser", "-username", "coach.budi", "-email", "budi@smashclub.test", "-admin"},
			extra: extra{pwd: "Feather#2025", wantRoles: []string{user.RoleAdminOwner}},
		},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)
		ex, hasExtra := tt.extra.(extra)
		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(ex.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			tt.check(t, err)
			if !hasExtra {
				return
			}
			usrs, err := cli.repos.Users.QueryUsers(ctx, nil)
			require.NoError(t, err)
			require.Len(t, usrs, 1)
			usr := usrs[0]
			assert.Equal(t, "coach.budi", usr.Username)
			assert.Equal(t, "budi@smashclub.test", usr.Email)
			assert.True(t, usr.IsActive)
			assert.Equal(t, ex.wantRoles, usr.Roles)
			assert.NoError(t, usr.CheckPassword(ex.pwd))
		})
	}

	t.Run("name defaults to username", func(t *testing.T) {
		usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, "coach.budi")
		require.NoError(t, err)
		assert.Equal(t, "coach.budi", usr.Name) // updated without -name
	})
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, _ := setup(t)
	ctx := context.Background()

	usr := testutil.CreateUser(t, cli.repos.Users, "User", "awe", "awe@test.cd", "Racket#01", nil, true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", usr.Username}, extra: extra{pwd: "Smash#02"}},
		{name: "reset with email", args: []string{"resetpassword", "-username", "AWE@test.cd"}, extra: extra{pwd: "Smash#03"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)
		ex, hasExtra := tt.extra.(extra)
		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(ex.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			tt.check(t, err)
			if err != nil || !hasExtra {
				return
			}
			refreshedUsr, err := cli.repos.Users.GetUser(ctx, user.GetFilter{ID: usr.ID})
			require.NoError(t, err)
			assert.False(t, bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash))
			assert.NoError(t, refreshedUsr.CheckPassword(ex.pwd))
		})
	}
}

type seedCounts struct {
	users, athletes, programs, schedules, notes, achievements int
}

func countSeeded(t *testing.T, cli *commandLine) seedCounts {
	ctx := context.Background()
	usrs, err := cli.repos.Users.QueryUsers(ctx, nil)
	require.NoError(t, err)
	aths, err := cli.repos.Athletes.QueryAthletes(ctx, nil)
	require.NoError(t, err)
	progs, err := cli.repos.Programs.QueryPrograms(ctx, nil)
	require.NoError(t, err)
	scheds, err := cli.repos.Schedules.QuerySchedules(ctx, nil)
	require.NoError(t, err)
	notes, err := cli.repos.Notes.QueryNotes(ctx, nil)
	require.NoError(t, err)
	achs, err := cli.repos.Achievements.QueryAchievements(ctx, nil)
	require.NoError(t, err)
	return seedCounts{
		users:        len(usrs),
		athletes:     len(aths),
		programs:     len(progs),
		schedules:    len(scheds),
		notes:        len(notes),
		achievements: len(achs),
	}
}

func Test_commandLine_seed(t *testing.T) {
	ctx := context.Background()
	want := seedCounts{
		users:        5,  // admin, 2 coaches, 2 athletes
		athletes:     18, // 3 per category
		programs:     3,
		schedules:    129, // 43 Mondays, Wednesdays and Fridays from 2023-12-20 to 2024-03-27, per program
		notes:        6,
		achievements: 9,
	}

	cli, _ := setup(t)
	require.NoError(t, cli.run([]string{"admin", "seed"}))
	assert.Equal(t, want, countSeeded(t, cli))

	t.Run("categories", func(t *testing.T) {
		for _, cat := range athlete.Categories {
			aths, err := cli.repos.Athletes.QueryAthletes(ctx, &athlete.QueryFilter{Category: cat})
			require.NoError(t, err)
			assert.Len(t, aths, 3, cat)
		}
	})

	t.Run("sessions", func(t *testing.T) {
		upcoming, err := cli.repos.Schedules.QuerySchedules(ctx, &schedule.QueryFilter{Status: schedule.StatusScheduled})
		require.NoError(t, err)
		assert.Len(t, upcoming, 12) // 4 sessions per program from today on
		for _, s := range upcoming {
			assert.False(t, s.Date.Before(core.StartOfDay(seedNow, time.UTC)))
		}

		recs, err := cli.repos.Attendance.QueryRecords(ctx, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, recs)
		perfs, err := cli.repos.Performance.QueryRecords(ctx, nil)
		require.NoError(t, err)
		present := 0
		for _, rec := range recs {
			if rec.Status == attendance.Present {
				present++
			}
		}
		assert.Equal(t, present, len(perfs))
	})

	t.Run("logins", func(t *testing.T) {
		for _, uname := range []string{"admin", "coach.andi", "coach.lina", "athlete.rina", "athlete.budi"} {
			usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, uname)
			if assert.NoError(t, err, uname) {
				assert.NoError(t, usr.CheckPassword(defaultSeedPassword), uname)
			}
		}
		usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, "athlete.rina")
		require.NoError(t, err)
		assert.NotEmpty(t, usr.AthleteID)
	})

	t.Run("already seeded", func(t *testing.T) {
		err := cli.run([]string{"admin", "seed"})
		assert.Equal(t, errAlreadySeeded, err)
	})

	t.Run("reset", func(t *testing.T) {
		before, err := cli.repos.Athletes.QueryAthletes(ctx, nil)
		require.NoError(t, err)

		require.NoError(t, cli.run([]string{"admin", "seed", "-reset"}))
		assert.Equal(t, want, countSeeded(t, cli))

		after, err := cli.repos.Athletes.QueryAthletes(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, before, after) // same seed, same data
	})

	t.Run("deterministic", func(t *testing.T) {
		other, _ := setup(t)
		require.NoError(t, other.run([]string{"admin", "seed"}))

		want, err := cli.repos.Programs.QueryPrograms(ctx, nil)
		require.NoError(t, err)
		got, err := other.repos.Programs.QueryPrograms(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func Test_commandLine_sendReport(t *testing.T) {
	cli, mailSvc := setup(t)

	t.Run("no recipients", func(t *testing.T) {
		err := cli.run([]string{"admin", "sendreport", "-month", "3", "-year", "2024"})
		var verr *core.ValidationError
		assert.True(t, errors.As(err, &verr), "got %v", err)
		assert.Empty(t, mailSvc.SentMessages())
	})

	require.NoError(t, cli.run([]string{"admin", "seed"}))

	tests := []struct {
		name     string
		args     []string
		wantTo   []string
		wantFile string
	}{
		{
			name:     "club recipients",
			args:     []string{"sendreport", "-month", "3", "-year", "2024"},
			wantTo:   []string{"admin@smashclub.test"},
			wantFile: "report-monthly-2024-03.csv",
		},
		{
			name:     "explicit recipients and category",
			args:     []string{"sendreport", "-month", "2", "-year", "2024", "-category", "U-15", "-to", "Coach@Smashclub.test, parent@example.com"},
			wantTo:   []string{"coach@smashclub.test", "parent@example.com"},
			wantFile: "report-monthly-2024-02-U-15.csv",
		},
		{
			name:     "current month by default",
			args:     []string{"sendreport"},
			wantTo:   []string{"admin@smashclub.test"},
			wantFile: "report-monthly-2024-03.csv",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailSvc.Reset()
			require.NoError(t, cli.run(append([]string{"admin"}, tt.args...)))

			msgs := mailSvc.SentMessages()
			require.Len(t, msgs, 1)
			var to []string
			for _, addr := range msgs[0].To {
				to = append(to, addr.Address)
			}
			assert.Equal(t, tt.wantTo, to)
			require.Len(t, msgs[0].Attachments, 1)
			assert.Equal(t, tt.wantFile, msgs[0].Attachments[0].Filename)
		})
	}

	t.Run("invalid recipient", func(t *testing.T) {
		mailSvc.Reset()
		err := cli.run([]string{"admin", "sendreport", "-to", "nope"})
		var verr *core.ValidationError
		assert.True(t, errors.As(err, &verr), "got %v", err)
		assert.Empty(t, mailSvc.SentMessages())
	})
}
