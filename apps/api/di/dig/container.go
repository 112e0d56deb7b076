package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	echoapi "github.com/smashclub/backend/apps/api/echo"
	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/achievement"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/attendance"
	"github.com/smashclub/backend/core/dashboard"
	"github.com/smashclub/backend/core/note"
	"github.com/smashclub/backend/core/performance"
	"github.com/smashclub/backend/core/program"
	"github.com/smashclub/backend/core/report"
	"github.com/smashclub/backend/core/schedule"
	"github.com/smashclub/backend/core/settings"
	"github.com/smashclub/backend/core/user"
	emailsvc "github.com/smashclub/backend/services/email"
	logsvc "github.com/smashclub/backend/services/logger"
	"github.com/smashclub/backend/storage"
	"github.com/smashclub/backend/storage/database"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// Repos are the repositories of the configured database engine.
type Repos struct {
	dig.Out

	Users        user.Repository
	Athletes     athlete.Repository
	Programs     program.Repository
	Schedules    schedule.Repository
	Attendance   attendance.Repository
	Performance  performance.Repository
	Notes        note.Repository
	Achievements achievement.Repository
	Settings     settings.Repository
}

func newZap(conf *core.Config) (*zap.Logger, error) {
	return logsvc.NewZap(conf)
}

func newLogger(zl *zap.Logger, conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(zl.Named("API"), conf)
}

func newDBLogger(zl *zap.Logger, conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(zl.Named("DB"), conf)
}

// newStorage opens the database and brings its schema up to date.
func newStorage(conf *core.Config, loggerParam DBLoggerParam) *storage.Repositories {
	setUp := func() (*storage.Repositories, error) {
		if conf.Database.Engine == storage.EnginePostgres {
			if err := database.CreateIfNotExist(conf); err != nil {
				return nil, err
			}
		}

		ctx := context.Background()
		repos, err := storage.Open(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err = repos.Migrate(ctx, "up"); err != nil {
			_ = repos.Close(ctx)
			return nil, err
		}
		return repos, nil
	}

	repos, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return repos
}

func splitRepos(r *storage.Repositories) Repos {
	return Repos{
		Users:        r.Users,
		Athletes:     r.Athletes,
		Programs:     r.Programs,
		Schedules:    r.Schedules,
		Attendance:   r.Attendance,
		Performance:  r.Performance,
		Notes:        r.Notes,
		Achievements: r.Achievements,
		Settings:     r.Settings,
	}
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return validate
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newZap))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStorage))
	must(c.Provide(splitRepos))
	must(c.Provide(emailsvc.New))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))

	must(c.Provide(user.NewService))
	must(c.Provide(athlete.NewService))
	must(c.Provide(program.NewService))
	must(c.Provide(schedule.NewService))
	must(c.Provide(attendance.NewService))
	must(c.Provide(performance.NewService))
	must(c.Provide(note.NewService))
	must(c.Provide(achievement.NewService))
	must(c.Provide(settings.NewService))
	must(c.Provide(report.NewService))
	must(c.Provide(dashboard.NewService))
	must(c.Provide(echoapi.NewServer))

	if os.Getenv("DIG_VISUALIZE") != "" {
		_ = dig.Visualize(c, os.Stdout)
	}
	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
