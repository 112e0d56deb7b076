// Package storage opens the configured database engine and builds its repositories.
package storage

import (
	"context"

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
	"github.com/smashclub/backend/storage/database"
	"github.com/smashclub/backend/storage/database/dummy"
	"github.com/smashclub/backend/storage/database/mongo"
	"github.com/smashclub/backend/storage/database/sqlx"
)

const (
	EngineMongo    = "mongodb"
	EnginePostgres = "postgres"
	EngineMemory   = "memory"
)

var ErrUnknownEngine = errors.New("unknown database engine")

type Repositories struct {
	Engine       string
	DB           core.Store
	Users        user.Repository
	Athletes     athlete.Repository
	Programs     program.Repository
	Schedules    schedule.Repository
	Attendance   attendance.Repository
	Performance  performance.Repository
	Notes        note.Repository
	Achievements achievement.Repository
	Settings     settings.Repository

	mongo    *database.Mongo
	postgres *database.Postgres
	memory   *dummydb.DB
}

// Open connects to conf.Database.Engine and builds its repositories.
func Open(ctx context.Context, conf *core.Config) (*Repositories, error) {
	switch conf.Database.Engine {
	case EngineMongo:
		m, err := database.OpenMongo(ctx, conf)
		if err != nil {
			return nil, err
		}
		return NewMongoRepositories(m), nil
	case EnginePostgres:
		db, err := database.OpenPostgres(conf)
		if err != nil {
			return nil, err
		}
		return NewPostgresRepositories(&database.Postgres{DB: db}), nil
	case EngineMemory:
		return NewMemoryRepositories(dummydb.Open()), nil
	default:
		return nil, errors.Wrapf(ErrUnknownEngine, "%q", conf.Database.Engine)
	}
}

func NewMongoRepositories(m *database.Mongo) *Repositories {
	return &Repositories{
		Engine:       EngineMongo,
		DB:           m,
		Users:        mongorepos.NewUserRepository(m.DB),
		Athletes:     mongorepos.NewAthleteRepository(m.DB),
		Programs:     mongorepos.NewProgramRepository(m.DB),
		Schedules:    mongorepos.NewScheduleRepository(m.DB),
		Attendance:   mongorepos.NewAttendanceRepository(m.DB),
		Performance:  mongorepos.NewPerformanceRepository(m.DB),
		Notes:        mongorepos.NewNoteRepository(m.DB),
		Achievements: mongorepos.NewAchievementRepository(m.DB),
		Settings:     mongorepos.NewSettingsRepository(m.DB),
		mongo:        m,
	}
}

func NewPostgresRepositories(pg *database.Postgres) *Repositories {
	return &Repositories{
		Engine:       EnginePostgres,
		DB:           pg,
		Users:        sqlxrepos.NewUserRepository(pg.DB),
		Athletes:     sqlxrepos.NewAthleteRepository(pg.DB),
		Programs:     sqlxrepos.NewProgramRepository(pg.DB),
		Schedules:    sqlxrepos.NewScheduleRepository(pg.DB),
		Attendance:   sqlxrepos.NewAttendanceRepository(pg.DB),
		Performance:  sqlxrepos.NewPerformanceRepository(pg.DB),
		Notes:        sqlxrepos.NewNoteRepository(pg.DB),
		Achievements: sqlxrepos.NewAchievementRepository(pg.DB),
		Settings:     sqlxrepos.NewSettingsRepository(pg.DB),
		postgres:     pg,
	}
}

func NewMemoryRepositories(db *dummydb.DB) *Repositories {
	return &Repositories{
		Engine:       EngineMemory,
		DB:           db,
		Users:        dummydb.NewUserRepository(db),
		Athletes:     dummydb.NewAthleteRepository(db),
		Programs:     dummydb.NewProgramRepository(db),
		Schedules:    dummydb.NewScheduleRepository(db),
		Attendance:   dummydb.NewAttendanceRepository(db),
		Performance:  dummydb.NewPerformanceRepository(db),
		Notes:        dummydb.NewNoteRepository(db),
		Achievements: dummydb.NewAchievementRepository(db),
		Settings:     dummydb.NewSettingsRepository(db),
		memory:       db,
	}
}

// Migrate brings the schema up to date: goose migrations on postgres, indexes on mongodb.
// command is only used by postgres ("up", "down", "status", ...).
func (r *Repositories) Migrate(ctx context.Context, command string, args ...string) error {
	switch {
	case r.postgres != nil:
		return database.Migrate(r.postgres.DB.DB, command, args...)
	case r.mongo != nil:
		if command != "up" {
			return errors.Errorf("migrate %s: only \"up\" is supported on mongodb", command)
		}
		return r.mongo.EnsureIndexes(ctx)
	default:
		return nil
	}
}

// Reset empties the in-memory store. Other engines are left untouched.
func (r *Repositories) Reset() {
	if r.memory != nil {
		r.memory.Reset()
	}
}

func (r *Repositories) Close(ctx context.Context) error {
	return r.DB.Close(ctx)
}
