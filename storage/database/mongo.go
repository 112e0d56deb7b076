package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smashclub/backend/core"
)

// Collection names
const (
	UserCollection        = "users"
	AthleteCollection     = "athletes"
	ProgramCollection     = "training_programs"
	ScheduleCollection    = "training_schedules"
	AttendanceCollection  = "attendance"
	PerformanceCollection = "performance"
	NoteCollection        = "notes"
	AchievementCollection = "achievements"
	SettingsCollection    = "settings"
)

// Mongo is the lifecycle handle of a mongodb store.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// OpenMongo connects to conf.Database.URI and checks the connection.
func OpenMongo(ctx context.Context, conf *core.Config) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(conf.Database.URI).
		SetAppName(conf.AppName).
		SetConnectTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}
	m := &Mongo{Client: client, DB: client.Database(conf.Database.Name)}
	if err = m.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return m, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return errors.Wrap(m.Client.Ping(ctx, nil), "pinging mongodb")
}

func (m *Mongo) Close(ctx context.Context) error {
	return errors.Wrap(m.Client.Disconnect(ctx), "disconnecting from mongodb")
}

// EnsureIndexes creates the indexes the repositories rely on. It is idempotent.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	sparseUnique := options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{"$and": bson.A{
		bson.M{"username": bson.M{"$type": "string"}},
		bson.M{"username": bson.M{"$gt": ""}},
	}})
	emailUnique := options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{"$and": bson.A{
		bson.M{"email": bson.M{"$type": "string"}},
		bson.M{"email": bson.M{"$gt": ""}},
	}})

	indexes := map[string][]mongo.IndexModel{
		UserCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: sparseUnique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: emailUnique},
		},
		AthleteCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		ScheduleCollection: {
			{Keys: bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}}},
		},
		AttendanceCollection: {
			{Keys: bson.D{{Key: "schedule_id", Value: 1}, {Key: "athlete_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "athlete_id", Value: 1}, {Key: "date", Value: 1}}},
		},
		PerformanceCollection: {
			{Keys: bson.D{{Key: "athlete_id", Value: 1}, {Key: "date", Value: 1}}},
		},
		NoteCollection: {
			{Keys: bson.D{{Key: "athlete_id", Value: 1}}},
		},
		AchievementCollection: {
			{Keys: bson.D{{Key: "athlete_id", Value: 1}, {Key: "date", Value: -1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := m.DB.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "creating %s indexes", coll)
		}
	}
	return nil
}
