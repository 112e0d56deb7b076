package mongorepos

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/user"
	"github.com/smashclub/backend/storage/database"
)

type userRepository struct {
	coll *mongo.Collection
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *mongo.Database) user.Repository {
	return &userRepository{coll: db.Collection(database.UserCollection)}
}

func (repo *userRepository) CheckUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	ids := make([]string, 0, len(excludedUsers))
	for _, u := range excludedUsers {
		ids = append(ids, u.ID)
	}
	check := func(key, val string, exists error) error {
		if val == "" {
			return nil
		}
		f := bson.D{{Key: key, Value: val}}
		if len(ids) > 0 {
			f = append(f, bson.E{Key: "_id", Value: bson.D{{Key: "$nin", Value: ids}}})
		}
		count, err := repo.coll.CountDocuments(ctx, f)
		if err != nil {
			return errors.Wrap(err, "checking user uniqueness")
		}
		if count > 0 {
			return exists
		}
		return nil
	}
	if err := check("username", username, user.ErrUsernameExists); err != nil {
		return err
	}
	return check("email", email, user.ErrEmailExists)
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.Roles == nil {
		usr.Roles = []string{}
	}
	if _, err := repo.coll.InsertOne(ctx, usr); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryUsers(ctx context.Context, qf *user.QueryFilter, ordering ...core.DBOrdering) ([]user.User, error) {
	var f filter
	if qf != nil {
		// users with Name, Username or Email matching the search keyword
		if qf.Search != "" {
			rgx := primitive.Regex{Pattern: regexp.QuoteMeta(qf.Search), Options: "i"}
			f = append(f, bson.E{Key: "$or", Value: bson.A{
				bson.D{{Key: "name", Value: rgx}},
				bson.D{{Key: "username", Value: rgx}},
				bson.D{{Key: "email", Value: rgx}},
			}})
		}
		// users with any role that starts with any of the provided roles
		if len(qf.Roles) > 0 {
			prefixes := make(bson.A, 0, len(qf.Roles))
			for _, role := range qf.Roles {
				prefixes = append(prefixes, primitive.Regex{Pattern: "^" + regexp.QuoteMeta(role), Options: "i"})
			}
			f = append(f, bson.E{Key: "roles", Value: bson.D{{Key: "$in", Value: prefixes}}})
		}
		if qf.IsActive != nil {
			f = append(f, bson.E{Key: "is_active", Value: *qf.IsActive})
		}
		f.dateRange("created_at", qf.CreatedFrom, qf.CreatedTo)
	}
	users, err := findAll[user.User](ctx, repo.coll, f.doc(), sortBy(ordering, natural))
	return users, errors.Wrap(err, "querying users")
}

func (repo *userRepository) GetUser(ctx context.Context, gf user.GetFilter) (user.User, error) {
	var f bson.D
	switch {
	case gf.ID != "":
		f = bson.D{{Key: "_id", Value: gf.ID}}
	case gf.Username != "":
		f = bson.D{{Key: "username", Value: gf.Username}}
	case gf.Email != "":
		f = bson.D{{Key: "email", Value: gf.Email}}
	case len(gf.UsernameOrEmail) > 0:
		f = bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "username", Value: bson.D{{Key: "$in", Value: gf.UsernameOrEmail}}}},
			bson.D{{Key: "email", Value: bson.D{{Key: "$in", Value: gf.UsernameOrEmail}}}},
		}}}
	default:
		return user.User{}, user.ErrNotFound
	}

	var usr user.User
	if err := repo.coll.FindOne(ctx, f).Decode(&usr); err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user")
	}
	return usr, nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	if err := replaceByID(ctx, repo.coll, usr.ID, usr, user.ErrNotFound); err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return usr, nil
}

func (repo *userRepository) DeleteUsers(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.coll, ids), "deleting users")
}
