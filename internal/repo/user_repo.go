package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/adilzhan/studentlife-auth/internal/domain"
	"github.com/adilzhan/studentlife-auth/internal/oauth"
)

const usersColl = "users"

// EnsureUserIndexes creates the unique sparse index on google_id, which is
// what makes concurrent first logins for one subject converge on one User.
func (s *Store) EnsureUserIndexes(ctx context.Context) error {
	_, err := s.DB.Collection(usersColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "google_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	return err
}

// FindOrCreateUser returns the User for the profile's subject, inserting one
// on first login. The upsert uses $setOnInsert only, so a returning user's
// stored fields are never refreshed from the profile. The second return value
// reports whether a new User was created.
func (s *Store) FindOrCreateUser(ctx context.Context, p *oauth.Profile) (*domain.User, bool, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.find_or_create",
		tracer.Tag("google_id", p.Sub),
	)
	defer sp.Finish()

	name := p.GivenName
	if name == "" {
		name = p.Name
	}
	res, err := s.DB.Collection(usersColl).UpdateOne(ctx,
		bson.M{"google_id": p.Sub},
		bson.M{"$setOnInsert": bson.M{
			"name":       name,
			"pin_number": p.FamilyName,
			"email":      p.Email,
			"google_id":  p.Sub,
			"created_at": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		sp.SetTag("error", err)
		return nil, false, err
	}

	var u domain.User
	if err := s.DB.Collection(usersColl).
		FindOne(ctx, bson.M{"google_id": p.Sub}).Decode(&u); err != nil {
		sp.SetTag("error", err)
		return nil, false, err
	}
	return &u, res.UpsertedCount > 0, nil
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.find_by_id")
	defer sp.Finish()

	var u domain.User
	err := s.DB.Collection(usersColl).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		sp.SetTag("error", err)
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindUserByGoogleID(ctx context.Context, sub string) (*domain.User, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.find_by_google_id")
	defer sp.Finish()

	var u domain.User
	err := s.DB.Collection(usersColl).FindOne(ctx, bson.M{"google_id": sub}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		sp.SetTag("error", err)
		return nil, err
	}
	return &u, nil
}
