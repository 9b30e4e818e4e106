package accountRepo

import (
	"context"
	"errors"

	"bookline/database"
	"bookline/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when an account id does not resolve to a stored record.
var ErrNotFound = errors.New("account not found")

// AccountRepository looks up marketplace parties; the notification layer uses it
// to resolve push tokens.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
	SetFCMToken(ctx context.Context, id, token string) error
}

type mongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo returns an AccountRepository backed by MongoDB.
func NewMongoAccountRepo() AccountRepository {
	return &mongoAccountRepo{
		coll: database.DB().Collection("accounts"),
	}
}

func (r *mongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// SetFCMToken stores the latest push token registered by a client device.
func (r *mongoAccountRepo) SetFCMToken(ctx context.Context, id, token string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"fcmToken": token}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
