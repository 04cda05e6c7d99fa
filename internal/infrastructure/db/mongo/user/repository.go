package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"

	"file-manager-api/internal/domain/user"
	"file-manager-api/internal/infrastructure/db/mongo"
)

const collection = "users"

type Repository struct {
	db *mongo.DB
}

func NewRepository(db *mongo.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchByID(ctx context.Context, id user.ID) (*user.User, error) {
	u := new(User)
	err := r.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(u)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchByEmail(ctx context.Context, email string) (*user.User, error) {
	u := new(User)
	err := r.db.Collection(collection).FindOne(ctx, bson.M{"email": email}).Decode(u)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) Create(ctx context.Context, req user.User) (*user.User, error) {
	res, err := r.db.Collection(collection).InsertOne(ctx, toDBModel(req))
	if err != nil {
		return nil, err
	}

	req.ID = res.InsertedID.(primitive.ObjectID)

	return &req, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	return r.db.Collection(collection).CountDocuments(ctx, bson.M{})
}
