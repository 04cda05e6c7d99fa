package file

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"file-manager-api/internal/domain/file"
	"file-manager-api/internal/domain/user"
	"file-manager-api/internal/infrastructure/db/mongo"
)

const (
	collection = "files"
	pageSize   = 20
)

type Repository struct {
	db *mongo.DB
}

func NewRepository(db *mongo.DB) file.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchByID(ctx context.Context, id file.ID) (*file.File, error) {
	f := new(File)
	err := r.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(f)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchByIDAndOwner(ctx context.Context, id file.ID, ownerID user.ID) (*file.File, error) {
	f := new(File)
	err := r.db.Collection(collection).FindOne(ctx, bson.M{"_id": id, "userId": ownerID}).Decode(f)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchByOwner(ctx context.Context, ownerID user.ID, parentID string, page int) (file.Files, error) {
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(pageSize)

	cur, err := r.db.Collection(collection).Find(ctx, bson.M{"userId": ownerID, "parentId": parentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var fs Files
	for cur.Next(ctx) {
		f := new(File)
		if err = cur.Decode(f); err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	if err = cur.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) Create(ctx context.Context, req file.File) (*file.File, error) {
	res, err := r.db.Collection(collection).InsertOne(ctx, toDBModel(req))
	if err != nil {
		return nil, err
	}

	req.ID = res.InsertedID.(primitive.ObjectID)

	return &req, nil
}

func (r *Repository) SetVisibility(ctx context.Context, id file.ID, ownerID user.ID, isPublic bool) (*file.File, error) {
	f := new(File)
	err := r.db.Collection(collection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "userId": ownerID},
		bson.M{"$set": bson.M{"isPublic": isPublic}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(f)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	return r.db.Collection(collection).CountDocuments(ctx, bson.M{})
}
