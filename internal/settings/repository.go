package settings

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// singletonID pins the settings to one well-known document so
// concurrent get-or-create calls upsert the same row.
const singletonID = "site-settings"

type Repository interface {
	GetOrCreate(ctx context.Context, defaults Settings) (Settings, error)
	Update(ctx context.Context, set bson.M, defaults Settings) (Settings, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) GetOrCreate(ctx context.Context, defaults Settings) (Settings, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var settings Settings
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": singletonID},
		bson.M{"$setOnInsert": onInsert(defaults)},
		opts,
	).Decode(&settings)
	if err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (r *MongoRepository) Update(ctx context.Context, set bson.M, defaults Settings) (Settings, error) {
	// $setOnInsert seeds any field the edit left untouched, so a PUT
	// against an empty collection still yields a complete document.
	insert := onInsert(defaults)
	for key := range set {
		delete(insert, key)
	}

	update := bson.M{"$set": set}
	if len(insert) > 0 {
		update["$setOnInsert"] = insert
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var settings Settings
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": singletonID}, update, opts).Decode(&settings)
	if err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func onInsert(defaults Settings) bson.M {
	return bson.M{
		"heroMediaType":   defaults.HeroMediaType,
		"heroImageUrl":    defaults.HeroImageURL,
		"heroVideoUrl":    defaults.HeroVideoURL,
		"heroHeadline":    defaults.HeroHeadline,
		"heroSubheadline": defaults.HeroSubheadline,
		"createdAt":       defaults.CreatedAt,
		"updatedAt":       defaults.UpdatedAt,
	}
}
