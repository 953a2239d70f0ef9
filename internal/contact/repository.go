package contact

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, inquiry Inquiry) error
	List(ctx context.Context) ([]Inquiry, error)
	Update(ctx context.Context, id string, set bson.M) (Inquiry, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, inquiry Inquiry) error {
	_, err := r.col.InsertOne(ctx, inquiry)
	return err
}

func (r *MongoRepository) List(ctx context.Context) ([]Inquiry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Inquiry, 0)
	for cursor.Next(ctx) {
		var inquiry Inquiry
		if err := cursor.Decode(&inquiry); err != nil {
			return nil, err
		}
		items = append(items, inquiry)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Inquiry, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Inquiry
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return Inquiry{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
