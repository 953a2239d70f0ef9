package team

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, member Member) error
	List(ctx context.Context) ([]Member, error)
	GetByID(ctx context.Context, id string) (Member, error)
	Update(ctx context.Context, id string, set bson.M) (Member, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, member Member) error {
	_, err := r.col.InsertOne(ctx, member)
	return err
}

// List returns every member sorted by display order, then name.
func (r *MongoRepository) List(ctx context.Context) ([]Member, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Member, 0)
	for cursor.Next(ctx) {
		var member Member
		if err := cursor.Decode(&member); err != nil {
			return nil, err
		}
		items = append(items, member)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Member, error) {
	var member Member
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&member); err != nil {
		return Member{}, err
	}
	return member, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Member, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Member
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return Member{}, err
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
