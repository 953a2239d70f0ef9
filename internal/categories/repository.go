package categories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, category Category) error
	List(ctx context.Context, filter ListFilter) ([]Category, error)
	GetByID(ctx context.Context, id string) (Category, error)
	Update(ctx context.Context, id string, set bson.M) (Category, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, category Category) error {
	_, err := r.col.InsertOne(ctx, category)
	return err
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter) ([]Category, error) {
	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Active != nil {
		query["active"] = *filter.Active
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Category, 0)
	for cursor.Next(ctx) {
		var category Category
		if err := cursor.Decode(&category); err != nil {
			return nil, err
		}
		items = append(items, category)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Category, error) {
	var category Category
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		return Category{}, err
	}
	return category, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Category, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Category
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return Category{}, err
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
