package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, service Service) error
	List(ctx context.Context, filter ListFilter) ([]Service, error)
	GetByID(ctx context.Context, id string) (Service, error)
	Update(ctx context.Context, id string, set bson.M) (Service, error)
	Delete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	Summaries(ctx context.Context, ids []string) (map[string]Summary, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, service Service) error {
	_, err := r.col.InsertOne(ctx, service)
	return err
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter) ([]Service, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Service, 0)
	for cursor.Next(ctx) {
		var service Service
		if err := cursor.Decode(&service); err != nil {
			return nil, err
		}
		items = append(items, service)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Service, error) {
	var service Service
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&service); err != nil {
		return Service{}, err
	}
	return service, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Service, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Service
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return Service{}, err
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

func (r *MongoRepository) Exists(ctx context.Context, id string) (bool, error) {
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *MongoRepository) Summaries(ctx context.Context, ids []string) (map[string]Summary, error) {
	if len(ids) == 0 {
		return map[string]Summary{}, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "category": 1})
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := make(map[string]Summary, len(ids))
	for cursor.Next(ctx) {
		var s Summary
		if err := cursor.Decode(&s); err != nil {
			return nil, err
		}
		summaries[s.ID] = s
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
