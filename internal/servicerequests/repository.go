package servicerequests

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, request ServiceRequest) error
	List(ctx context.Context, status string) ([]ServiceRequest, error)
	GetByID(ctx context.Context, id string) (ServiceRequest, error)
	Update(ctx context.Context, id string, set bson.M) (ServiceRequest, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, request ServiceRequest) error {
	_, err := r.col.InsertOne(ctx, request)
	return err
}

func (r *MongoRepository) List(ctx context.Context, status string) ([]ServiceRequest, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]ServiceRequest, 0)
	for cursor.Next(ctx) {
		var request ServiceRequest
		if err := cursor.Decode(&request); err != nil {
			return nil, err
		}
		items = append(items, request)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (ServiceRequest, error) {
	var request ServiceRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&request); err != nil {
		return ServiceRequest{}, err
	}
	return request, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (ServiceRequest, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated ServiceRequest
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return ServiceRequest{}, err
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
