package admins

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	Create(ctx context.Context, admin Admin) error
	FindByEmail(ctx context.Context, email string) (Admin, error)
	FindByID(ctx context.Context, id string) (Admin, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, admin Admin) error {
	_, err := r.col.InsertOne(ctx, admin)
	return err
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (Admin, error) {
	var admin Admin
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		return Admin{}, err
	}
	return admin, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (Admin, error) {
	var admin Admin
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&admin); err != nil {
		return Admin{}, err
	}
	return admin, nil
}
