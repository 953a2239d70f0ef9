package reviews

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// primitiveRegex builds a case-insensitive substring matcher from raw
// user input. The input is quoted so metacharacters match literally.
func primitiveRegex(search string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(search)), Options: "i"}
}

type ServiceMetric struct {
	ServiceID     string  `bson:"_id"`
	AverageRating float64 `bson:"averageRating"`
	TotalReviews  int64   `bson:"totalReviews"`
}

type Repository interface {
	Create(ctx context.Context, review Review) error
	List(ctx context.Context, filter Filter, sort string, page Page) ([]Review, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	AverageRating(ctx context.Context, filter Filter) (*float64, error)
	Update(ctx context.Context, id string, set, unset bson.M) (Review, error)
	Delete(ctx context.Context, id string) (bool, error)
	StatusCounts(ctx context.Context) (StatusCounts, error)
	ApprovedMetrics(ctx context.Context) (*float64, int64, error)
	PerServiceMetrics(ctx context.Context) ([]ServiceMetric, error)
	LatestCreatedAt(ctx context.Context) (*time.Time, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func query(filter Filter) bson.M {
	q := bson.M{}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	if filter.ServiceID != "" {
		q["serviceId"] = filter.ServiceID
	}
	if filter.MinRating != nil {
		q["rating"] = bson.M{"$gte": *filter.MinRating}
	}
	if filter.FeaturedOnly {
		q["featured"] = true
	}
	if filter.Search != "" {
		regex := primitiveRegex(filter.Search)
		q["$or"] = bson.A{
			bson.M{"customerName": regex},
			bson.M{"customerEmail": regex},
			bson.M{"title": regex},
			bson.M{"body": regex},
		}
	}
	return q
}

func sortSpec(sort string) bson.D {
	switch sort {
	case SortOldest:
		return bson.D{{Key: "createdAt", Value: 1}}
	case SortHighest:
		return bson.D{{Key: "rating", Value: -1}}
	case SortLowest:
		return bson.D{{Key: "rating", Value: 1}}
	case sortFeatured:
		return bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func (r *MongoRepository) Create(ctx context.Context, review Review) error {
	_, err := r.col.InsertOne(ctx, review)
	return err
}

func (r *MongoRepository) List(ctx context.Context, filter Filter, sort string, page Page) ([]Review, error) {
	opts := options.Find().
		SetSort(sortSpec(sort)).
		SetSkip((page.Number - 1) * page.Limit).
		SetLimit(page.Limit)

	cursor, err := r.col.Find(ctx, query(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Review, 0)
	for cursor.Next(ctx) {
		var review Review
		if err := cursor.Decode(&review); err != nil {
			return nil, err
		}
		items = append(items, review)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *MongoRepository) Count(ctx context.Context, filter Filter) (int64, error) {
	return r.col.CountDocuments(ctx, query(filter))
}

func (r *MongoRepository) AverageRating(ctx context.Context, filter Filter) (*float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: query(filter)}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"averageRating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result struct {
		AverageRating float64 `bson:"averageRating"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return nil, err
		}
		return &result.AverageRating, nil
	}
	return nil, cursor.Err()
}

func (r *MongoRepository) Update(ctx context.Context, id string, set, unset bson.M) (Review, error) {
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Review
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return Review{}, err
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

func (r *MongoRepository) StatusCounts(ctx context.Context) (StatusCounts, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return StatusCounts{}, err
	}
	defer cursor.Close(ctx)

	var counts StatusCounts
	for cursor.Next(ctx) {
		var entry struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&entry); err != nil {
			return StatusCounts{}, err
		}
		switch entry.Status {
		case StatusPending:
			counts.Pending = entry.Count
		case StatusApproved:
			counts.Approved = entry.Count
		case StatusRejected:
			counts.Rejected = entry.Count
		}
	}
	if err := cursor.Err(); err != nil {
		return StatusCounts{}, err
	}

	return counts, nil
}

func (r *MongoRepository) ApprovedMetrics(ctx context.Context) (*float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": StatusApproved}}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"averageRating": bson.M{"$avg": "$rating"},
			"totalApproved": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var result struct {
			AverageRating float64 `bson:"averageRating"`
			TotalApproved int64   `bson:"totalApproved"`
		}
		if err := cursor.Decode(&result); err != nil {
			return nil, 0, err
		}
		return &result.AverageRating, result.TotalApproved, nil
	}
	return nil, 0, cursor.Err()
}

func (r *MongoRepository) PerServiceMetrics(ctx context.Context) ([]ServiceMetric, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":    StatusApproved,
			"serviceId": bson.M{"$nin": bson.A{nil, ""}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$serviceId",
			"averageRating": bson.M{"$avg": "$rating"},
			"totalReviews":  bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	metrics := make([]ServiceMetric, 0)
	for cursor.Next(ctx) {
		var metric ServiceMetric
		if err := cursor.Decode(&metric); err != nil {
			return nil, err
		}
		metrics = append(metrics, metric)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return metrics, nil
}

func (r *MongoRepository) LatestCreatedAt(ctx context.Context) (*time.Time, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"createdAt": 1})

	var doc struct {
		CreatedAt time.Time `bson:"createdAt"`
	}
	err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.CreatedAt, nil
}
