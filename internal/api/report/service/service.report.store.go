package reportsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentStore là kho dữ liệu mà engine truy vấn. Implementation phải an toàn
// khi gọi đồng thời; vòng đời kết nối do bên ngoài quản lý.
type DocumentStore interface {
	Aggregate(ctx context.Context, collection string, pipeline bson.A) ([]bson.M, error)
	Distinct(ctx context.Context, collection, field string) ([]any, error)
}

// MongoStore là DocumentStore trên một *mongo.Database
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore tạo store cho database db
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// Aggregate chạy pipeline và đọc toàn bộ kết quả
func (s *MongoStore) Aggregate(ctx context.Context, collection string, pipeline bson.A) ([]bson.M, error) {
	cursor, err := s.db.Collection(collection).Aggregate(ctx, pipeline, options.Aggregate().SetAllowDiskUse(false))
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var out []bson.M
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("read aggregate %s: %w", collection, err)
	}
	return out, nil
}

// Distinct trả về các giá trị khác nhau của field
func (s *MongoStore) Distinct(ctx context.Context, collection, field string) ([]any, error) {
	values, err := s.db.Collection(collection).Distinct(ctx, field, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("distinct %s.%s: %w", collection, field, err)
	}
	return values, nil
}
