package database

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/nadiag01/apre/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureCollections tạo các collection còn thiếu trong db
func EnsureCollections(ctx context.Context, db *mongo.Database, names []string) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	log := logger.WithModule("database")
	for _, name := range names {
		if slices.Contains(existing, name) {
			continue
		}
		log.WithField("collection", name).Info("Collection chưa tồn tại, tạo mới")
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}
	return nil
}

// IndexSpec mô tả một index sinh ra từ tag `index` của model.
//
// Cú pháp tag: các cấu hình phân cách bởi ';', mỗi cấu hình gồm các cờ phân cách bởi ','
//
//	index:"single"                 index đơn tăng dần
//	index:"single,order:-1"        index đơn giảm dần
//	index:"unique,sparse"          unique + sparse
//	index:"compound:region_date"   thuộc compound index tên region_date (theo thứ tự field)
type IndexSpec struct {
	Name   string
	Keys   bson.D
	Unique bool
	Sparse bool
}

// IndexSpecs đọc tag `index` của model (struct hoặc con trỏ struct)
func IndexSpecs(model any) ([]IndexSpec, error) {
	t := reflect.TypeOf(model)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("index model must be a struct, got %v", t)
	}

	var specs []IndexSpec
	compound := map[string]int{} // tên compound -> vị trí trong specs

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := strings.Split(field.Tag.Get("bson"), ",")[0]
		if bsonField == "" || bsonField == "-" {
			continue
		}

		for _, cfg := range parseIndexTag(tag) {
			order := 1
			if cfg["order"] == "-1" {
				order = -1
			}
			_, sparse := cfg["sparse"]

			if _, ok := cfg["single"]; ok {
				specs = append(specs, IndexSpec{Name: bsonField + "_single", Keys: bson.D{{Key: bsonField, Value: order}}})
			}
			if _, ok := cfg["unique"]; ok {
				specs = append(specs, IndexSpec{Name: bsonField + "_unique", Keys: bson.D{{Key: bsonField, Value: 1}}, Unique: true, Sparse: sparse})
			}
			if group, ok := cfg["compound"]; ok && group != "" {
				idx, seen := compound[group]
				if !seen {
					specs = append(specs, IndexSpec{Name: group, Unique: strings.HasSuffix(group, "_unique")})
					idx = len(specs) - 1
					compound[group] = idx
				}
				specs[idx].Keys = append(specs[idx].Keys, bson.E{Key: bsonField, Value: order})
				specs[idx].Sparse = specs[idx].Sparse || sparse
			}
		}
	}
	return specs, nil
}

// parseIndexTag tách tag thành danh sách cấu hình key[:value]
func parseIndexTag(tag string) []map[string]string {
	var out []map[string]string
	for _, part := range strings.Split(tag, ";") {
		entry := map[string]string{}
		for _, flag := range strings.Split(part, ",") {
			flag = strings.TrimSpace(flag)
			if flag == "" {
				continue
			}
			k, v, _ := strings.Cut(flag, ":")
			entry[k] = v
		}
		if len(entry) > 0 {
			out = append(out, entry)
		}
	}
	return out
}

// CreateIndexes tạo các index khai báo trên model; index cùng tên nhưng khác key sẽ bị thay thế
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model any) error {
	specs, err := IndexSpecs(model)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return nil
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	// Decode vào bson.D để "key" lồng bên trong giữ thứ tự field
	var existingList []bson.D
	if err := cursor.All(ctx, &existingList); err != nil {
		return fmt.Errorf("không thể giải mã thông tin index: %w", err)
	}
	existing := make(map[string]bson.M, len(existingList))
	for _, idx := range existingList {
		info := bson.M{}
		for _, e := range idx {
			info[e.Key] = e.Value
		}
		if name, ok := info["name"].(string); ok {
			existing[name] = info
		}
	}

	log := logger.WithCollection("database", collection.Name())
	for _, spec := range specs {
		if cur, ok := existing[spec.Name]; ok {
			if sameIndex(cur, spec) {
				continue
			}
			if _, err := collection.Indexes().DropOne(ctx, spec.Name); err != nil {
				return fmt.Errorf("không thể xóa index %s: %w", spec.Name, err)
			}
			log.WithField("index", spec.Name).Info("Đã xóa index cũ")
		}

		opts := options.Index().SetName(spec.Name)
		if spec.Unique {
			opts.SetUnique(true)
		}
		if spec.Sparse {
			opts.SetSparse(true)
		}
		if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: opts}); err != nil {
			return fmt.Errorf("không thể tạo index %s: %w", spec.Name, err)
		}
		log.WithField("index", spec.Name).Info("Đã tạo index")
	}
	return nil
}

// sameIndex so sánh key (theo thứ tự) và cờ unique của index đang có
func sameIndex(existing bson.M, spec IndexSpec) bool {
	unique, _ := existing["unique"].(bool)
	if unique != spec.Unique {
		return false
	}

	var keys bson.D
	switch k := existing["key"].(type) {
	case bson.D:
		keys = k
	case bson.M:
		// bson.M không giữ thứ tự, chỉ so sánh được index một key
		for name, v := range k {
			keys = append(keys, bson.E{Key: name, Value: v})
		}
		if len(keys) > 1 {
			return false
		}
	default:
		return false
	}

	if len(keys) != len(spec.Keys) {
		return false
	}
	for i, e := range spec.Keys {
		if keys[i].Key != e.Key || toInt(keys[i].Value) != e.Value.(int) {
			return false
		}
	}
	return true
}

func toInt(v any) int {
	switch n := v.(type) {
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}
