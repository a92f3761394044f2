package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// BsonWrapper gom các toán tử update cơ bản để encode thành document update của Mongo
type BsonWrapper struct {
	// Set -> { $set: {...} }
	Set interface{} `json:"$set,omitempty" bson:"$set,omitempty"`
	// Unset -> { $unset: {field: ""} }
	Unset interface{} `json:"$unset,omitempty" bson:"$unset,omitempty"`
}

// ToMap chuyển struct (hoặc map) thành map theo bson tag
func ToMap(s interface{}) (map[string]interface{}, error) {
	raw, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	var out map[string]interface{}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return out, nil
}

// SetFields tạo update {$set: data}, bỏ qua field rỗng nếu skipEmpty
func SetFields(data interface{}, skipEmpty bool) (map[string]interface{}, error) {
	m, err := ToMap(data)
	if err != nil {
		return nil, err
	}
	if skipEmpty {
		for k, v := range m {
			if isEmpty(v) {
				delete(m, k)
			}
		}
	}
	return m, nil
}

func isEmpty(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	}
	return false
}
