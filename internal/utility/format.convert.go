package utility

import (
	"github.com/nadiag01/apre/internal/common"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID chuyển chuỗi hex thành ObjectID, sai định dạng trả ErrInvalidFormat
func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			"ID không đúng định dạng ObjectID",
			common.StatusBadRequest,
			map[string]any{"id": id},
		)
	}
	return oid, nil
}
