// Package models - các collection nguồn mà report engine đọc.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale là một giao dịch bán hàng trong collection sales.
// Amount lưu dạng số (int32/int64/double/Decimal128 đều được report chấp nhận).
type Sale struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Date        time.Time          `json:"date" bson:"date" index:"single,order:-1"`
	Region      string             `json:"region" bson:"region" index:"single;compound:region_salesperson"`
	Product     string             `json:"product" bson:"product"`
	Category    string             `json:"category" bson:"category" index:"single"`
	Customer    string             `json:"customer" bson:"customer"`
	Salesperson string             `json:"salesperson" bson:"salesperson" index:"compound:region_salesperson"`
	Channel     string             `json:"channel" bson:"channel" index:"single"`
	Amount      float64            `json:"amount" bson:"amount"`
}
