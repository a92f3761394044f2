// Package models - model người dùng (User) của APRE.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User là một bản ghi trong collection users. PasswordHash không bao giờ trả về cho client.
type User struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username" index:"unique"`
	Email        string             `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	Role         string             `json:"role" bson:"role" index:"single"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
