package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AgentPerformance là một bản ghi cuộc gọi của agent (collection agentPerformance)
type AgentPerformance struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Date             time.Time          `json:"date" bson:"date" index:"single"`
	AgentID          int                `json:"agentId" bson:"agentId" index:"single"`
	Region           string             `json:"region" bson:"region"`
	CallDuration     int                `json:"callDuration" bson:"callDuration"` // giây
	ResolutionTime   int                `json:"resolutionTime" bson:"resolutionTime"`
	CustomerFeedback string             `json:"customerFeedback" bson:"customerFeedback"`
}
