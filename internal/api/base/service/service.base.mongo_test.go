package basesvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type doc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
}

func TestInsertDocument(t *testing.T) {
	m, err := insertDocument(doc{Name: "an"})
	require.NoError(t, err)

	assert.Equal(t, "an", m["name"])
	// string rỗng bị bỏ để sparse index không tính trùng
	assert.NotContains(t, m, "email")
	assert.NotContains(t, m, "_id")
	assert.Equal(t, m["createdAt"], m["updatedAt"])
	assert.IsType(t, int64(0), m["createdAt"])
}

func TestInsertDocument_RejectsNonDocument(t *testing.T) {
	_, err := insertDocument(42)
	assert.Error(t, err)
}
