package usersvc

import (
	"context"
	"sort"
	"sync"

	"github.com/nadiag01/apre/internal/api/user/models"
	"github.com/nadiag01/apre/internal/common"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// memUsers là UserStore trong bộ nhớ, bắt unique theo username như index thật
type memUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[primitive.ObjectID]models.User{}}
}

func (m *memUsers) InsertOne(_ context.Context, u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return models.User{}, common.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt, u.UpdatedAt = 1, 1
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsers) Find(_ context.Context, _ interface{}, _ *options.FindOptions) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.User{}
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *memUsers) FindOneById(_ context.Context, id primitive.ObjectID) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, common.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) UpdateById(_ context.Context, id primitive.ObjectID, set map[string]interface{}) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, common.ErrNotFound
	}
	for k, v := range set {
		switch k {
		case "username":
			u.Username = v.(string)
		case "email":
			u.Email = v.(string)
		case "role":
			u.Role = v.(string)
		case "passwordHash":
			u.PasswordHash = v.(string)
		}
	}
	u.UpdatedAt++
	m.users[id] = u
	return u, nil
}

func (m *memUsers) DeleteById(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.users, id)
	return nil
}
