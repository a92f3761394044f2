// Package usersvc chứa logic nghiệp vụ cho domain User.
package usersvc

import (
	"context"
	"errors"

	userdto "github.com/nadiag01/apre/internal/api/user/dto"
	"github.com/nadiag01/apre/internal/api/user/models"
	"github.com/nadiag01/apre/internal/common"
	"github.com/nadiag01/apre/internal/utility"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// UserStore là phần của base service mà UserService cần
type UserStore interface {
	InsertOne(ctx context.Context, data models.User) (models.User, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.User, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (models.User, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (models.User, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error
}

// UserService quản lý người dùng
type UserService struct {
	store UserStore
	cost  int
}

// NewUserService tạo service; cost ngoài khoảng hợp lệ của bcrypt thì dùng bcrypt.DefaultCost
func NewUserService(store UserStore, cost int) *UserService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserService{store: store, cost: cost}
}

// List trả về toàn bộ người dùng theo username
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.Find(ctx, nil, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
}

// Get trả về người dùng theo ID
func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.store.FindOneById(ctx, id)
}

// Create hash mật khẩu và tạo người dùng mới
func (s *UserService) Create(ctx context.Context, in userdto.UserCreateInput) (models.User, error) {
	hash, err := s.hash(in.Password)
	if err != nil {
		return models.User{}, err
	}
	return s.store.InsertOne(ctx, models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	})
}

// Update cập nhật các field có giá trị; mật khẩu mới được hash lại
func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, in userdto.UserUpdateInput) (models.User, error) {
	if in.IsEmpty() {
		return models.User{}, common.NewError(common.ErrCodeValidationInput, "Không có thông tin nào để cập nhật", common.StatusBadRequest, nil)
	}
	set, err := utility.SetFields(map[string]interface{}{
		"username": in.Username,
		"email":    in.Email,
		"role":     in.Role,
	}, true)
	if err != nil {
		return models.User{}, common.ErrInvalidFormat
	}
	if in.Password != "" {
		hash, err := s.hash(in.Password)
		if err != nil {
			return models.User{}, err
		}
		set["passwordHash"] = hash
	}
	return s.store.UpdateById(ctx, id, set)
}

// Delete xóa người dùng theo ID
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.store.DeleteById(ctx, id)
}

// CheckPassword so khớp mật khẩu với hash đã lưu
func (s *UserService) CheckPassword(user models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func (s *UserService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", common.NewError(common.ErrCodeValidationInput, "Mật khẩu quá dài", common.StatusBadRequest, nil)
		}
		return "", common.WrapError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, nil, err)
	}
	return string(b), nil
}
