// Package userdto chứa DTO cho domain User.
package userdto

// UserCreateInput đầu vào tạo người dùng.
type UserCreateInput struct {
	Username string `json:"username" validate:"required,min=3,max=50,no_xss"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,user_role"`
}

// UserUpdateInput đầu vào cập nhật người dùng, field rỗng được giữ nguyên.
type UserUpdateInput struct {
	Username string `json:"username" validate:"omitempty,min=3,max=50,no_xss"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,user_role"`
}

// IsEmpty cho biết input không có field nào để cập nhật
func (in UserUpdateInput) IsEmpty() bool {
	return in.Username == "" && in.Email == "" && in.Password == "" && in.Role == ""
}

// UserIDResult là kết quả trả về của các thao tác ghi
type UserIDResult struct {
	ID string `json:"id"`
}
