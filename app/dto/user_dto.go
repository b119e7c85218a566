package dto

import "postboard/app/models"

// UserRequest is the body of user create and update calls.
// Pointer fields tell a missing value apart from an empty one.
type UserRequest struct {
	Name     *string `json:"name" validate:"required,size=0-255"`
	Surname  *string `json:"surname" validate:"required,size=0-255"`
	Email    *string `json:"email" validate:"required,email,size=2-255"`
	Password *string `json:"password" validate:"required,password,size=0-255"`
}

func (r *UserRequest) Validate() error {
	return models.ValidateStruct(r)
}

// ToUser builds a storage record from a validated request.
func (r *UserRequest) ToUser() *models.User {
	return &models.User{
		Name:     deref(r.Name),
		Surname:  deref(r.Surname),
		Email:    deref(r.Email),
		Password: deref(r.Password),
	}
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func FromUser(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Surname:  u.Surname,
		Email:    u.Email,
		Password: u.Password,
	}
}

func FromUsers(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FromUser(&users[i]))
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
