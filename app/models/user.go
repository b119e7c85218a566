package models

import "time"

// User owns posts and authors comments. Password is kept exactly as submitted.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Surname   string    `json:"surname" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Password  string    `json:"password" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Touch sets the update timestamp, and the creation timestamp if unset.
func (u *User) Touch(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

// Replace copies the scalar fields of src into u, keeping identity and timestamps.
func (u *User) Replace(src *User) {
	u.Name = src.Name
	u.Surname = src.Surname
	u.Email = src.Email
	u.Password = src.Password
}
