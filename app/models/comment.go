package models

import "time"

// Comment is attached to one post and written by one user.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Content   string    `json:"content" gorm:"size:1024;not null"`
	PostID    int64     `json:"postId" gorm:"not null;index"`
	UserID    int64     `json:"userId" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Post *Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Touch sets the update timestamp, and the creation timestamp if unset.
func (c *Comment) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
