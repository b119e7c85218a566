package models

import "time"

// Post is written by exactly one user. The owner never changes after creation.
type Post struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Content   string    `json:"content" gorm:"size:512;not null"`
	UserID    int64     `json:"userId" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// User only declares the foreign key for relational stores.
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Touch sets the update timestamp, and the creation timestamp if unset.
func (p *Post) Touch(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// OwnedBy reports whether the post belongs to the given user.
func (p *Post) OwnedBy(userID int64) bool {
	return p.UserID == userID
}
