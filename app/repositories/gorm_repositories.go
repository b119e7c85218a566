package repositories

import (
	"postboard/app/models"

	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository on a gorm transaction.
type GormUserRepository struct {
	db *gorm.DB
}

func (r *GormUserRepository) Create(user *models.User) error {
	user.ID = 0
	return translate(r.db.Create(user).Error)
}

func (r *GormUserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormUserRepository) List() ([]models.User, error) {
	users := make([]models.User, 0)
	err := r.db.Order("id").Find(&users).Error
	return users, translate(err)
}

func (r *GormUserRepository) Update(user *models.User) error {
	res := r.db.Model(user).Select("name", "surname", "email", "password", "updated_at").Updates(user)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormUserRepository) Delete(id int64) error {
	return deleteByID[models.User](r.db, id)
}

func deleteByID[T any](db *gorm.DB, id int64) error {
	res := db.Delete(new(T), id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GormPostRepository implements PostRepository on a gorm transaction.
type GormPostRepository struct {
	db *gorm.DB
}

func (r *GormPostRepository) Create(post *models.Post) error {
	post.ID = 0
	return translate(r.db.Omit("User").Create(post).Error)
}

func (r *GormPostRepository) GetByID(id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *GormPostRepository) List() ([]models.Post, error) {
	posts := make([]models.Post, 0)
	err := r.db.Order("id").Find(&posts).Error
	return posts, translate(err)
}

func (r *GormPostRepository) ListByUser(userID int64) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&posts).Error
	return posts, translate(err)
}

// Update only touches content; the owner column is never written.
func (r *GormPostRepository) Update(post *models.Post) error {
	res := r.db.Model(post).Select("content", "updated_at").Updates(post)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormPostRepository) Delete(id int64) error {
	return deleteByID[models.Post](r.db, id)
}

// GormCommentRepository implements CommentRepository on a gorm transaction.
type GormCommentRepository struct {
	db *gorm.DB
}

func (r *GormCommentRepository) Create(comment *models.Comment) error {
	comment.ID = 0
	return translate(r.db.Omit("Post", "User").Create(comment).Error)
}

func (r *GormCommentRepository) GetByID(id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *GormCommentRepository) List() ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	err := r.db.Order("id").Find(&comments).Error
	return comments, translate(err)
}

func (r *GormCommentRepository) ListByPost(postID int64) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	err := r.db.Where("post_id = ?", postID).Order("id").Find(&comments).Error
	return comments, translate(err)
}

func (r *GormCommentRepository) Delete(id int64) error {
	return deleteByID[models.Comment](r.db, id)
}

func (r *GormCommentRepository) DeleteByPost(postID int64) (int, error) {
	res := r.db.Where("post_id = ?", postID).Delete(&models.Comment{})
	return int(res.RowsAffected), translate(res.Error)
}

func (r *GormCommentRepository) DeleteByUser(userID int64) (int, error) {
	res := r.db.Where("user_id = ?", userID).Delete(&models.Comment{})
	return int(res.RowsAffected), translate(res.Error)
}
