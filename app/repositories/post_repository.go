package repositories

import (
	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository inside one badger transaction.
type BadgerPostRepository struct {
	txn *badger.Txn
	seq *badger.Sequence
}

// Create creates a new post
func (r *BadgerPostRepository) Create(post *models.Post) error {
	id, err := nextID(r.seq)
	if err != nil {
		return err
	}
	post.ID = id
	post.Touch(now())

	if err := putEntity(r.txn, entityKey(PostKeyPrefix, id), post); err != nil {
		return err
	}
	return r.txn.Set(indexKey(PostUserIndexPrefix, post.UserID, id), nil)
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int64) (*models.Post, error) {
	var post models.Post
	if err := getEntity(r.txn, entityKey(PostKeyPrefix, id), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *BadgerPostRepository) List() ([]models.Post, error) {
	return scanEntities[models.Post](r.txn, []byte(PostKeyPrefix))
}

// ListByUser walks the user's post index.
func (r *BadgerPostRepository) ListByUser(userID int64) ([]models.Post, error) {
	ids, err := indexedIDs(r.txn, PostUserIndexPrefix, userID)
	if err != nil {
		return nil, err
	}
	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		post, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, nil
}

// Update rewrites post content. The owner stored at creation is kept.
func (r *BadgerPostRepository) Update(post *models.Post) error {
	current, err := r.GetByID(post.ID)
	if err != nil {
		return err
	}
	post.UserID = current.UserID
	post.CreatedAt = current.CreatedAt
	post.Touch(now())
	return putEntity(r.txn, entityKey(PostKeyPrefix, post.ID), post)
}

// Delete deletes a post by ID
func (r *BadgerPostRepository) Delete(id int64) error {
	post, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if err := r.txn.Delete(indexKey(PostUserIndexPrefix, post.UserID, id)); err != nil {
		return err
	}
	return r.txn.Delete(entityKey(PostKeyPrefix, id))
}
