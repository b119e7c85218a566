package repositories

import (
	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository inside one badger
// transaction. Comments are indexed by post and by author.
type BadgerCommentRepository struct {
	txn *badger.Txn
	seq *badger.Sequence
}

// Create creates a new comment
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	id, err := nextID(r.seq)
	if err != nil {
		return err
	}
	comment.ID = id
	comment.Touch(now())

	if err := putEntity(r.txn, entityKey(CommentKeyPrefix, id), comment); err != nil {
		return err
	}
	if err := r.txn.Set(indexKey(CommentPostIndexPrefix, comment.PostID, id), nil); err != nil {
		return err
	}
	return r.txn.Set(indexKey(CommentUserIndexPrefix, comment.UserID, id), nil)
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := getEntity(r.txn, entityKey(CommentKeyPrefix, id), &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *BadgerCommentRepository) List() ([]models.Comment, error) {
	return scanEntities[models.Comment](r.txn, []byte(CommentKeyPrefix))
}

// ListByPost retrieves all comments for a post
func (r *BadgerCommentRepository) ListByPost(postID int64) ([]models.Comment, error) {
	ids, err := indexedIDs(r.txn, CommentPostIndexPrefix, postID)
	if err != nil {
		return nil, err
	}
	return r.load(ids)
}

func (r *BadgerCommentRepository) load(ids []int64) ([]models.Comment, error) {
	comments := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		c, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, nil
}

// Delete deletes a comment by ID along with its index entries
func (r *BadgerCommentRepository) Delete(id int64) error {
	c, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.remove(c)
}

func (r *BadgerCommentRepository) remove(c *models.Comment) error {
	if err := r.txn.Delete(indexKey(CommentPostIndexPrefix, c.PostID, c.ID)); err != nil {
		return err
	}
	if err := r.txn.Delete(indexKey(CommentUserIndexPrefix, c.UserID, c.ID)); err != nil {
		return err
	}
	return r.txn.Delete(entityKey(CommentKeyPrefix, c.ID))
}

func (r *BadgerCommentRepository) removeAll(ids []int64) (int, error) {
	comments, err := r.load(ids)
	if err != nil {
		return 0, err
	}
	for i := range comments {
		if err := r.remove(&comments[i]); err != nil {
			return 0, err
		}
	}
	return len(comments), nil
}

// DeleteByPost removes every comment on a post.
func (r *BadgerCommentRepository) DeleteByPost(postID int64) (int, error) {
	ids, err := indexedIDs(r.txn, CommentPostIndexPrefix, postID)
	if err != nil {
		return 0, err
	}
	return r.removeAll(ids)
}

// DeleteByUser removes every comment written by a user, on any post.
func (r *BadgerCommentRepository) DeleteByUser(userID int64) (int, error) {
	ids, err := indexedIDs(r.txn, CommentUserIndexPrefix, userID)
	if err != nil {
		return 0, err
	}
	return r.removeAll(ids)
}
