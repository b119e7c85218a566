package repositories

import (
	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository inside one badger transaction.
// Emails are kept unique through an email -> id index key.
type BadgerUserRepository struct {
	txn *badger.Txn
	seq *badger.Sequence
}

func emailKey(email string) []byte {
	return []byte(UserEmailIndexPrefix + email)
}

// Create assigns the next user id and stores the user.
func (r *BadgerUserRepository) Create(user *models.User) error {
	taken, err := exists(r.txn, emailKey(user.Email))
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}

	id, err := nextID(r.seq)
	if err != nil {
		return err
	}
	user.ID = id
	user.Touch(now())

	if err := putEntity(r.txn, entityKey(UserKeyPrefix, id), user); err != nil {
		return err
	}
	return r.txn.Set(emailKey(user.Email), encodeID(id))
}

func (r *BadgerUserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	if err := getEntity(r.txn, entityKey(UserKeyPrefix, id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail resolves the email index, then loads the user.
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	item, err := r.txn.Get(emailKey(email))
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var id int64
	if err := item.Value(func(val []byte) error {
		id, err = decodeID(val)
		return err
	}); err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func (r *BadgerUserRepository) List() ([]models.User, error) {
	return scanEntities[models.User](r.txn, []byte(UserKeyPrefix))
}

// Update replaces a stored user, moving the email index when the email changes.
func (r *BadgerUserRepository) Update(user *models.User) error {
	current, err := r.GetByID(user.ID)
	if err != nil {
		return err
	}

	if current.Email != user.Email {
		taken, err := exists(r.txn, emailKey(user.Email))
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateEmail
		}
		if err := r.txn.Delete(emailKey(current.Email)); err != nil {
			return err
		}
		if err := r.txn.Set(emailKey(user.Email), encodeID(user.ID)); err != nil {
			return err
		}
	}

	user.CreatedAt = current.CreatedAt
	user.Touch(now())
	return putEntity(r.txn, entityKey(UserKeyPrefix, user.ID), user)
}

// Delete removes the user record and its email index. Owned rows are the
// caller's concern.
func (r *BadgerUserRepository) Delete(id int64) error {
	user, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if err := r.txn.Delete(emailKey(user.Email)); err != nil {
		return err
	}
	return r.txn.Delete(entityKey(UserKeyPrefix, id))
}
