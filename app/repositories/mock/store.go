package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"postboard/app/models"
	"postboard/app/repositories"
)

type state struct {
	users    map[int64]models.User
	posts    map[int64]models.Post
	comments map[int64]models.Comment
	seq      struct{ user, post, comment int64 }
}

func (s *state) clone() *state {
	c := &state{
		users:    make(map[int64]models.User, len(s.users)),
		posts:    make(map[int64]models.Post, len(s.posts)),
		comments: make(map[int64]models.Comment, len(s.comments)),
		seq:      s.seq,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.posts {
		c.posts[k] = v
	}
	for k, v := range s.comments {
		c.comments[k] = v
	}
	return c
}

// Store is an in-memory repositories.Store. Update works on a copy of the
// data that replaces the live copy only when fn succeeds.
type Store struct {
	mutex   sync.RWMutex
	data    *state
	failErr error
	Now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		data: &state{
			users:    make(map[int64]models.User),
			posts:    make(map[int64]models.Post),
			comments: make(map[int64]models.Comment),
		},
		Now: time.Now,
	}
}

// FailNextCommit makes the next Update run fn and then discard its writes,
// returning err.
func (m *Store) FailNextCommit(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.failErr = err
}

func (m *Store) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.data = NewStore().data
}

func (m *Store) Close() error { return nil }

func (m *Store) View(ctx context.Context, fn func(tx repositories.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return fn(&tx{s: m.data.clone(), now: m.Now})
}

func (m *Store) Update(ctx context.Context, fn func(tx repositories.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	work := m.data.clone()
	if err := fn(&tx{s: work, now: m.Now}); err != nil {
		return err
	}
	if m.failErr != nil {
		err := m.failErr
		m.failErr = nil
		return err
	}
	m.data = work
	return nil
}

type tx struct {
	s   *state
	now func() time.Time
}

func (t *tx) Users() repositories.UserRepository       { return &UserRepository{t} }
func (t *tx) Posts() repositories.PostRepository       { return &PostRepository{t} }
func (t *tx) Comments() repositories.CommentRepository { return &CommentRepository{t} }

func sortedValues[T any](m map[int64]T, keep func(T) bool) []T {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

type UserRepository struct{ t *tx }

func (r *UserRepository) Create(user *models.User) error {
	for _, u := range r.t.s.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	r.t.s.seq.user++
	user.ID = r.t.s.seq.user
	user.Touch(r.t.now())
	r.t.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	u, ok := r.t.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.t.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *UserRepository) List() ([]models.User, error) {
	return sortedValues(r.t.s.users, nil), nil
}

func (r *UserRepository) Update(user *models.User) error {
	current, ok := r.t.s.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	for id, u := range r.t.s.users {
		if id != user.ID && u.Email == user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	user.CreatedAt = current.CreatedAt
	user.Touch(r.t.now())
	r.t.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(id int64) error {
	if _, ok := r.t.s.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.t.s.users, id)
	return nil
}

type PostRepository struct{ t *tx }

func (r *PostRepository) Create(post *models.Post) error {
	r.t.s.seq.post++
	post.ID = r.t.s.seq.post
	post.Touch(r.t.now())
	r.t.s.posts[post.ID] = *post
	return nil
}

func (r *PostRepository) GetByID(id int64) (*models.Post, error) {
	p, ok := r.t.s.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r *PostRepository) List() ([]models.Post, error) {
	return sortedValues(r.t.s.posts, nil), nil
}

func (r *PostRepository) ListByUser(userID int64) ([]models.Post, error) {
	return sortedValues(r.t.s.posts, func(p models.Post) bool { return p.UserID == userID }), nil
}

func (r *PostRepository) Update(post *models.Post) error {
	current, ok := r.t.s.posts[post.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	post.UserID = current.UserID
	post.CreatedAt = current.CreatedAt
	post.Touch(r.t.now())
	r.t.s.posts[post.ID] = *post
	return nil
}

func (r *PostRepository) Delete(id int64) error {
	if _, ok := r.t.s.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.t.s.posts, id)
	return nil
}

type CommentRepository struct{ t *tx }

func (r *CommentRepository) Create(comment *models.Comment) error {
	r.t.s.seq.comment++
	comment.ID = r.t.s.seq.comment
	comment.Touch(r.t.now())
	r.t.s.comments[comment.ID] = *comment
	return nil
}

func (r *CommentRepository) GetByID(id int64) (*models.Comment, error) {
	c, ok := r.t.s.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r *CommentRepository) List() ([]models.Comment, error) {
	return sortedValues(r.t.s.comments, nil), nil
}

func (r *CommentRepository) ListByPost(postID int64) ([]models.Comment, error) {
	return sortedValues(r.t.s.comments, func(c models.Comment) bool { return c.PostID == postID }), nil
}

func (r *CommentRepository) Delete(id int64) error {
	if _, ok := r.t.s.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.t.s.comments, id)
	return nil
}

func (r *CommentRepository) deleteWhere(match func(models.Comment) bool) int {
	n := 0
	for id, c := range r.t.s.comments {
		if match(c) {
			delete(r.t.s.comments, id)
			n++
		}
	}
	return n
}

func (r *CommentRepository) DeleteByPost(postID int64) (int, error) {
	return r.deleteWhere(func(c models.Comment) bool { return c.PostID == postID }), nil
}

func (r *CommentRepository) DeleteByUser(userID int64) (int, error) {
	return r.deleteWhere(func(c models.Comment) bool { return c.UserID == userID }), nil
}
