package repositories_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/app/models"
	"postboard/app/repositories"
	"postboard/app/repositories/mock"
)

type storeFactory func(t *testing.T) repositories.Store

func stores() map[string]storeFactory {
	return map[string]storeFactory{
		"badger": func(t *testing.T) repositories.Store {
			s, err := repositories.OpenBadger(repositories.BadgerOptions{InMemory: true})
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) repositories.Store {
			s, err := repositories.OpenSQLite(filepath.Join(t.TempDir(), "test.db"), nil)
			require.NoError(t, err)
			return s
		},
		"mock": func(t *testing.T) repositories.Store {
			return mock.NewStore()
		},
	}
}

func fakeUser() *models.User {
	return &models.User{
		Name:     gofakeit.FirstName(),
		Surname:  gofakeit.LastName(),
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	}
}

func TestStores(t *testing.T) {
	for name, open := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)
			t.Cleanup(func() { store.Close() })

			var alice, bob *models.User
			t.Run("create users", func(t *testing.T) {
				alice, bob = fakeUser(), fakeUser()
				err := store.Update(ctx, func(tx repositories.Tx) error {
					if err := tx.Users().Create(alice); err != nil {
						return err
					}
					return tx.Users().Create(bob)
				})
				require.NoError(t, err)
				assert.Equal(t, int64(1), alice.ID)
				assert.Equal(t, int64(2), bob.ID)
				assert.False(t, alice.CreatedAt.IsZero())
			})

			t.Run("duplicate email", func(t *testing.T) {
				dup := fakeUser()
				dup.Email = alice.Email
				err := store.Update(ctx, func(tx repositories.Tx) error {
					return tx.Users().Create(dup)
				})
				assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
				assert.ErrorIs(t, err, repositories.ErrConflict)
			})

			t.Run("lookup", func(t *testing.T) {
				err := store.View(ctx, func(tx repositories.Tx) error {
					got, err := tx.Users().GetByEmail(bob.Email)
					require.NoError(t, err)
					assert.Equal(t, bob.ID, got.ID)

					_, err = tx.Users().GetByID(99)
					assert.ErrorIs(t, err, repositories.ErrNotFound)
					_, err = tx.Users().GetByEmail("nobody@example.com")
					assert.ErrorIs(t, err, repositories.ErrNotFound)

					users, err := tx.Users().List()
					require.NoError(t, err)
					require.Len(t, users, 2)
					assert.Equal(t, alice.ID, users[0].ID)
					return nil
				})
				require.NoError(t, err)
			})

			t.Run("update user moves email", func(t *testing.T) {
				newEmail := "renamed." + alice.Email
				err := store.Update(ctx, func(tx repositories.Tx) error {
					u, err := tx.Users().GetByID(alice.ID)
					require.NoError(t, err)
					u.Email = newEmail
					u.Name = "Renamed"
					return tx.Users().Update(u)
				})
				require.NoError(t, err)

				err = store.View(ctx, func(tx repositories.Tx) error {
					got, err := tx.Users().GetByEmail(newEmail)
					require.NoError(t, err)
					assert.Equal(t, "Renamed", got.Name)
					_, err = tx.Users().GetByEmail(alice.Email)
					assert.ErrorIs(t, err, repositories.ErrNotFound)
					return nil
				})
				require.NoError(t, err)
				alice.Email = newEmail

				err = store.Update(ctx, func(tx repositories.Tx) error {
					u, err := tx.Users().GetByID(bob.ID)
					require.NoError(t, err)
					u.Email = alice.Email
					return tx.Users().Update(u)
				})
				assert.ErrorIs(t, err, repositories.ErrConflict)

				err = store.Update(ctx, func(tx repositories.Tx) error {
					return tx.Users().Update(&models.User{ID: 77, Email: "x@y.io"})
				})
				assert.ErrorIs(t, err, repositories.ErrNotFound)
			})

			var post1, post2 *models.Post
			t.Run("posts", func(t *testing.T) {
				post1 = &models.Post{Content: "", UserID: alice.ID}
				post2 = &models.Post{Content: gofakeit.Sentence(8), UserID: bob.ID}
				err := store.Update(ctx, func(tx repositories.Tx) error {
					if err := tx.Posts().Create(post1); err != nil {
						return err
					}
					return tx.Posts().Create(post2)
				})
				require.NoError(t, err)

				err = store.Update(ctx, func(tx repositories.Tx) error {
					p, err := tx.Posts().GetByID(post1.ID)
					require.NoError(t, err)
					p.Content = "edited"
					p.UserID = bob.ID
					return tx.Posts().Update(p)
				})
				require.NoError(t, err)

				err = store.View(ctx, func(tx repositories.Tx) error {
					p, err := tx.Posts().GetByID(post1.ID)
					require.NoError(t, err)
					assert.Equal(t, "edited", p.Content)
					assert.Equal(t, alice.ID, p.UserID, "owner is immutable")

					mine, err := tx.Posts().ListByUser(alice.ID)
					require.NoError(t, err)
					require.Len(t, mine, 1)
					assert.Equal(t, post1.ID, mine[0].ID)

					all, err := tx.Posts().List()
					require.NoError(t, err)
					assert.Len(t, all, 2)
					return nil
				})
				require.NoError(t, err)
			})

			t.Run("comments", func(t *testing.T) {
				err := store.Update(ctx, func(tx repositories.Tx) error {
					for _, c := range []*models.Comment{
						{Content: "a", PostID: post1.ID, UserID: alice.ID},
						{Content: "b", PostID: post1.ID, UserID: bob.ID},
						{Content: "c", PostID: post2.ID, UserID: alice.ID},
					} {
						if err := tx.Comments().Create(c); err != nil {
							return err
						}
					}
					return nil
				})
				require.NoError(t, err)

				err = store.Update(ctx, func(tx repositories.Tx) error {
					onPost1, err := tx.Comments().ListByPost(post1.ID)
					require.NoError(t, err)
					assert.Len(t, onPost1, 2)

					n, err := tx.Comments().DeleteByUser(alice.ID)
					require.NoError(t, err)
					assert.Equal(t, 2, n)

					left, err := tx.Comments().List()
					require.NoError(t, err)
					require.Len(t, left, 1)
					assert.Equal(t, "b", left[0].Content)

					n, err = tx.Comments().DeleteByPost(post1.ID)
					require.NoError(t, err)
					assert.Equal(t, 1, n)

					assert.ErrorIs(t, tx.Comments().Delete(left[0].ID), repositories.ErrNotFound)
					return nil
				})
				require.NoError(t, err)
			})

			t.Run("failed transaction rolls back", func(t *testing.T) {
				boom := errors.New("boom")
				err := store.Update(ctx, func(tx repositories.Tx) error {
					if err := tx.Posts().Delete(post2.ID); err != nil {
						return err
					}
					return boom
				})
				assert.ErrorIs(t, err, boom)

				err = store.View(ctx, func(tx repositories.Tx) error {
					_, err := tx.Posts().GetByID(post2.ID)
					return err
				})
				assert.NoError(t, err)
			})

			t.Run("ids are not reused", func(t *testing.T) {
				var next models.Post
				err := store.Update(ctx, func(tx repositories.Tx) error {
					if err := tx.Posts().Delete(post2.ID); err != nil {
						return err
					}
					next = models.Post{Content: "again", UserID: bob.ID}
					return tx.Posts().Create(&next)
				})
				require.NoError(t, err)
				assert.Greater(t, next.ID, post2.ID)
			})

			t.Run("cancelled context", func(t *testing.T) {
				cctx, cancel := context.WithCancel(ctx)
				cancel()
				err := store.View(cctx, func(tx repositories.Tx) error {
					_, err := tx.Users().List()
					return err
				})
				assert.Error(t, err)
			})
		})
	}
}
