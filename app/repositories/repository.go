package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// now is swapped in tests that pin timestamps.
var now = func() time.Time { return time.Now().UTC() }

// BadgerStore is the embedded Store backed by BadgerDB.
type BadgerStore struct {
	db   *badger.DB
	seqs sequences
}

// sequences hands out ids outside of request transactions, so concurrent
// creates never conflict on a shared counter key.
type sequences struct {
	users, posts, comments *badger.Sequence
}

// BadgerOptions selects where the badger files live.
type BadgerOptions struct {
	Path     string
	InMemory bool
	Logger   *slog.Logger
}

// OpenBadger opens (or creates) a badger database and wraps it in a Store.
func OpenBadger(o BadgerOptions) (*BadgerStore, error) {
	db, err := OpenBadgerDB(o)
	if err != nil {
		return nil, err
	}
	store, err := NewBadgerStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// OpenBadgerDB opens the raw database without leasing id sequences. Backup and
// restore use it so a lease cannot shadow the sequence values being loaded.
func OpenBadgerDB(o BadgerOptions) (*badger.DB, error) {
	opts := badger.DefaultOptions(o.Path)
	if o.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithNumVersionsToKeep(1).WithLogger(nil)
	if o.Logger != nil {
		opts = opts.WithLogger(badgerLogger{o.Logger})
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %q: %w", o.Path, err)
	}
	return db, nil
}

// NewBadgerStore wraps an already open database and leases its id sequences.
func NewBadgerStore(db *badger.DB) (*BadgerStore, error) {
	s := &BadgerStore{db: db}
	for _, seq := range []struct {
		key string
		dst **badger.Sequence
	}{
		{UserSeqKey, &s.seqs.users},
		{PostSeqKey, &s.seqs.posts},
		{CommentSeqKey, &s.seqs.comments},
	} {
		got, err := db.GetSequence([]byte(seq.key), sequenceBandwidth)
		if err != nil {
			s.releaseSequences()
			return nil, fmt.Errorf("leasing %s: %w", seq.key, err)
		}
		*seq.dst = got
	}
	return s, nil
}

// DB exposes the underlying database.
func (s *BadgerStore) DB() *badger.DB {
	return s.db
}

// Close returns unused leased ids to disk and closes the database.
func (s *BadgerStore) Close() error {
	return errors.Join(s.releaseSequences(), s.db.Close())
}

func (s *BadgerStore) releaseSequences() error {
	var errs []error
	for _, seq := range []*badger.Sequence{s.seqs.users, s.seqs.posts, s.seqs.comments} {
		if seq != nil {
			errs = append(errs, seq.Release())
		}
	}
	return errors.Join(errs...)
}

// Clear drops every key. Leased sequences keep counting, so ids are not reused.
func (s *BadgerStore) Clear() error {
	return s.db.DropAll()
}

func (s *BadgerStore) View(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		return fn(badgerTx{txn: txn, seqs: &s.seqs})
	})
}

func (s *BadgerStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return fn(badgerTx{txn: txn, seqs: &s.seqs})
	})
	if errors.Is(err, badger.ErrConflict) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

type badgerTx struct {
	txn  *badger.Txn
	seqs *sequences
}

func (t badgerTx) Users() UserRepository { return &BadgerUserRepository{txn: t.txn, seq: t.seqs.users} }
func (t badgerTx) Posts() PostRepository { return &BadgerPostRepository{txn: t.txn, seq: t.seqs.posts} }
func (t badgerTx) Comments() CommentRepository {
	return &BadgerCommentRepository{txn: t.txn, seq: t.seqs.comments}
}

// badgerLogger routes badger's internal logging into slog.
type badgerLogger struct {
	log *slog.Logger
}

func (l badgerLogger) Errorf(f string, v ...any) {
	l.log.Error(fmt.Sprintf(f, v...), "component", "badger")
}

func (l badgerLogger) Warningf(f string, v ...any) {
	l.log.Warn(fmt.Sprintf(f, v...), "component", "badger")
}

func (l badgerLogger) Infof(f string, v ...any) {
	l.log.Debug(fmt.Sprintf(f, v...), "component", "badger")
}

func (l badgerLogger) Debugf(f string, v ...any) {
	l.log.Debug(fmt.Sprintf(f, v...), "component", "badger")
}
