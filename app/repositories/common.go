package repositories

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	UserKeyPrefix    = "user:"
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"

	// Secondary indexes
	UserEmailIndexPrefix   = "idx:user:email:"
	PostUserIndexPrefix    = "idx:post:user:"
	CommentPostIndexPrefix = "idx:comment:post:"
	CommentUserIndexPrefix = "idx:comment:user:"

	// Sequence keys for auto-incrementing IDs, leased through badger.Sequence
	UserSeqKey    = "seq:user"
	PostSeqKey    = "seq:post"
	CommentSeqKey = "seq:comment"
)

// Ids are zero padded so key order matches numeric order.
func entityKey(prefix string, id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefix, id))
}

func indexPrefix(prefix string, ownerID int64) []byte {
	return []byte(fmt.Sprintf("%s%020d:", prefix, ownerID))
}

func indexKey(prefix string, ownerID, id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d:%020d", prefix, ownerID, id))
}

// indexedID returns the trailing id of an owner index key.
func indexedID(key []byte, prefixLen int) (int64, error) {
	return strconv.ParseInt(string(key[prefixLen:]), 10, 64)
}

// sequenceBandwidth is how many ids a sequence leases from disk at a time.
const sequenceBandwidth = 100

// nextID takes the next id from a badger sequence. The sequence key stores how
// many ids have been handed out, so ids start at 1 and are never reused.
func nextID(seq *badger.Sequence) (int64, error) {
	n, err := seq.Next()
	if err != nil {
		return 0, err
	}
	return int64(n) + 1, nil
}

func encodeID(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func decodeID(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("bad id value of %d bytes", len(b))
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity any) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity any) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// getEntity loads the value at key into entity, returning ErrNotFound when absent.
func getEntity(txn *badger.Txn, key []byte, entity any) error {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}

func putEntity(txn *badger.Txn, key []byte, entity any) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// scanKeys collects keys under prefix. Read-write transactions allow only one
// open iterator, so callers act on the keys after the iterator is closed.
func scanKeys(txn *badger.Txn, prefix []byte) [][]byte {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys
}

// scanEntities decodes every value under prefix, in key order.
func scanEntities[T any](txn *badger.Txn, prefix []byte) ([]T, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	out := make([]T, 0)
	for it.Rewind(); it.Valid(); it.Next() {
		var v T
		if err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &v)
		}); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// indexedIDs returns the ids listed under an owner index.
func indexedIDs(txn *badger.Txn, prefix string, ownerID int64) ([]int64, error) {
	p := indexPrefix(prefix, ownerID)
	keys := scanKeys(txn, p)
	ids := make([]int64, 0, len(keys))
	for _, k := range keys {
		id, err := indexedID(k, len(p))
		if err != nil {
			return nil, fmt.Errorf("bad index key %q: %w", k, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
