package store

import (
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/ledger/errors"
	bolt "go.etcd.io/bbolt"
)

var boltBucket = []byte("ledger")

// BoltStore is a persistent KVStore backed by a single bbolt bucket.
// Every batch is committed within one bolt transaction, so it is either
// fully written or not at all.
type BoltStore struct {
	db *bolt.DB
}

var _ CacheableKVStore = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at given path.
// The parent directory is created if it does not exist.
func OpenBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %q: %s", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "create bucket: %s", err)
	}
	return &BoltStore{db: db}, nil
}

// Close releases the database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Get returns a copy of the value stored under given key or nil.
func (s *BoltStore) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// Value is valid only for the life of the transaction.
		if raw := tx.Bucket(boltBucket).Get(key); raw != nil {
			value = append([]byte{}, raw...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return value, nil
}

// Has returns true if a value is stored under given key.
func (s *BoltStore) Has(key []byte) (bool, error) {
	value, err := s.Get(key)
	return value != nil, err
}

// Set writes given value in its own transaction.
func (s *BoltStore) Set(key, value []byte) error {
	return s.apply([]Op{SetOp(key, value)})
}

// Delete removes given key in its own transaction.
func (s *BoltStore) Delete(key []byte) error {
	return s.apply([]Op{DelOp(key)})
}

// NewBatch returns a batch that writes all operations in a single bolt
// transaction.
func (s *BoltStore) NewBatch() Batch {
	return &boltBatch{store: s}
}

// CacheWrap returns a btree cache that is written to the database only
// when Write is called.
func (s *BoltStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

func (s *BoltStore) apply(ops []Op) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(boltBucket)
		for _, op := range ops {
			if op.IsSetOp() {
				if err := b.Put(op.Key(), op.Value()); err != nil {
					return err
				}
			} else if err := b.Delete(op.Key()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

type boltBatch struct {
	store *BoltStore
	ops   []Op
}

var _ Batch = (*boltBatch)(nil)

func (b *boltBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *boltBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

func (b *boltBatch) Write() error {
	if len(b.ops) == 0 {
		return nil
	}
	if err := b.store.apply(b.ops); err != nil {
		return err
	}
	b.ops = nil
	return nil
}

func (b *boltBatch) ShowOps() []Op {
	return b.ops
}
