// Package store connects to the data store and manages durable key-value
// records such as cached weights and counters
package store

import (
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"
)

const kvBucket = "kv"

var errAlreadyRunning = errors.New(
	"is bodie already running? Only one instance can use the database at a time",
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

var _ Store = (*Client)(nil)

func (c *Client) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(kvBucket)).Get([]byte(key))
		if b == nil {
			return nil
		}

		// b is only valid for the life of the transaction
		value, found = string(b), true

		return nil
	})

	return value, found, wrap("get", key, err)
}

func (c *Client) Set(key, value string) error {
	err := c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(kvBucket)).Put([]byte(key), []byte(value))
	})

	return wrap("set", key, err)
}

func (c *Client) RemoveMany(keys ...string) error {
	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(kvBucket))

		for _, k := range keys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}

		return nil
	})

	return wrap("remove", "", err)
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the bucket for storing data if it does not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(kvBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
