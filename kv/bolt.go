package kv

import (
	"fmt"

	"github.com/boltdb/bolt"
)

var itemsBucket = []byte("items")

type boltStore struct {
	*bolt.DB
}

//NewBolt returns a Store backed by the bolt database at the given file path
func NewBolt(path string) (Store, error) {
	db, err := bolt.Open(path, 0644, nil)
	if err != nil {
		return nil, &Error{Err: err, Description: fmt.Sprintf("Couldn't open bolt database %s", path)}
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(itemsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, &Error{Err: err, Description: "Couldn't create items Bucket"}
	}

	return &boltStore{db}, nil
}

func (s *boltStore) GetItem(key string) (value string, ok bool, err error) {
	tx, err := s.Begin(false)
	if err != nil {
		return "", false, &Error{Err: err, Description: "Couldn't start transaction"}
	}
	defer func() {
		lErr := tx.Rollback()
		if err == nil && lErr != nil {
			err = &Error{Err: lErr, Description: "Couldn't end transaction"}
		}
	}()

	b := tx.Bucket(itemsBucket)
	if b == nil {
		return "", false, &Error{Description: "Database items Bucket was nil"}
	}

	//the slice is only valid for the life of the transaction; string() copies it
	data := b.Get([]byte(key))
	if data == nil {
		return "", false, nil
	}

	return string(data), true, nil
}

func (s *boltStore) update(f func(b *bolt.Bucket) error) (err error) {
	tx, err := s.Begin(true)
	if err != nil {
		return &Error{Err: err, Description: "Couldn't start transaction"}
	}
	defer func() {
		if err != nil {
			lErr := tx.Rollback()
			if lErr != nil {
				err = &Error{Err: lErr, Description: fmt.Sprintf("Couldn't rollback transaction; error causing rollback: %s", err)}
			}
			return
		}
		lErr := tx.Commit()
		if lErr != nil {
			err = &Error{Err: lErr, Description: "Couldn't commit transaction"}
		}
	}()

	b := tx.Bucket(itemsBucket)
	if b == nil {
		return &Error{Description: "Database items Bucket was nil"}
	}

	return f(b)
}

func (s *boltStore) SetItem(key, value string) error {
	return s.update(func(b *bolt.Bucket) error {
		if err := b.Put([]byte(key), []byte(value)); err != nil {
			return &Error{Err: err, Description: fmt.Sprintf("Couldn't write item(%s)", key)}
		}
		return nil
	})
}

func (s *boltStore) RemoveItem(key string) error {
	return s.update(func(b *bolt.Bucket) error {
		if err := b.Delete([]byte(key)); err != nil {
			return &Error{Err: err, Description: fmt.Sprintf("Couldn't remove item(%s)", key)}
		}
		return nil
	})
}
