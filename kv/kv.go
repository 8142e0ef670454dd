package kv

import (
	"fmt"
)

//Store is a key-value store holding serialized text blobs
type Store interface {
	//GetItem returns the value stored at key. ok is false if key has never been set or was removed
	GetItem(key string) (value string, ok bool, err error)

	//SetItem stores value at key, replacing any existing value
	SetItem(key, value string) error

	//RemoveItem removes key from the store. Removing a missing key is not an error
	RemoveItem(key string) error

	//Close releases any resources held by the store
	Close() error
}

//Backend names accepted by Open
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

//Open returns the Store for the named backend. path is ignored for the memory backend
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendBolt:
		return NewBolt(path)
	case BackendSQLite:
		return NewSQLite(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, &Error{Description: fmt.Sprintf("Unknown backend %q", backend)}
	}
}

//Error represents a Store error
type Error struct {
	Err         error
	Description string
}

//Error fufills the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Description, e.Err.Error())
	}
	return e.Description
}

//Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}
