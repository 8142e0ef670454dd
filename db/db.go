package db

import (
	"fmt"
	"sync"
	"time"

	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/kv"
)

//DB is the sports meet database. It reads and writes the whole Document as a single item of a kv.Store
type DB struct {
	store kv.Store
	mu    *sync.Mutex
	now   func() time.Time
}

//New returns a new DB over the given store
func New(store kv.Store) *DB {
	return &DB{
		store: store,
		mu:    new(sync.Mutex),
		now:   time.Now,
	}
}

//Load returns the stored Document. If no Document has been stored, the Seed Document is stored and returned
func (db *DB) Load() (*Document, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.load()
}

//Save replaces the stored Document with d. The replaced Document is kept as a Revision
func (db *DB) Save(d *Document) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.save(d)
}

//Reset erases the stored Document. The next Load will store the Seed Document again.
//Revisions are kept
func (db *DB) Reset() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.store.RemoveItem(DocumentKey); err != nil {
		return &Error{Err: err, Description: "Couldn't remove Document"}
	}
	if err := db.store.RemoveItem(lastModifiedKey); err != nil {
		return &Error{Err: err, Description: "Couldn't remove Document last_modified"}
	}
	return nil
}

//Update loads the Document, calls f with it and saves the changes f made.
//If f returns an error, nothing is saved and the error is returned as is.
//No other Load, Save, Update or View runs while f is running
func (db *DB) Update(f func(d *Document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	d, err := db.load()
	if err != nil {
		return err
	}

	if err = f(d); err != nil {
		return err
	}

	return db.save(d)
}

//View loads the Document and calls f with it. Changes f makes are not saved
func (db *DB) View(f func(d *Document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	d, err := db.load()
	if err != nil {
		return err
	}

	return f(d)
}

func (db *DB) load() (*Document, error) {
	data, ok, err := db.store.GetItem(DocumentKey)
	if err != nil {
		return nil, &Error{Err: err, Description: "Couldn't read Document"}
	}

	if !ok {
		d := Seed()
		if err = db.save(d); err != nil {
			return nil, &Error{Err: err, Description: "Couldn't store seed Document"}
		}
		return d, nil
	}

	return decodeDocument(data)
}

func (db *DB) save(d *Document) error {
	if d == nil {
		return &Error{Description: "Document was nil"}
	}

	data, err := encodeDocument(d)
	if err != nil {
		return err
	}

	if err = db.writeRevision(); err != nil {
		return &Error{Err: err, Description: "Couldn't write Revision"}
	}

	if err = db.store.SetItem(DocumentKey, data); err != nil {
		return &Error{Err: err, Description: "Couldn't write Document"}
	}

	t := encodeTime(db.now())
	if err = db.store.SetItem(lastModifiedKey, t); err != nil {
		return &Error{Err: err, Description: fmt.Sprintf("Couldn't write Document last_modified(%s)", t)}
	}

	return nil
}

//latestRevision returns the id of the newest Revision, or -1 if there are none
func (db *DB) latestRevision() (int32, error) {
	data, ok, err := db.store.GetItem(currentRevisionKey)
	if err != nil {
		return 0, &Error{Err: err, Description: "Couldn't read current_revision"}
	}
	if !ok {
		return -1, nil
	}
	return decodeInt(data)
}

//writeRevision stores the current Document, if any, as a new Revision
func (db *DB) writeRevision() error {
	data, ok, err := db.store.GetItem(DocumentKey)
	if err != nil {
		return &Error{Err: err, Description: "Couldn't read Document"}
	}
	if !ok {
		return nil
	}

	old, err := decodeDocument(data)
	if err != nil {
		return err
	}

	//documents written by other clients carry no last_modified; the zero time is kept for those
	var lastModified time.Time
	lm, ok, err := db.store.GetItem(lastModifiedKey)
	if err != nil {
		return &Error{Err: err, Description: "Couldn't read Document last_modified"}
	}
	if ok {
		if lastModified, err = decodeTime(lm); err != nil {
			return err
		}
	}

	last, err := db.latestRevision()
	if err != nil {
		return err
	}

	rev := &Revision{ID: last + 1, Timestamp: lastModified, Document: old}
	revData, err := encodeRevision(rev)
	if err != nil {
		return err
	}

	if err = db.store.SetItem(revisionKey(rev.ID), revData); err != nil {
		return &Error{Err: err, Description: fmt.Sprintf("Couldn't write Revision(%d)", rev.ID)}
	}

	if err = db.store.SetItem(currentRevisionKey, encodeInt(rev.ID)); err != nil {
		return &Error{Err: err, Description: fmt.Sprintf("Couldn't write current_revision(%d)", rev.ID)}
	}

	return nil
}

//Revisions returns all stored Revisions, oldest first. Document will be nil
func (db *DB) Revisions() ([]*Revision, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	last, err := db.latestRevision()
	if err != nil {
		return nil, &Error{Err: err, Description: "Couldn't get latest Revision"}
	}

	revisions := make([]*Revision, 0, last+1)

	for i := int32(0); i <= last; i++ {
		rev, err := db.readRevision(i)
		if err != nil {
			return nil, err
		}
		if rev == nil {
			return nil, &Error{Description: fmt.Sprintf("Couldn't get Revision(%d)", i)}
		}

		rev.Document = nil
		revisions = append(revisions, rev)
	}

	return revisions, nil
}

//ReadRevision returns the Revision with the given id, or nil if it doesn't exist
func (db *DB) ReadRevision(id int32) (*Revision, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.readRevision(id)
}

func (db *DB) readRevision(id int32) (*Revision, error) {
	data, ok, err := db.store.GetItem(revisionKey(id))
	if err != nil {
		return nil, &Error{Err: err, Description: fmt.Sprintf("Couldn't read Revision(%d)", id)}
	}
	if !ok {
		return nil, nil
	}

	rev, err := decodeRevision(data)
	if err != nil {
		return nil, &Error{Err: err, Description: fmt.Sprintf("Couldn't read Revision(%d)", id)}
	}

	return rev, nil
}
