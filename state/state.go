// Package state persists actor geometry and widget state across runs in a
// bbolt database. Actors are keyed by their path from the HUD root, so a
// tree rebuilt with the same names restores into the same actors.
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/phanxgames/sprig"
)

const bucketActors = "actors"

// ErrNoState is returned by Restore when nothing was saved for an actor.
var ErrNoState = errors.New("no saved state")

// record is the stored form of one actor.
type record struct {
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
	Width   float64         `json:"w"`
	Height  float64         `json:"h"`
	Visible bool            `json:"visible"`
	Widget  json.RawMessage `json:"widget,omitempty"`
}

// Store saves and restores actor state.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("state: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketActors))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("state: initialize %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a and its savable descendants. Actors without a name, or with
// Savable unset, are skipped together with their subtrees; a itself must be
// savable.
func (s *Store) Save(a *sprig.Actor) error {
	if !a.Savable {
		return fmt.Errorf("state: save %q: %w", a.Path(), sprig.ErrNotSavable)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return saveTree(tx.Bucket([]byte(bucketActors)), a)
	})
}

func saveTree(b *bolt.Bucket, a *sprig.Actor) error {
	if !a.Savable || a.Name == "" {
		return nil
	}
	rec := record{X: a.X(), Y: a.Y(), Width: a.Width(), Height: a.Height(), Visible: a.Visible}
	if saver, ok := a.Widget().(sprig.StateSaver); ok {
		data, err := saver.SaveState()
		if err != nil {
			return fmt.Errorf("state: save %q: %w", a.Path(), err)
		}
		rec.Widget = data
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("state: save %q: %w", a.Path(), err)
	}
	if err := b.Put([]byte(a.Path()), data); err != nil {
		return fmt.Errorf("state: save %q: %w", a.Path(), err)
	}
	for _, c := range a.Children() {
		if err := saveTree(b, c); err != nil {
			return err
		}
	}
	return nil
}

// Restore applies saved state to a and its savable descendants. Returns an
// error wrapping ErrNoState if nothing was saved for a itself; descendants
// without saved state are left alone.
func (s *Store) Restore(a *sprig.Actor) error {
	if !a.Savable {
		return fmt.Errorf("state: restore %q: %w", a.Path(), sprig.ErrNotSavable)
	}
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketActors))
		if b.Get([]byte(a.Path())) == nil {
			return fmt.Errorf("state: restore %q: %w", a.Path(), ErrNoState)
		}
		return restoreTree(b, a)
	})
}

func restoreTree(b *bolt.Bucket, a *sprig.Actor) error {
	if !a.Savable || a.Name == "" {
		return nil
	}
	if data := b.Get([]byte(a.Path())); data != nil {
		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("state: restore %q: %w", a.Path(), err)
		}
		a.SetBounds(rec.X, rec.Y, rec.Width, rec.Height)
		a.Visible = rec.Visible
		if saver, ok := a.Widget().(sprig.StateSaver); ok && len(rec.Widget) > 0 {
			if err := saver.RestoreState(rec.Widget); err != nil {
				return fmt.Errorf("state: restore %q: %w", a.Path(), err)
			}
		}
	}
	for _, c := range a.Children() {
		if err := restoreTree(b, c); err != nil {
			return err
		}
	}
	return nil
}

// Forget deletes the saved state of a and every actor below it.
func (s *Store) Forget(a *sprig.Actor) error {
	prefix := a.Path()
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketActors))
		var keys [][]byte
		c := b.Cursor()
		for k, _ := c.Seek([]byte(prefix)); k != nil && bytes.HasPrefix(k, []byte(prefix)); k, _ = c.Next() {
			if hasPathPrefix(string(k), prefix) {
				keys = append(keys, append([]byte(nil), k...))
			}
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func hasPathPrefix(path, prefix string) bool {
	if len(path) < len(prefix) || path[:len(prefix)] != prefix {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
