package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/sefazor/taskflow-client/internal/models"
)

const (
	bktAuth = "auth"

	kaToken = "token"
	kaUser  = "user"
)

var ErrNoSession = errors.New("no stored session")

// SessionRepository persists the auth session in a local bbolt file, the
// client's equivalent of browser local storage. The file is only held open for
// the duration of one operation, so a running server and other commands can
// share it. bbolt allows one writer per file; the lock timeout bounds the wait.
type SessionRepository struct {
	path string
}

func OpenSessionRepository(path string) (*SessionRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	r := &SessionRepository{path: path}
	err := r.update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bktAuth))
		return err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SessionRepository) open(readOnly bool) (*bbolt.DB, error) {
	db, err := bbolt.Open(r.path, 0600, &bbolt.Options{Timeout: 1 * time.Second, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	return db, nil
}

func (r *SessionRepository) view(fn func(*bbolt.Tx) error) error {
	db, err := r.open(true)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.View(fn)
}

func (r *SessionRepository) update(fn func(*bbolt.Tx) error) error {
	db, err := r.open(false)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Update(fn)
}

func (r *SessionRepository) Get() (*models.Session, error) {
	var session models.Session
	err := r.view(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket([]byte(bktAuth))
		if bkt == nil {
			return bbolt.ErrBucketNotFound
		}

		token := bkt.Get([]byte(kaToken))
		if token == nil {
			return ErrNoSession
		}
		session.Token = string(token)

		if user := bkt.Get([]byte(kaUser)); user != nil {
			if err := json.Unmarshal(user, &session.User); err != nil {
				return fmt.Errorf("decode stored user: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Save(session *models.Session) error {
	user, err := json.Marshal(session.User)
	if err != nil {
		return err
	}

	return r.update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket([]byte(bktAuth))
		if bkt == nil {
			return bbolt.ErrBucketNotFound
		}
		if err := bkt.Put([]byte(kaToken), []byte(session.Token)); err != nil {
			return err
		}
		return bkt.Put([]byte(kaUser), user)
	})
}

func (r *SessionRepository) Delete() error {
	return r.update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket([]byte(bktAuth))
		if bkt == nil {
			return nil
		}
		if err := bkt.Delete([]byte(kaToken)); err != nil {
			return err
		}
		return bkt.Delete([]byte(kaUser))
	})
}
