package repository

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/HassanAli010/UserPref-CRS/internal/models"
)

const userKeyPrefix = "user:"

// badgerUserRepo is the embedded key-value backend for the user history
// store: one key per user, one transaction per mutation. Unlike the JSON
// document it does not rewrite unrelated users on a mutation, which removes
// the whole-file lost-update race.
//
// Load order for this backend is the lexicographic key order Badger iterates
// in, which is stable across calls.
type badgerUserRepo struct {
	db *badger.DB
}

func NewBadgerUserRepository(db *badger.DB) UserRepository {
	return &badgerUserRepo{db: db}
}

func userKey(username string) []byte {
	return []byte(userKeyPrefix + username)
}

func decodeUser(val []byte) (*models.User, error) {
	var user models.User
	if err := json.Unmarshal(val, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if user.History == nil {
		user.History = []string{}
	}
	return &user, nil
}

func (r *badgerUserRepo) ListUsers() ([]*models.User, error) {
	users := []*models.User{}

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(userKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				user, err := decodeUser(val)
				if err != nil {
					// Skip the broken record, keep the store usable.
					return nil
				}
				users = append(users, user)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *badgerUserRepo) FindUserByUsername(username string) (*models.User, error) {
	var user *models.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, derr := decodeUser(val)
			if derr != nil {
				return derr
			}
			user = decoded
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *badgerUserRepo) CreateUser(user *models.User) error {
	if user.History == nil {
		user.History = []string{}
	}

	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(userKey(user.Username))
		if err == nil {
			return ErrUserExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		return txn.Set(userKey(user.Username), data)
	})
}

func (r *badgerUserRepo) DeleteUser(username string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(userKey(username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUnknownUser
		}
		if err != nil {
			return err
		}
		return txn.Delete(userKey(username))
	})
}

// updateUser applies fn to the stored record inside a single transaction.
func (r *badgerUserRepo) updateUser(username string, fn func(user *models.User) bool) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUnknownUser
		}
		if err != nil {
			return err
		}

		var user *models.User
		if err := item.Value(func(val []byte) error {
			decoded, derr := decodeUser(val)
			if derr != nil {
				return derr
			}
			user = decoded
			return nil
		}); err != nil {
			return err
		}

		if !fn(user) {
			return nil
		}

		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		return txn.Set(userKey(username), data)
	})
}

func (r *badgerUserRepo) AppendHistory(username, courseName string) error {
	return r.updateUser(username, func(user *models.User) bool {
		for _, course := range user.History {
			if course == courseName {
				return false
			}
		}
		user.History = append(user.History, courseName)
		return true
	})
}

func (r *badgerUserRepo) ClearHistory(username string) error {
	return r.updateUser(username, func(user *models.User) bool {
		user.History = []string{}
		return true
	})
}

func (r *badgerUserRepo) GetHistory(username string) ([]string, error) {
	user, err := r.FindUserByUsername(username)
	if err != nil || user == nil {
		return []string{}, nil
	}
	return user.History, nil
}

func (r *badgerUserRepo) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (r *badgerUserRepo) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
