package repository

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/HassanAli010/UserPref-CRS/internal/models"
)

var (
	ErrUnknownUser  = errors.New("unknown user")
	ErrUserExists   = errors.New("user already exists")
	ErrCorruptStore = errors.New("corrupt user store")
)

// UserRepository is the user history store. Both implementations (JSON file
// and BadgerDB) sit behind this interface; the backend is picked by config.
type UserRepository interface {
	ListUsers() ([]*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
	CreateUser(user *models.User) error
	DeleteUser(username string) error

	AppendHistory(username, courseName string) error
	ClearHistory(username string) error
	GetHistory(username string) ([]string, error)

	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error
}

// jsonUserRepo persists users as a single JSON document and rewrites it whole
// on every mutation. A mutex serializes the read-modify-persist sequence so
// concurrent requests cannot lose updates.
type jsonUserRepo struct {
	path string
	mu   sync.Mutex
}

func NewJSONUserRepository(path string) (UserRepository, error) {
	repo := &jsonUserRepo{path: path}
	if err := repo.initFile(); err != nil {
		return nil, err
	}
	return repo, nil
}

// initFile creates the backing document with an empty user list when it is
// absent or empty, matching the startup behavior of the previous version.
func (r *jsonUserRepo) initFile() error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	info, err := os.Stat(r.path)
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat users store: %w", err)
	}

	return r.save(&models.UsersFile{Users: []*models.User{}})
}

// load reads the whole document. A malformed document is reported as
// ErrCorruptStore together with an empty file so read paths can degrade to
// "no users" instead of failing the caller.
func (r *jsonUserRepo) load() (*models.UsersFile, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return &models.UsersFile{Users: []*models.User{}}, nil
	}
	if err != nil {
		return &models.UsersFile{Users: []*models.User{}}, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}

	var file models.UsersFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("⚠️ users store %s is malformed: %v", r.path, err)
		return &models.UsersFile{Users: []*models.User{}}, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if file.Users == nil {
		file.Users = []*models.User{}
	}

	return &file, nil
}

func (r *jsonUserRepo) save(file *models.UsersFile) error {
	data, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal users store: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write users store: %w", err)
	}
	return nil
}

func findUser(file *models.UsersFile, username string) *models.User {
	for _, user := range file.Users {
		if user.Username == username {
			return user
		}
	}
	return nil
}

func (r *jsonUserRepo) ListUsers() ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if errors.Is(err, ErrCorruptStore) {
		// Degrade to an empty store, the caller stays usable.
		return []*models.User{}, nil
	}
	if err != nil {
		return nil, err
	}
	return file.Users, nil
}

func (r *jsonUserRepo) FindUserByUsername(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if errors.Is(err, ErrCorruptStore) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return findUser(file, username), nil
}

func (r *jsonUserRepo) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if err != nil {
		// Never rewrite a malformed document from a mutation path.
		return err
	}
	if findUser(file, user.Username) != nil {
		return ErrUserExists
	}
	if user.History == nil {
		user.History = []string{}
	}

	file.Users = append(file.Users, user)
	return r.save(file)
}

func (r *jsonUserRepo) DeleteUser(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if err != nil {
		return err
	}

	kept := make([]*models.User, 0, len(file.Users))
	found := false
	for _, user := range file.Users {
		if user.Username == username {
			found = true
			continue
		}
		kept = append(kept, user)
	}
	if !found {
		return ErrUnknownUser
	}

	file.Users = kept
	return r.save(file)
}

// AppendHistory is idempotent: a course already present in the history leaves
// the document untouched, otherwise it is appended at the end and persisted
// immediately.
func (r *jsonUserRepo) AppendHistory(username, courseName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if err != nil {
		return err
	}

	user := findUser(file, username)
	if user == nil {
		return ErrUnknownUser
	}

	for _, course := range user.History {
		if course == courseName {
			return nil
		}
	}

	user.History = append(user.History, courseName)
	return r.save(file)
}

func (r *jsonUserRepo) ClearHistory(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if err != nil {
		return err
	}

	user := findUser(file, username)
	if user == nil {
		return ErrUnknownUser
	}

	user.History = []string{}
	return r.save(file)
}

// GetHistory returns an empty slice, not an error, when the user is unknown
// or has never interacted.
func (r *jsonUserRepo) GetHistory(username string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if err != nil {
		return []string{}, nil
	}

	user := findUser(file, username)
	if user == nil || user.History == nil {
		return []string{}, nil
	}
	return user.History, nil
}

func (r *jsonUserRepo) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (r *jsonUserRepo) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
