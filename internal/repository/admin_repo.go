package repository

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/HassanAli010/UserPref-CRS/internal/models"
)

var ErrAdminExists = errors.New("admin account already exists")

// AdminRepository stores the admin accounts document {"admin": [...]}.
// Capacity is one record, enforced by policy in CreateAdmin, not by schema.
type AdminRepository interface {
	GetAdmin() (*models.Admin, error)
	CreateAdmin(admin *models.Admin) error
}

type jsonAdminRepo struct {
	path string
	mu   sync.Mutex
}

func NewJSONAdminRepository(path string) (AdminRepository, error) {
	repo := &jsonAdminRepo{path: path}
	if err := repo.initFile(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *jsonAdminRepo) initFile() error {
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
		return fmt.Errorf("stat admin store: %w", err)
	}

	return r.save(&models.AdminFile{Admin: []*models.Admin{}})
}

func (r *jsonAdminRepo) load() (*models.AdminFile, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return &models.AdminFile{Admin: []*models.Admin{}}, nil
	}
	if err != nil {
		return &models.AdminFile{Admin: []*models.Admin{}}, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}

	var file models.AdminFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("⚠️ admin store %s is malformed: %v", r.path, err)
		return &models.AdminFile{Admin: []*models.Admin{}}, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if file.Admin == nil {
		file.Admin = []*models.Admin{}
	}

	return &file, nil
}

func (r *jsonAdminRepo) save(file *models.AdminFile) error {
	data, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal admin store: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write admin store: %w", err)
	}
	return nil
}

// GetAdmin returns nil, nil when no admin account exists yet.
func (r *jsonAdminRepo) GetAdmin() (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if errors.Is(err, ErrCorruptStore) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(file.Admin) == 0 {
		return nil, nil
	}
	return file.Admin[0], nil
}

func (r *jsonAdminRepo) CreateAdmin(admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if err != nil {
		return err
	}
	if len(file.Admin) > 0 {
		return ErrAdminExists
	}

	file.Admin = append(file.Admin, admin)
	return r.save(file)
}
