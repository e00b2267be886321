// Package novelists provides database operations for the novelist catalog.
package novelists

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/madr/internal/entities"
	"github.com/mrlokans/madr/internal/sanitize"
)

var (
	ErrAlreadyExists = errors.New("novelist already exists")
	ErrNotFound      = errors.New("novelist not found")
)

// DefaultListLimit is applied when a listing request does not set a limit.
const DefaultListLimit = 10

// Repository handles all novelist database operations. Names are normalized
// before storage and comparison, so two spellings of the same name collide.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new novelists repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a novelist under the normalized form of name.
func (r *Repository) Create(name string) (*entities.Novelist, error) {
	normalized := sanitize.Normalize(name)
	novelist := &entities.Novelist{Name: normalized}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.Novelist
		err := tx.Where("name = ?", normalized).First(&existing).Error
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing novelist: %w", err)
		}

		return tx.Create(novelist).Error
	})
	if err != nil {
		return nil, err
	}

	return novelist, nil
}

// List returns novelists in creation order, optionally filtered by a
// case-sensitive substring match on the stored (normalized) name.
// SQLite's LIKE is case-insensitive for ASCII, hence instr.
func (r *Repository) List(nameFilter string, limit, offset int) ([]entities.Novelist, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := r.db.Order("id ASC")
	if nameFilter != "" {
		query = query.Where("instr(name, ?) > 0", nameFilter)
	}

	var novelists []entities.Novelist
	err := query.Limit(limit).Offset(offset).Find(&novelists).Error
	return novelists, err
}

// GetByID retrieves a novelist by ID.
func (r *Repository) GetByID(id uint) (*entities.Novelist, error) {
	var novelist entities.Novelist
	err := r.db.First(&novelist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &novelist, nil
}

// Rename updates a novelist's name to the normalized form of newName.
// Conflicts with any novelist already holding that normalized name,
// including the record itself keeping the same name.
func (r *Repository) Rename(id uint, newName string) (*entities.Novelist, error) {
	normalized := sanitize.Normalize(newName)

	var novelist entities.Novelist
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&novelist, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing entities.Novelist
		err := tx.Where("name = ?", normalized).First(&existing).Error
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing novelist: %w", err)
		}

		novelist.Name = normalized
		return tx.Save(&novelist).Error
	})
	if err != nil {
		return nil, err
	}

	return &novelist, nil
}

// Delete removes a novelist by ID. Owned books go with it through the
// ON DELETE CASCADE constraint; nothing is iterated here.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Novelist{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
