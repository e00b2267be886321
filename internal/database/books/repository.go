// Package books provides database operations for the book catalog.
package books

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/mrlokans/madr/internal/entities"
	"github.com/mrlokans/madr/internal/sanitize"
)

var (
	ErrAlreadyExists = errors.New("book already exists")
	ErrNotFound      = errors.New("book not found")
	ErrInvalidYear   = errors.New("invalid year format")
)

// DefaultListLimit is applied when a listing request does not set a limit.
const DefaultListLimit = 10

// Publication year bounds, inclusive.
const (
	minYear = 900
	maxYear = 2099
)

// Repository handles all book database operations. Titles are normalized
// before storage and comparison.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ValidateYear checks that year is a 3-4 digit string whose numeric value
// lies in [900, 2099].
func ValidateYear(year string) error {
	if len(year) < 3 || len(year) > 4 {
		return ErrInvalidYear
	}
	n, err := strconv.Atoi(year)
	if err != nil || n < minYear || n > maxYear {
		return ErrInvalidYear
	}
	return nil
}

// Create stores a book under the normalized form of title. The author is not
// existence-checked here; the foreign key constraint rejects an orphaned
// author_id and the failure surfaces as a plain storage error.
func (r *Repository) Create(title, year string, authorID uint) (*entities.Book, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}

	normalized := sanitize.Normalize(title)
	book := &entities.Book{
		Title:    normalized,
		Year:     year,
		AuthorID: authorID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.Book
		err := tx.Where("title = ?", normalized).First(&existing).Error
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing book: %w", err)
		}

		return tx.Create(book).Error
	})
	if err != nil {
		return nil, err
	}

	return book, nil
}

// List returns books in creation order. Title and year filters are
// case-sensitive substring matches, independently applicable and combined
// with AND semantics.
func (r *Repository) List(titleFilter, yearFilter string, limit, offset int) ([]entities.Book, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := r.db.Order("id ASC")
	if titleFilter != "" {
		query = query.Where("instr(title, ?) > 0", titleFilter)
	}
	if yearFilter != "" {
		query = query.Where("instr(year, ?) > 0", yearFilter)
	}

	var books []entities.Book
	err := query.Limit(limit).Offset(offset).Find(&books).Error
	return books, err
}

// GetByID retrieves a book by ID.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// UpdateYear changes a book's publication year, the only mutable field.
func (r *Repository) UpdateYear(id uint, year string) (*entities.Book, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}

	var book entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		book.Year = year
		return tx.Save(&book).Error
	})
	if err != nil {
		return nil, err
	}

	return &book, nil
}

// Delete removes a book by ID.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
