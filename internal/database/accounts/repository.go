// Package accounts provides database operations for account management.
//
// # Usage
//
//	repo := accounts.NewRepository(db)
//	account, err := repo.GetByID(id)
package accounts

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/madr/internal/entities"
)

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
	ErrNotFound       = errors.New("account not found")
)

// DefaultListLimit is applied when a listing request does not set a limit.
const DefaultListLimit = 10

// Repository handles all account database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new accounts repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new account. The password must already be hashed.
// Username and email collisions are detected with a single lookup; when both
// collide the username conflict wins, keeping the reported error deterministic.
func (r *Repository) Create(username, email, passwordHash string) (*entities.Account, error) {
	account := &entities.Account{
		Username: username,
		Email:    email,
		Password: passwordHash,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.Account
		err := tx.Where("username = ? OR email = ?", username, email).First(&existing).Error
		if err == nil {
			if existing.Username == username {
				return ErrUsernameExists
			}
			return ErrEmailExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing account: %w", err)
		}

		return tx.Create(account).Error
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// List returns accounts in creation order. A non-positive limit falls back to
// DefaultListLimit.
func (r *Repository) List(limit, skip int) ([]entities.Account, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var accounts []entities.Account
	err := r.db.Order("id ASC").Limit(limit).Offset(skip).Find(&accounts).Error
	return accounts, err
}

// GetByID retrieves an account by ID.
func (r *Repository) GetByID(id uint) (*entities.Account, error) {
	var account entities.Account
	err := r.db.First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetByEmail retrieves an account by email.
func (r *Repository) GetByEmail(email string) (*entities.Account, error) {
	var account entities.Account
	err := r.db.Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Update replaces username, email and password hash of an existing account.
// Uniqueness against other rows is not re-checked here; the unique indexes
// still reject colliding writes.
func (r *Repository) Update(id uint, username, email, passwordHash string) (*entities.Account, error) {
	var account entities.Account
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&account, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		account.Username = username
		account.Email = email
		account.Password = passwordHash

		return tx.Save(&account).Error
	})
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// Delete removes an account by ID.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Account{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
