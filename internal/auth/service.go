package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/madr/internal/config"
	"github.com/mrlokans/madr/internal/entities"
)

var (
	// ErrIncorrectLogin is returned by Login for an unknown email or a wrong
	// password. The two cases are indistinguishable to the caller.
	ErrIncorrectLogin = errors.New("incorrect email or password")

	// ErrUnauthenticated covers every way a bearer token can fail to resolve
	// to an account: missing, malformed, expired, or referencing a deleted
	// account. Collapsing them avoids leaking account existence.
	ErrUnauthenticated = errors.New("could not validate credentials")
)

// Service handles login and the token-to-account resolution used on every
// protected request.
type Service struct {
	db     *gorm.DB
	issuer *TokenIssuer
	config config.Auth
}

// NewService creates an authentication service.
func NewService(db *gorm.DB, issuer *TokenIssuer, cfg config.Auth) *Service {
	return &Service{
		db:     db,
		issuer: issuer,
		config: cfg,
	}
}

// Login verifies the credentials and returns a fresh access token for the
// account. The email doubles as the token subject.
func (s *Service) Login(email, password string) (string, error) {
	var account entities.Account
	err := s.db.Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrIncorrectLogin
		}
		return "", fmt.Errorf("failed to find account: %w", err)
	}

	if err := CheckPassword(password, account.Password); err != nil {
		return "", ErrIncorrectLogin
	}

	return s.issuer.Issue(account.Email)
}

// Refresh issues a new token for an already authenticated account.
func (s *Service) Refresh(account *entities.Account) (string, error) {
	return s.issuer.Issue(account.Email)
}

// CurrentAccount resolves a bearer token to the account it was issued for.
func (s *Service) CurrentAccount(token string) (*entities.Account, error) {
	subject, err := s.issuer.Subject(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	var account entities.Account
	err = s.db.Where("email = ?", subject).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Valid token for an account deleted since issuance.
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return &account, nil
}

// HashPassword hashes a plaintext password with the configured cost.
func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.config.BcryptCost)
}
