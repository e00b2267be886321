package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/madr/internal/auth"
	"github.com/mrlokans/madr/internal/database/accounts"
	"github.com/mrlokans/madr/internal/entities"
)

// AccountsController serves registration and account CRUD.
type AccountsController struct {
	repo    *accounts.Repository
	service *auth.Service
}

func NewAccountsController(repo *accounts.Repository, service *auth.Service) *AccountsController {
	return &AccountsController{repo: repo, service: service}
}

type accountRequest struct {
	Username string `json:"username" binding:"required,min=3,max=25"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account
// POST /users
func (ac *AccountsController) Register(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	hash, err := ac.service.HashPassword(req.Password)
	if err != nil {
		respondInternalError(c, err, "hash password")
		return
	}

	account, err := ac.repo.Create(req.Username, req.Email, hash)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrUsernameExists):
			respondConflict(c, "Username already exists")
		case errors.Is(err, accounts.ErrEmailExists):
			respondConflict(c, "Email already exists")
		default:
			respondInternalError(c, err, "create account")
		}
		return
	}

	c.JSON(http.StatusCreated, account)
}

// List returns accounts in creation order
// GET /users?limit&skip
func (ac *AccountsController) List(c *gin.Context) {
	limit := parseQueryInt(c, "limit", accounts.DefaultListLimit)
	skip := parseQueryInt(c, "skip", 0)

	list, err := ac.repo.List(limit, skip)
	if err != nil {
		respondInternalError(c, err, "list accounts")
		return
	}
	if list == nil {
		list = []entities.Account{}
	}

	c.JSON(http.StatusOK, gin.H{"users": list})
}

// Get returns a single account
// GET /users/:id
func (ac *AccountsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	account, err := ac.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			respondNotFound(c, "User not found")
			return
		}
		respondInternalError(c, err, "get account")
		return
	}

	c.JSON(http.StatusOK, account)
}

// Update replaces an account's username, email and password. Owner-only:
// callers may mutate only their own record. The password is re-hashed even
// when unchanged, so clients resend it on every update.
// PUT /users/:id
func (ac *AccountsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	caller := auth.CurrentAccount(c)
	if caller == nil || caller.ID != id {
		respondForbidden(c)
		return
	}

	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	hash, err := ac.service.HashPassword(req.Password)
	if err != nil {
		respondInternalError(c, err, "hash password")
		return
	}

	account, err := ac.repo.Update(id, req.Username, req.Email, hash)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			respondNotFound(c, "User not found")
			return
		}
		respondInternalError(c, err, "update account")
		return
	}

	c.JSON(http.StatusOK, account)
}

// Delete removes an account. Owner-only, like Update.
// DELETE /users/:id
func (ac *AccountsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	caller := auth.CurrentAccount(c)
	if caller == nil || caller.ID != id {
		respondForbidden(c)
		return
	}

	if err := ac.repo.Delete(id); err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			respondNotFound(c, "User not found")
			return
		}
		respondInternalError(c, err, "delete account")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
