package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/madr/internal/database/novelists"
	"github.com/mrlokans/madr/internal/entities"
)

// NovelistsController serves novelist CRUD. Every route requires a bearer
// token; any authenticated account may act on any novelist.
type NovelistsController struct {
	repo *novelists.Repository
}

func NewNovelistsController(repo *novelists.Repository) *NovelistsController {
	return &NovelistsController{repo: repo}
}

type novelistRequest struct {
	Name string `json:"name" binding:"required,max=40"`
}

// Create adds a novelist under the normalized form of the submitted name
// POST /novelist
func (nc *NovelistsController) Create(c *gin.Context) {
	var req novelistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	novelist, err := nc.repo.Create(req.Name)
	if err != nil {
		if errors.Is(err, novelists.ErrAlreadyExists) {
			respondConflict(c, "Novelist already exists")
			return
		}
		respondInternalError(c, err, "create novelist")
		return
	}

	c.JSON(http.StatusCreated, novelist)
}

// List returns novelists, optionally filtered by name substring
// GET /novelist?name&offset&limit
func (nc *NovelistsController) List(c *gin.Context) {
	limit := parseQueryInt(c, "limit", novelists.DefaultListLimit)
	offset := parseQueryInt(c, "offset", 0)

	list, err := nc.repo.List(c.Query("name"), limit, offset)
	if err != nil {
		respondInternalError(c, err, "list novelists")
		return
	}
	if list == nil {
		list = []entities.Novelist{}
	}

	c.JSON(http.StatusOK, gin.H{"novelists": list})
}

// Get returns a single novelist
// GET /novelist/:id
func (nc *NovelistsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	novelist, err := nc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, novelists.ErrNotFound) {
			respondNotFound(c, "Novelist not found")
			return
		}
		respondInternalError(c, err, "get novelist")
		return
	}

	c.JSON(http.StatusOK, novelist)
}

// Update renames a novelist; the new name is normalized and re-checked for
// uniqueness
// PATCH /novelist/:id
func (nc *NovelistsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req novelistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	novelist, err := nc.repo.Rename(id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, novelists.ErrNotFound):
			respondNotFound(c, "Novelist not found")
		case errors.Is(err, novelists.ErrAlreadyExists):
			respondConflict(c, "Novelist already exists")
		default:
			respondInternalError(c, err, "update novelist")
		}
		return
	}

	c.JSON(http.StatusOK, novelist)
}

// Delete removes a novelist and, through the storage-level cascade, every
// book that references it
// DELETE /novelist/:id
func (nc *NovelistsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := nc.repo.Delete(id); err != nil {
		if errors.Is(err, novelists.ErrNotFound) {
			respondNotFound(c, "Novelist not found")
			return
		}
		respondInternalError(c, err, "delete novelist")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Novelist deleted successfully"})
}
