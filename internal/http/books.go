package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/madr/internal/database/books"
	"github.com/mrlokans/madr/internal/entities"
)

// BooksController serves book CRUD. Every route requires a bearer token; any
// authenticated account may act on any book.
type BooksController struct {
	repo *books.Repository
}

func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{repo: repo}
}

type bookRequest struct {
	Title    string `json:"title" binding:"required,max=50"`
	Year     string `json:"year" binding:"required,max=4"`
	AuthorID uint   `json:"author_id" binding:"required"`
}

type bookUpdateRequest struct {
	Year string `json:"year" binding:"required,max=4"`
}

// Create adds a book under the normalized form of the submitted title
// POST /books
func (bc *BooksController) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	book, err := bc.repo.Create(req.Title, req.Year, req.AuthorID)
	if err != nil {
		switch {
		case errors.Is(err, books.ErrInvalidYear):
			respondValidationError(c, "Invalid year format")
		case errors.Is(err, books.ErrAlreadyExists):
			respondConflict(c, "Book already exists")
		default:
			// Includes foreign key violations for an unknown author_id.
			respondInternalError(c, err, "create book")
		}
		return
	}

	c.JSON(http.StatusCreated, book)
}

// List returns books, optionally filtered by title and year substrings
// GET /books?name&year&offset&limit
func (bc *BooksController) List(c *gin.Context) {
	limit := parseQueryInt(c, "limit", books.DefaultListLimit)
	offset := parseQueryInt(c, "offset", 0)

	list, err := bc.repo.List(c.Query("name"), c.Query("year"), limit, offset)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	if list == nil {
		list = []entities.Book{}
	}

	c.JSON(http.StatusOK, gin.H{"books": list})
}

// Get returns a single book
// GET /books/:id
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "Book not found")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// Update changes a book's year, the only mutable field
// PATCH /books/:id
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	book, err := bc.repo.UpdateYear(id, req.Year)
	if err != nil {
		switch {
		case errors.Is(err, books.ErrInvalidYear):
			respondValidationError(c, "Invalid year format")
		case errors.Is(err, books.ErrNotFound):
			respondNotFound(c, "Book not found")
		default:
			respondInternalError(c, err, "update book")
		}
		return
	}

	c.JSON(http.StatusOK, book)
}

// Delete removes a book
// DELETE /books/:id
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.repo.Delete(id); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "Book not found")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Book deleted successfully"})
}
