package bookstoreserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookhttpmapper "github.com/avalder/go-bookstore-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/avalder/go-bookstore-api/internal/domains/catalog/ports"
)

// BooksAPI wires HTTP transport with the catalog bounded context service.
type BooksAPI struct {
	service catalogports.Service
}

// NewBooksAPI creates a BooksAPI backed by the provided service.
func NewBooksAPI(service catalogports.Service) BooksAPI {
	return BooksAPI{service: service}
}

// Get /api/books
func (api *BooksAPI) ListBooks(c *gin.Context) {
	books, err := api.service.ListBooks(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookhttpmapper.FromDomainBooks(books))
}

// Get /api/books/:id
func (api *BooksAPI) GetBook(c *gin.Context) {
	book, err := api.service.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookhttpmapper.FromDomainBook(book))
}

// Post /api/books
func (api *BooksAPI) CreateBook(c *gin.Context) {
	var payload bookhttpmapper.CreateBookRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.CreateBook(c.Request.Context(), bookhttpmapper.ToDomainBook(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookhttpmapper.FromDomainBook(saved))
}

// Put /api/books/:id
func (api *BooksAPI) UpdateBook(c *gin.Context) {
	var payload bookhttpmapper.UpdateBookRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdateBook(c.Request.Context(), c.Param("id"), bookhttpmapper.ToBookUpdate(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookhttpmapper.FromDomainBook(updated))
}

// Delete /api/books/:id
func (api *BooksAPI) DeleteBook(c *gin.Context) {
	removed, err := api.service.DeleteBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookhttpmapper.FromDomainBook(removed))
}
