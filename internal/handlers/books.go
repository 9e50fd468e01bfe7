package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libcatalog/internal/dto"
	"libcatalog/internal/models"
)

func (h *CatalogHandler) createBooks(c *gin.Context) {
	reqs, batch, err := decodeOneOrMany[dto.CreateBookRequest](c)
	if err != nil {
		writeError(c, err)
		return
	}

	books := make([]*models.Book, len(reqs))
	for i := range reqs {
		books[i] = reqs[i].ToModel()
	}
	if err := h.svc.CreateBooks(books); err != nil {
		writeError(c, err)
		return
	}

	if batch {
		created := make([]models.Book, len(books))
		for i, b := range books {
			created[i] = *b
		}
		c.JSON(http.StatusCreated, created)
		return
	}
	c.JSON(http.StatusCreated, books[0])
}

// listBooks supports substring filtering on Title and exact (case-insensitive)
// matching on Genre via query parameters.
func (h *CatalogHandler) listBooks(c *gin.Context) {
	books, err := h.svc.ListBooks(c.Query("Title"), c.Query("Genre"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// listAllBooks is the flat, unfiltered book list.
func (h *CatalogHandler) listAllBooks(c *gin.Context) {
	books, err := h.svc.ListBooks("", "")
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *CatalogHandler) getBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	book, err := h.svc.GetBook(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *CatalogHandler) updateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CreateBookRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	book := req.ToModel()
	book.BookID = id
	if err := h.svc.UpdateBook(book); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *CatalogHandler) patchBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.PatchBookRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	book, err := h.svc.GetBook(id)
	if err != nil {
		writeError(c, err)
		return
	}
	req.Apply(book)
	if err := h.svc.UpdateBook(book); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *CatalogHandler) deleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteBook(id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
