package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libcatalog/internal/dto"
	"libcatalog/internal/models"
)

func (h *CatalogHandler) createBookDetails(c *gin.Context) {
	reqs, batch, err := decodeOneOrMany[dto.CreateBookDetailsRequest](c)
	if err != nil {
		writeError(c, err)
		return
	}

	details := make([]*models.BookDetails, len(reqs))
	for i := range reqs {
		details[i] = reqs[i].ToModel()
	}
	if err := h.svc.CreateBookDetails(details); err != nil {
		writeError(c, err)
		return
	}

	if batch {
		created := make([]models.BookDetails, len(details))
		for i, d := range details {
			created[i] = *d
		}
		c.JSON(http.StatusCreated, created)
		return
	}
	c.JSON(http.StatusCreated, details[0])
}

func (h *CatalogHandler) listBookDetails(c *gin.Context) {
	details, err := h.svc.ListBookDetails()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *CatalogHandler) getBookDetails(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	details, err := h.svc.GetBookDetails(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *CatalogHandler) updateBookDetails(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CreateBookDetailsRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	details := req.ToModel()
	details.DetailsID = id
	if err := h.svc.UpdateBookDetails(details); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *CatalogHandler) patchBookDetails(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.PatchBookDetailsRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	details, err := h.svc.GetBookDetails(id)
	if err != nil {
		writeError(c, err)
		return
	}
	req.Apply(details)
	if err := h.svc.UpdateBookDetails(details); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *CatalogHandler) deleteBookDetails(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteBookDetails(id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
