package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libcatalog/internal/dto"
	"libcatalog/internal/models"
)

func (h *CatalogHandler) createBorrows(c *gin.Context) {
	reqs, batch, err := decodeOneOrMany[dto.CreateBorrowRequest](c)
	if err != nil {
		writeError(c, err)
		return
	}

	borrows := make([]*models.BorrowedBook, len(reqs))
	for i := range reqs {
		borrows[i] = reqs[i].ToModel()
	}
	if err := h.svc.CreateBorrows(borrows); err != nil {
		writeError(c, err)
		return
	}

	if batch {
		created := make([]models.BorrowedBook, len(borrows))
		for i, b := range borrows {
			created[i] = *b
		}
		c.JSON(http.StatusCreated, created)
		return
	}
	c.JSON(http.StatusCreated, borrows[0])
}

func (h *CatalogHandler) listBorrows(c *gin.Context) {
	borrows, err := h.svc.ListBorrows()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, borrows)
}

// listBorrowsWrapped returns every borrow record's full field set under the
// borrowed_books key.
func (h *CatalogHandler) listBorrowsWrapped(c *gin.Context) {
	borrows, err := h.svc.ListBorrows()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"borrowed_books": borrows})
}

func (h *CatalogHandler) getBorrow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	borrow, err := h.svc.GetBorrow(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, borrow)
}

func (h *CatalogHandler) updateBorrow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CreateBorrowRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	borrow := req.ToModel()
	borrow.BorrowID = id
	if err := h.svc.UpdateBorrow(borrow); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, borrow)
}

func (h *CatalogHandler) patchBorrow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.PatchBorrowRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	borrow, err := h.svc.GetBorrow(id)
	if err != nil {
		writeError(c, err)
		return
	}
	req.Apply(borrow)
	if err := h.svc.UpdateBorrow(borrow); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, borrow)
}

func (h *CatalogHandler) deleteBorrow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteBorrow(id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
