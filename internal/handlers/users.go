package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libcatalog/internal/dto"
	"libcatalog/internal/models"
)

func (h *CatalogHandler) createUsers(c *gin.Context) {
	reqs, batch, err := decodeOneOrMany[dto.CreateUserRequest](c)
	if err != nil {
		writeError(c, err)
		return
	}

	users := make([]*models.User, len(reqs))
	for i := range reqs {
		users[i] = reqs[i].ToModel()
	}
	if err := h.svc.CreateUsers(users); err != nil {
		writeError(c, err)
		return
	}

	if batch {
		created := make([]models.User, len(users))
		for i, u := range users {
			created[i] = *u
		}
		c.JSON(http.StatusCreated, created)
		return
	}
	c.JSON(http.StatusCreated, users[0])
}

func (h *CatalogHandler) listUsers(c *gin.Context) {
	users, err := h.svc.ListUsers()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// listUsersPlain is the wrapped variant of the user list.
func (h *CatalogHandler) listUsersPlain(c *gin.Context) {
	users, err := h.svc.ListUsers()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// listUsersWithBorrows returns the composed view: each user together with the
// narrow form of its borrow records, computed per user at serialization time.
func (h *CatalogHandler) listUsersWithBorrows(c *gin.Context) {
	users, err := h.svc.ListUsers()
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]dto.UserWithBorrowedBooks, 0, len(users))
	for _, u := range users {
		borrows, err := h.svc.ListUserBorrows(u.UserID)
		if err != nil {
			writeError(c, err)
			return
		}
		views = append(views, dto.NewUserWithBorrowedBooks(u, borrows))
	}
	c.JSON(http.StatusOK, views)
}

func (h *CatalogHandler) getUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.svc.GetUser(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *CatalogHandler) updateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	user := req.ToModel()
	user.UserID = id
	if err := h.svc.UpdateUser(user); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *CatalogHandler) patchUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.PatchUserRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	user, err := h.svc.GetUser(id)
	if err != nil {
		writeError(c, err)
		return
	}
	req.Apply(user)
	if err := h.svc.UpdateUser(user); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *CatalogHandler) deleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteUser(id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
