package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"libcatalog/internal/middleware"
	"libcatalog/internal/services"
)

type CatalogHandler struct {
	svc services.CatalogService
}

// RegisterRoutes wires every endpoint onto the engine. Reads are open;
// mutations on all four entities sit behind the bearer-token gate.
func RegisterRoutes(r *gin.Engine, svc services.CatalogService, auth services.AuthService) {
	h := &CatalogHandler{svc: svc}
	ah := &AuthHandler{auth: auth}

	r.POST("/auth/create", ah.create)
	r.POST("/auth/token", ah.token)

	r.GET("/users", h.listUsers)
	r.GET("/users/:id", h.getUser)
	r.GET("/users-plain", h.listUsersPlain)
	r.GET("/users-borrowed", h.listUsersWithBorrows)

	r.GET("/books", h.listBooks)
	r.GET("/books/:id", h.getBook)
	r.GET("/books-list", h.listAllBooks)

	r.GET("/bookdetails", h.listBookDetails)
	r.GET("/bookdetails/:id", h.getBookDetails)

	r.GET("/borrowedbooks", h.listBorrows)
	r.GET("/borrowedbooks/:id", h.getBorrow)
	r.GET("/borrowed", h.listBorrowsWrapped)

	protected := r.Group("", middleware.RequireAuth(auth))

	protected.POST("/users", h.createUsers)
	protected.PUT("/users/:id", h.updateUser)
	protected.PATCH("/users/:id", h.patchUser)
	protected.DELETE("/users/:id", h.deleteUser)

	protected.POST("/books", h.createBooks)
	protected.PUT("/books/:id", h.updateBook)
	protected.PATCH("/books/:id", h.patchBook)
	protected.DELETE("/books/:id", h.deleteBook)

	protected.POST("/bookdetails", h.createBookDetails)
	protected.PUT("/bookdetails/:id", h.updateBookDetails)
	protected.PATCH("/bookdetails/:id", h.patchBookDetails)
	protected.DELETE("/bookdetails/:id", h.deleteBookDetails)

	protected.POST("/borrowedbooks", h.createBorrows)
	protected.PUT("/borrowedbooks/:id", h.updateBorrow)
	protected.PATCH("/borrowedbooks/:id", h.patchBorrow)
	protected.DELETE("/borrowedbooks/:id", h.deleteBorrow)
}

// parseID reads the :id path parameter; on failure it writes the 400 itself.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// decodeOneOrMany decodes a create payload that may be a single object or an
// array of objects, validating every element before anything is persisted.
// The returned flag reports whether the payload was an array, so the response
// can mirror the request's shape.
func decodeOneOrMany[T any](c *gin.Context) ([]T, bool, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, false, err
	}

	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, true, payloadErrors(0, err)
		}
		var verrs services.ValidationErrors
		for i := range items {
			if err := binding.Validator.ValidateStruct(&items[i]); err != nil {
				verrs = append(verrs, payloadErrors(i, err)...)
			}
		}
		if len(verrs) > 0 {
			return nil, true, verrs
		}
		return items, true, nil
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, false, payloadErrors(0, err)
	}
	if err := binding.Validator.ValidateStruct(&item); err != nil {
		return nil, false, payloadErrors(0, err)
	}
	return []T{item}, false, nil
}

// bindJSON is the single-object equivalent, used by PUT and PATCH.
func bindJSON(c *gin.Context, target interface{}) error {
	if err := c.ShouldBindJSON(target); err != nil {
		return payloadErrors(0, err)
	}
	return nil
}

// payloadErrors converts decode and binding failures into per-field errors.
func payloadErrors(idx int, err error) services.ValidationErrors {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(services.ValidationErrors, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, services.FieldError{Index: idx, Field: fe.Field(), Message: "failed '" + fe.Tag() + "' validation"})
		}
		return out
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return services.ValidationErrors{{Index: idx, Field: typeErr.Field, Message: "invalid type, expected " + typeErr.Type.String()}}
	}
	return services.ValidationErrors{{Index: idx, Message: err.Error()}}
}

// writeError maps a service failure onto the response. Validation failures
// carry per-field detail; missing references are 404; anything else is logged
// server-side and reported as an opaque 500.
func writeError(c *gin.Context, err error) {
	var verrs services.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrBookNotFound),
		errors.Is(err, services.ErrDetailsNotFound),
		errors.Is(err, services.ErrBorrowNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		writeFieldError(c, "Email", err)
	case errors.Is(err, services.ErrISBNTaken):
		writeFieldError(c, "ISBN", err)
	case errors.Is(err, services.ErrDetailsExist):
		writeFieldError(c, "BookID", err)
	case errors.Is(err, services.ErrReturnBeforeBorrow):
		writeFieldError(c, "ReturnDate", err)
	default:
		log.Printf("[ERROR] request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func writeFieldError(c *gin.Context, field string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"errors": services.ValidationErrors{{Field: field, Message: err.Error()}},
	})
}
