// Package dto holds the wire representations of the catalogue entities. Each
// entity has an explicit whole-entity request struct; the two narrower views
// (a borrow record nested under its user, and a user composed with its borrow
// records) are distinct types rather than runtime field filtering.
package dto

import (
	"libcatalog/internal/models"
)

// ─── Users ────────────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Name           string      `json:"Name" binding:"required,max=100"`
	Email          string      `json:"Email" binding:"required,email,max=254"`
	MembershipDate models.Date `json:"MembershipDate" binding:"required"`
}

func (r *CreateUserRequest) ToModel() *models.User {
	return &models.User{
		Name:           r.Name,
		Email:          r.Email,
		MembershipDate: r.MembershipDate,
	}
}

type PatchUserRequest struct {
	Name           *string      `json:"Name" binding:"omitempty,max=100"`
	Email          *string      `json:"Email" binding:"omitempty,email,max=254"`
	MembershipDate *models.Date `json:"MembershipDate"`
}

func (r *PatchUserRequest) Apply(u *models.User) {
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.MembershipDate != nil {
		u.MembershipDate = *r.MembershipDate
	}
}

// ─── Books ────────────────────────────────────────────────────────────────────

type CreateBookRequest struct {
	Title         string      `json:"Title" binding:"required,max=200"`
	ISBN          string      `json:"ISBN" binding:"required,max=13"`
	PublishedDate models.Date `json:"PublishedDate" binding:"required"`
	Genre         string      `json:"Genre" binding:"required,max=100"`
}

func (r *CreateBookRequest) ToModel() *models.Book {
	return &models.Book{
		Title:         r.Title,
		ISBN:          r.ISBN,
		PublishedDate: r.PublishedDate,
		Genre:         r.Genre,
	}
}

type PatchBookRequest struct {
	Title         *string      `json:"Title" binding:"omitempty,max=200"`
	ISBN          *string      `json:"ISBN" binding:"omitempty,max=13"`
	PublishedDate *models.Date `json:"PublishedDate"`
	Genre         *string      `json:"Genre" binding:"omitempty,max=100"`
}

func (r *PatchBookRequest) Apply(b *models.Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.ISBN != nil {
		b.ISBN = *r.ISBN
	}
	if r.PublishedDate != nil {
		b.PublishedDate = *r.PublishedDate
	}
	if r.Genre != nil {
		b.Genre = *r.Genre
	}
}

// ─── Book Details ─────────────────────────────────────────────────────────────

type CreateBookDetailsRequest struct {
	BookID        uint   `json:"BookID" binding:"required"`
	NumberOfPages int    `json:"NumberOfPages" binding:"required,gt=0"`
	Publisher     string `json:"Publisher" binding:"required,max=100"`
	Language      string `json:"Language" binding:"required,max=50"`
}

func (r *CreateBookDetailsRequest) ToModel() *models.BookDetails {
	return &models.BookDetails{
		BookID:        r.BookID,
		NumberOfPages: r.NumberOfPages,
		Publisher:     r.Publisher,
		Language:      r.Language,
	}
}

type PatchBookDetailsRequest struct {
	BookID        *uint   `json:"BookID"`
	NumberOfPages *int    `json:"NumberOfPages" binding:"omitempty,gt=0"`
	Publisher     *string `json:"Publisher" binding:"omitempty,max=100"`
	Language      *string `json:"Language" binding:"omitempty,max=50"`
}

func (r *PatchBookDetailsRequest) Apply(d *models.BookDetails) {
	if r.BookID != nil {
		d.BookID = *r.BookID
	}
	if r.NumberOfPages != nil {
		d.NumberOfPages = *r.NumberOfPages
	}
	if r.Publisher != nil {
		d.Publisher = *r.Publisher
	}
	if r.Language != nil {
		d.Language = *r.Language
	}
}

// ─── Borrowed Books ───────────────────────────────────────────────────────────

// CreateBorrowRequest carries UserID in addition to the narrow view's fields:
// without it a borrow row could not satisfy referential integrity.
type CreateBorrowRequest struct {
	UserID     uint         `json:"UserID" binding:"required"`
	BookID     uint         `json:"BookID" binding:"required"`
	BorrowDate models.Date  `json:"BorrowDate" binding:"required"`
	ReturnDate *models.Date `json:"ReturnDate"`
}

func (r *CreateBorrowRequest) ToModel() *models.BorrowedBook {
	return &models.BorrowedBook{
		UserID:     r.UserID,
		BookID:     r.BookID,
		BorrowDate: r.BorrowDate,
		ReturnDate: r.ReturnDate,
	}
}

type PatchBorrowRequest struct {
	UserID     *uint        `json:"UserID"`
	BookID     *uint        `json:"BookID"`
	BorrowDate *models.Date `json:"BorrowDate"`
	ReturnDate *models.Date `json:"ReturnDate"`
}

func (r *PatchBorrowRequest) Apply(b *models.BorrowedBook) {
	if r.UserID != nil {
		b.UserID = *r.UserID
	}
	if r.BookID != nil {
		b.BookID = *r.BookID
	}
	if r.BorrowDate != nil {
		b.BorrowDate = *r.BorrowDate
	}
	if r.ReturnDate != nil {
		b.ReturnDate = r.ReturnDate
	}
}

// ─── Views ────────────────────────────────────────────────────────────────────

// BorrowedBookView is the narrow form of a borrow record used when nested
// under its user: no identity, no user reference.
type BorrowedBookView struct {
	BookID     uint         `json:"BookID"`
	BorrowDate models.Date  `json:"BorrowDate"`
	ReturnDate *models.Date `json:"ReturnDate"`
}

func NewBorrowedBookView(b models.BorrowedBook) BorrowedBookView {
	return BorrowedBookView{
		BookID:     b.BookID,
		BorrowDate: b.BorrowDate,
		ReturnDate: b.ReturnDate,
	}
}

// UserWithBorrowedBooks composes a user with the narrow views of all its
// borrow records. BorrowedBooks always serializes as a JSON array, empty when
// the user has no records.
type UserWithBorrowedBooks struct {
	UserID         uint               `json:"UserID"`
	Name           string             `json:"Name"`
	Email          string             `json:"Email"`
	MembershipDate models.Date        `json:"MembershipDate"`
	BorrowedBooks  []BorrowedBookView `json:"borrowed_books"`
}

func NewUserWithBorrowedBooks(u models.User, borrows []models.BorrowedBook) UserWithBorrowedBooks {
	views := make([]BorrowedBookView, 0, len(borrows))
	for _, b := range borrows {
		views = append(views, NewBorrowedBookView(b))
	}
	return UserWithBorrowedBooks{
		UserID:         u.UserID,
		Name:           u.Name,
		Email:          u.Email,
		MembershipDate: u.MembershipDate,
		BorrowedBooks:  views,
	}
}

// ─── Auth ─────────────────────────────────────────────────────────────────────

type CredentialsRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required,min=8"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
