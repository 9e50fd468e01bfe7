package services

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"libcatalog/internal/models"
	"libcatalog/internal/repositories"
)

// ─── Service Interface ────────────────────────────────────────────────────────

// CatalogService defines the application-level operations of the catalogue.
// Every Create* method accepts a slice: single-object requests arrive as a
// slice of length one, batch requests as a longer slice. A batch is validated
// in full before anything is written and persisted inside one transaction.
type CatalogService interface {
	CreateUsers(users []*models.User) error
	ListUsers() ([]models.User, error)
	GetUser(id uint) (*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error

	CreateBooks(books []*models.Book) error
	ListBooks(title, genre string) ([]models.Book, error)
	GetBook(id uint) (*models.Book, error)
	UpdateBook(book *models.Book) error
	DeleteBook(id uint) error

	CreateBookDetails(details []*models.BookDetails) error
	ListBookDetails() ([]models.BookDetails, error)
	GetBookDetails(id uint) (*models.BookDetails, error)
	UpdateBookDetails(details *models.BookDetails) error
	DeleteBookDetails(id uint) error

	CreateBorrows(borrows []*models.BorrowedBook) error
	ListBorrows() ([]models.BorrowedBook, error)
	GetBorrow(id uint) (*models.BorrowedBook, error)
	UpdateBorrow(borrow *models.BorrowedBook) error
	DeleteBorrow(id uint) error
	ListUserBorrows(userID uint) ([]models.BorrowedBook, error)
}

// ─── Implementation ───────────────────────────────────────────────────────────

type catalogService struct {
	db          *gorm.DB
	userRepo    repositories.UserRepository
	bookRepo    repositories.BookRepository
	detailsRepo repositories.BookDetailsRepository
	borrowRepo  repositories.BorrowedBookRepository
}

// NewCatalogService wires up all dependencies and returns a CatalogService.
func NewCatalogService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	bookRepo repositories.BookRepository,
	detailsRepo repositories.BookDetailsRepository,
	borrowRepo repositories.BorrowedBookRepository,
) CatalogService {
	return &catalogService{
		db:          db,
		userRepo:    userRepo,
		bookRepo:    bookRepo,
		detailsRepo: detailsRepo,
		borrowRepo:  borrowRepo,
	}
}

// ─── Users ────────────────────────────────────────────────────────────────────

// CreateUsers validates every element of the batch, then persists all of them
// in a single transaction. Email uniqueness is checked both against the store
// and within the batch itself.
func (s *catalogService) CreateUsers(users []*models.User) error {
	var verrs ValidationErrors
	seen := make(map[string]bool, len(users))
	for i, u := range users {
		key := strings.ToLower(u.Email)
		if seen[key] {
			verrs = append(verrs, FieldError{Index: i, Field: "Email", Message: "duplicate email within request"})
			continue
		}
		seen[key] = true
		taken, err := s.userRepo.ExistsByEmail(nil, u.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			verrs = append(verrs, FieldError{Index: i, Field: "Email", Message: ErrEmailTaken.Error()})
		}
	}
	if len(verrs) > 0 {
		return verrs
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range users {
			if err := s.userRepo.Create(tx, u); err != nil {
				log.Printf("[ERROR] CreateUsers: failed to create user %q: %v", u.Email, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			log.Printf("[WARN] CreateUsers: unique constraint hit at commit time: %v", err)
		}
		return err
	}
	log.Printf("[INFO] CreateUsers: created %d user(s)", len(users))
	return nil
}

func (s *catalogService) ListUsers() ([]models.User, error) {
	return s.userRepo.List(nil)
}

func (s *catalogService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *catalogService) UpdateUser(user *models.User) error {
	if _, err := s.GetUser(user.UserID); err != nil {
		return err
	}
	taken, err := s.userRepo.ExistsByEmail(nil, user.Email, user.UserID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	if err := s.userRepo.Save(nil, user); err != nil {
		log.Printf("[ERROR] UpdateUser: failed to save user %d: %v", user.UserID, err)
		return err
	}
	return nil
}

// DeleteUser removes the user and, in the same transaction, every borrow
// record referencing it. No orphan rows remain once the call returns.
func (s *catalogService) DeleteUser(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.GetByID(tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := s.borrowRepo.DeleteByUser(tx, id); err != nil {
			log.Printf("[ERROR] DeleteUser: failed to cascade borrows for user %d: %v", id, err)
			return err
		}
		return s.userRepo.Delete(tx, id)
	})
	if err != nil {
		return err
	}
	log.Printf("[INFO] DeleteUser: deleted user %d and its borrow records", id)
	return nil
}

// ─── Books ────────────────────────────────────────────────────────────────────

func (s *catalogService) CreateBooks(books []*models.Book) error {
	var verrs ValidationErrors
	seen := make(map[string]bool, len(books))
	for i, b := range books {
		if seen[b.ISBN] {
			verrs = append(verrs, FieldError{Index: i, Field: "ISBN", Message: "duplicate ISBN within request"})
			continue
		}
		seen[b.ISBN] = true
		taken, err := s.bookRepo.ExistsByISBN(nil, b.ISBN, 0)
		if err != nil {
			return err
		}
		if taken {
			verrs = append(verrs, FieldError{Index: i, Field: "ISBN", Message: ErrISBNTaken.Error()})
		}
	}
	if len(verrs) > 0 {
		return verrs
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, b := range books {
			if err := s.bookRepo.Create(tx, b); err != nil {
				log.Printf("[ERROR] CreateBooks: failed to create book %q: %v", b.Title, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("[INFO] CreateBooks: created %d book(s)", len(books))
	return nil
}

func (s *catalogService) ListBooks(title, genre string) ([]models.Book, error) {
	return s.bookRepo.List(nil, title, genre)
}

func (s *catalogService) GetBook(id uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *catalogService) UpdateBook(book *models.Book) error {
	if _, err := s.GetBook(book.BookID); err != nil {
		return err
	}
	taken, err := s.bookRepo.ExistsByISBN(nil, book.ISBN, book.BookID)
	if err != nil {
		return err
	}
	if taken {
		return ErrISBNTaken
	}
	if err := s.bookRepo.Save(nil, book); err != nil {
		log.Printf("[ERROR] UpdateBook: failed to save book %d: %v", book.BookID, err)
		return err
	}
	return nil
}

// DeleteBook removes the book and, in the same transaction, its details row
// (if any) and every borrow record referencing it.
func (s *catalogService) DeleteBook(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.bookRepo.GetByID(tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		if err := s.detailsRepo.DeleteByBook(tx, id); err != nil {
			log.Printf("[ERROR] DeleteBook: failed to cascade details for book %d: %v", id, err)
			return err
		}
		if err := s.borrowRepo.DeleteByBook(tx, id); err != nil {
			log.Printf("[ERROR] DeleteBook: failed to cascade borrows for book %d: %v", id, err)
			return err
		}
		return s.bookRepo.Delete(tx, id)
	})
	if err != nil {
		return err
	}
	log.Printf("[INFO] DeleteBook: deleted book %d and its dependents", id)
	return nil
}

// ─── Book Details ─────────────────────────────────────────────────────────────

func (s *catalogService) CreateBookDetails(details []*models.BookDetails) error {
	var verrs ValidationErrors
	seen := make(map[uint]bool, len(details))
	for i, d := range details {
		if seen[d.BookID] {
			verrs = append(verrs, FieldError{Index: i, Field: "BookID", Message: "duplicate book within request"})
			continue
		}
		seen[d.BookID] = true
		if _, err := s.bookRepo.GetByID(nil, d.BookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				verrs = append(verrs, FieldError{Index: i, Field: "BookID", Message: ErrBookNotFound.Error()})
				continue
			}
			return err
		}
		exists, err := s.detailsRepo.ExistsForBook(nil, d.BookID, 0)
		if err != nil {
			return err
		}
		if exists {
			verrs = append(verrs, FieldError{Index: i, Field: "BookID", Message: ErrDetailsExist.Error()})
		}
	}
	if len(verrs) > 0 {
		return verrs
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, d := range details {
			if err := s.detailsRepo.Create(tx, d); err != nil {
				log.Printf("[ERROR] CreateBookDetails: failed to create details for book %d: %v", d.BookID, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("[INFO] CreateBookDetails: created %d details record(s)", len(details))
	return nil
}

func (s *catalogService) ListBookDetails() ([]models.BookDetails, error) {
	return s.detailsRepo.List(nil)
}

func (s *catalogService) GetBookDetails(id uint) (*models.BookDetails, error) {
	details, err := s.detailsRepo.GetByID(nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDetailsNotFound
		}
		return nil, err
	}
	return details, nil
}

func (s *catalogService) UpdateBookDetails(details *models.BookDetails) error {
	if _, err := s.GetBookDetails(details.DetailsID); err != nil {
		return err
	}
	if _, err := s.GetBook(details.BookID); err != nil {
		return err
	}
	exists, err := s.detailsRepo.ExistsForBook(nil, details.BookID, details.DetailsID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDetailsExist
	}
	if err := s.detailsRepo.Save(nil, details); err != nil {
		log.Printf("[ERROR] UpdateBookDetails: failed to save details %d: %v", details.DetailsID, err)
		return err
	}
	return nil
}

func (s *catalogService) DeleteBookDetails(id uint) error {
	if _, err := s.GetBookDetails(id); err != nil {
		return err
	}
	return s.detailsRepo.Delete(nil, id)
}

// ─── Borrowed Books ───────────────────────────────────────────────────────────

func (s *catalogService) CreateBorrows(borrows []*models.BorrowedBook) error {
	var verrs ValidationErrors
	for i, b := range borrows {
		if _, err := s.userRepo.GetByID(nil, b.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				verrs = append(verrs, FieldError{Index: i, Field: "UserID", Message: ErrUserNotFound.Error()})
			} else {
				return err
			}
		}
		if _, err := s.bookRepo.GetByID(nil, b.BookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				verrs = append(verrs, FieldError{Index: i, Field: "BookID", Message: ErrBookNotFound.Error()})
			} else {
				return err
			}
		}
		if b.ReturnDate != nil && b.ReturnDate.Before(b.BorrowDate) {
			verrs = append(verrs, FieldError{Index: i, Field: "ReturnDate", Message: ErrReturnBeforeBorrow.Error()})
		}
	}
	if len(verrs) > 0 {
		return verrs
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, b := range borrows {
			if err := s.borrowRepo.Create(tx, b); err != nil {
				log.Printf("[ERROR] CreateBorrows: failed to create borrow (user=%d book=%d): %v", b.UserID, b.BookID, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("[INFO] CreateBorrows: created %d borrow record(s)", len(borrows))
	return nil
}

func (s *catalogService) ListBorrows() ([]models.BorrowedBook, error) {
	return s.borrowRepo.List(nil)
}

func (s *catalogService) GetBorrow(id uint) (*models.BorrowedBook, error) {
	borrow, err := s.borrowRepo.GetByID(nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBorrowNotFound
		}
		return nil, err
	}
	return borrow, nil
}

func (s *catalogService) UpdateBorrow(borrow *models.BorrowedBook) error {
	if _, err := s.GetBorrow(borrow.BorrowID); err != nil {
		return err
	}
	if _, err := s.GetUser(borrow.UserID); err != nil {
		return err
	}
	if _, err := s.GetBook(borrow.BookID); err != nil {
		return err
	}
	if borrow.ReturnDate != nil && borrow.ReturnDate.Before(borrow.BorrowDate) {
		return ErrReturnBeforeBorrow
	}
	if err := s.borrowRepo.Save(nil, borrow); err != nil {
		log.Printf("[ERROR] UpdateBorrow: failed to save borrow %d: %v", borrow.BorrowID, err)
		return err
	}
	return nil
}

func (s *catalogService) DeleteBorrow(id uint) error {
	if _, err := s.GetBorrow(id); err != nil {
		return err
	}
	return s.borrowRepo.Delete(nil, id)
}

// ListUserBorrows returns the borrow records of one user. An unknown user or a
// user with no records yields an empty slice, never an error; the composed
// user view relies on that.
func (s *catalogService) ListUserBorrows(userID uint) ([]models.BorrowedBook, error) {
	borrows, err := s.borrowRepo.ListByUser(nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.BorrowedBook{}, nil
		}
		return nil, err
	}
	if borrows == nil {
		borrows = []models.BorrowedBook{}
	}
	return borrows, nil
}
