package repositories

import (
	"strings"

	"gorm.io/gorm"

	"libcatalog/internal/models"
)

// Every method takes an optional *gorm.DB so service-level transactions can be
// threaded through; passing nil falls back to the repository's own handle.

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	List(db *gorm.DB) ([]models.User, error)
	GetByID(db *gorm.DB, id uint) (*models.User, error)
	Save(db *gorm.DB, user *models.User) error
	Delete(db *gorm.DB, id uint) error
	ExistsByEmail(db *gorm.DB, email string, excludeID uint) (bool, error)
}

type BookRepository interface {
	Create(db *gorm.DB, book *models.Book) error
	List(db *gorm.DB, title, genre string) ([]models.Book, error)
	GetByID(db *gorm.DB, id uint) (*models.Book, error)
	Save(db *gorm.DB, book *models.Book) error
	Delete(db *gorm.DB, id uint) error
	ExistsByISBN(db *gorm.DB, isbn string, excludeID uint) (bool, error)
}

type BookDetailsRepository interface {
	Create(db *gorm.DB, details *models.BookDetails) error
	List(db *gorm.DB) ([]models.BookDetails, error)
	GetByID(db *gorm.DB, id uint) (*models.BookDetails, error)
	Save(db *gorm.DB, details *models.BookDetails) error
	Delete(db *gorm.DB, id uint) error
	ExistsForBook(db *gorm.DB, bookID, excludeID uint) (bool, error)
	DeleteByBook(db *gorm.DB, bookID uint) error
}

type BorrowedBookRepository interface {
	Create(db *gorm.DB, borrow *models.BorrowedBook) error
	List(db *gorm.DB) ([]models.BorrowedBook, error)
	GetByID(db *gorm.DB, id uint) (*models.BorrowedBook, error)
	Save(db *gorm.DB, borrow *models.BorrowedBook) error
	Delete(db *gorm.DB, id uint) error
	ListByUser(db *gorm.DB, userID uint) ([]models.BorrowedBook, error)
	DeleteByUser(db *gorm.DB, userID uint) error
	DeleteByBook(db *gorm.DB, bookID uint) error
}

type PrincipalRepository interface {
	Create(db *gorm.DB, principal *models.Principal) error
	GetByUsername(db *gorm.DB, username string) (*models.Principal, error)
}

// concrete implementations

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if db == nil {
		db = r.db
	}
	return db.Create(user).Error
}

func (r *userRepository) List(db *gorm.DB) ([]models.User, error) {
	if db == nil {
		db = r.db
	}
	users := make([]models.User, 0)
	if err := db.Order("user_id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetByID(db *gorm.DB, id uint) (*models.User, error) {
	if db == nil {
		db = r.db
	}
	var user models.User
	if err := db.First(&user, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Save(db *gorm.DB, user *models.User) error {
	if db == nil {
		db = r.db
	}
	return db.Save(user).Error
}

func (r *userRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.User{}, "user_id = ?", id).Error
}

func (r *userRepository) ExistsByEmail(db *gorm.DB, email string, excludeID uint) (bool, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.User{}).
		Where("lower(email) = ? AND user_id <> ?", strings.ToLower(email), excludeID).
		Count(&count).Error
	return count > 0, err
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(db *gorm.DB, book *models.Book) error {
	if db == nil {
		db = r.db
	}
	return db.Create(book).Error
}

func (r *bookRepository) List(db *gorm.DB, title, genre string) ([]models.Book, error) {
	if db == nil {
		db = r.db
	}
	q := db.Model(&models.Book{}).Order("book_id")
	if title != "" {
		q = q.Where("lower(title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}
	if genre != "" {
		q = q.Where("lower(genre) = ?", strings.ToLower(genre))
	}
	books := make([]models.Book, 0)
	if err := q.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) GetByID(db *gorm.DB, id uint) (*models.Book, error) {
	if db == nil {
		db = r.db
	}
	var book models.Book
	if err := db.First(&book, "book_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) Save(db *gorm.DB, book *models.Book) error {
	if db == nil {
		db = r.db
	}
	return db.Save(book).Error
}

func (r *bookRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Book{}, "book_id = ?", id).Error
}

func (r *bookRepository) ExistsByISBN(db *gorm.DB, isbn string, excludeID uint) (bool, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.Book{}).
		Where("isbn = ? AND book_id <> ?", isbn, excludeID).
		Count(&count).Error
	return count > 0, err
}

type bookDetailsRepository struct {
	db *gorm.DB
}

func NewBookDetailsRepository(db *gorm.DB) BookDetailsRepository {
	return &bookDetailsRepository{db: db}
}

func (r *bookDetailsRepository) Create(db *gorm.DB, details *models.BookDetails) error {
	if db == nil {
		db = r.db
	}
	return db.Create(details).Error
}

func (r *bookDetailsRepository) List(db *gorm.DB) ([]models.BookDetails, error) {
	if db == nil {
		db = r.db
	}
	details := make([]models.BookDetails, 0)
	if err := db.Order("details_id").Find(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

func (r *bookDetailsRepository) GetByID(db *gorm.DB, id uint) (*models.BookDetails, error) {
	if db == nil {
		db = r.db
	}
	var details models.BookDetails
	if err := db.First(&details, "details_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *bookDetailsRepository) Save(db *gorm.DB, details *models.BookDetails) error {
	if db == nil {
		db = r.db
	}
	return db.Save(details).Error
}

func (r *bookDetailsRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.BookDetails{}, "details_id = ?", id).Error
}

func (r *bookDetailsRepository) ExistsForBook(db *gorm.DB, bookID, excludeID uint) (bool, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.BookDetails{}).
		Where("book_id = ? AND details_id <> ?", bookID, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *bookDetailsRepository) DeleteByBook(db *gorm.DB, bookID uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.BookDetails{}, "book_id = ?", bookID).Error
}

type borrowedBookRepository struct {
	db *gorm.DB
}

func NewBorrowedBookRepository(db *gorm.DB) BorrowedBookRepository {
	return &borrowedBookRepository{db: db}
}

func (r *borrowedBookRepository) Create(db *gorm.DB, borrow *models.BorrowedBook) error {
	if db == nil {
		db = r.db
	}
	return db.Create(borrow).Error
}

func (r *borrowedBookRepository) List(db *gorm.DB) ([]models.BorrowedBook, error) {
	if db == nil {
		db = r.db
	}
	borrows := make([]models.BorrowedBook, 0)
	if err := db.Order("borrow_id").Find(&borrows).Error; err != nil {
		return nil, err
	}
	return borrows, nil
}

func (r *borrowedBookRepository) GetByID(db *gorm.DB, id uint) (*models.BorrowedBook, error) {
	if db == nil {
		db = r.db
	}
	var borrow models.BorrowedBook
	if err := db.First(&borrow, "borrow_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &borrow, nil
}

func (r *borrowedBookRepository) Save(db *gorm.DB, borrow *models.BorrowedBook) error {
	if db == nil {
		db = r.db
	}
	return db.Save(borrow).Error
}

func (r *borrowedBookRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.BorrowedBook{}, "borrow_id = ?", id).Error
}

func (r *borrowedBookRepository) ListByUser(db *gorm.DB, userID uint) ([]models.BorrowedBook, error) {
	if db == nil {
		db = r.db
	}
	borrows := make([]models.BorrowedBook, 0)
	if err := db.Where("user_id = ?", userID).Order("borrow_id").Find(&borrows).Error; err != nil {
		return nil, err
	}
	return borrows, nil
}

func (r *borrowedBookRepository) DeleteByUser(db *gorm.DB, userID uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.BorrowedBook{}, "user_id = ?", userID).Error
}

func (r *borrowedBookRepository) DeleteByBook(db *gorm.DB, bookID uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.BorrowedBook{}, "book_id = ?", bookID).Error
}

type principalRepository struct {
	db *gorm.DB
}

func NewPrincipalRepository(db *gorm.DB) PrincipalRepository {
	return &principalRepository{db: db}
}

func (r *principalRepository) Create(db *gorm.DB, principal *models.Principal) error {
	if db == nil {
		db = r.db
	}
	return db.Create(principal).Error
}

func (r *principalRepository) GetByUsername(db *gorm.DB, username string) (*models.Principal, error) {
	if db == nil {
		db = r.db
	}
	var principal models.Principal
	if err := db.First(&principal, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &principal, nil
}
