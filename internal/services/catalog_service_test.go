package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"libcatalog/internal/models"
	"libcatalog/internal/repositories"
	"libcatalog/internal/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second pool connection would open a second in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestService(t *testing.T) (services.CatalogService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := services.NewCatalogService(
		db,
		repositories.NewUserRepository(db),
		repositories.NewBookRepository(db),
		repositories.NewBookDetailsRepository(db),
		repositories.NewBorrowedBookRepository(db),
	)
	return svc, db
}

func mustCreateUser(t *testing.T, svc services.CatalogService, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, MembershipDate: models.NewDate(2024, 1, 1)}
	require.NoError(t, svc.CreateUsers([]*models.User{user}))
	return user
}

func mustCreateBook(t *testing.T, svc services.CatalogService, title, isbn string) *models.Book {
	t.Helper()
	book := &models.Book{Title: title, ISBN: isbn, PublishedDate: models.NewDate(2020, 1, 1), Genre: "Fiction"}
	require.NoError(t, svc.CreateBooks([]*models.Book{book}))
	return book
}

func TestCreateUsersBatch(t *testing.T) {
	svc, _ := newTestService(t)

	users := []*models.User{
		{Name: "Ada", Email: "ada@example.com", MembershipDate: models.NewDate(2024, 1, 15)},
		{Name: "Alan", Email: "alan@example.com", MembershipDate: models.NewDate(2024, 2, 1)},
		{Name: "Grace", Email: "grace@example.com", MembershipDate: models.NewDate(2024, 3, 10)},
	}
	require.NoError(t, svc.CreateUsers(users))

	listed, err := svc.ListUsers()
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	for _, u := range users {
		got, err := svc.GetUser(u.UserID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, got.Email)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateUser(t, svc, "Ada", "ada@example.com")

	err := svc.CreateUsers([]*models.User{
		{Name: "Imposter", Email: "ada@example.com", MembershipDate: models.NewDate(2024, 5, 1)},
	})
	var verrs services.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "Email", verrs[0].Field)

	listed, err := svc.ListUsers()
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestCreateUsersDuplicateEmailWithinBatch(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.CreateUsers([]*models.User{
		{Name: "One", Email: "same@example.com", MembershipDate: models.NewDate(2024, 1, 1)},
		{Name: "Two", Email: "same@example.com", MembershipDate: models.NewDate(2024, 1, 2)},
	})
	var verrs services.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, 1, verrs[0].Index)

	listed, err := svc.ListUsers()
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCreateBookDuplicateISBN(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateBook(t, svc, "Dune", "9780441013593")

	err := svc.CreateBooks([]*models.Book{
		{Title: "Dune Again", ISBN: "9780441013593", PublishedDate: models.NewDate(1966, 1, 1), Genre: "Sci-Fi"},
	})
	var verrs services.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "ISBN", verrs[0].Field)

	listed, err := svc.ListBooks("", "")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestListBooksTitleFilter(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateBook(t, svc, "Dune", "1111111111111")
	mustCreateBook(t, svc, "Dune Messiah", "2222222222222")
	mustCreateBook(t, svc, "Hyperion", "3333333333333")

	matches, err := svc.ListBooks("dune", "")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	all, err := svc.ListBooks("", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBookDetailsOneToOne(t *testing.T) {
	svc, _ := newTestService(t)
	book := mustCreateBook(t, svc, "Dune", "9780441013593")

	first := &models.BookDetails{BookID: book.BookID, NumberOfPages: 412, Publisher: "Chilton", Language: "English"}
	require.NoError(t, svc.CreateBookDetails([]*models.BookDetails{first}))

	err := svc.CreateBookDetails([]*models.BookDetails{
		{BookID: book.BookID, NumberOfPages: 500, Publisher: "Other", Language: "English"},
	})
	var verrs services.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "BookID", verrs[0].Field)
	assert.Equal(t, services.ErrDetailsExist.Error(), verrs[0].Message)
}

func TestCreateBookDetailsUnknownBook(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.CreateBookDetails([]*models.BookDetails{
		{BookID: 99, NumberOfPages: 100, Publisher: "Nobody", Language: "English"},
	})
	var verrs services.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "BookID", verrs[0].Field)
}

func TestDeleteUserCascadesBorrows(t *testing.T) {
	svc, _ := newTestService(t)
	user := mustCreateUser(t, svc, "Ada", "ada@example.com")
	book1 := mustCreateBook(t, svc, "Dune", "1111111111111")
	book2 := mustCreateBook(t, svc, "Hyperion", "2222222222222")

	borrows := []*models.BorrowedBook{
		{UserID: user.UserID, BookID: book1.BookID, BorrowDate: models.NewDate(2024, 6, 1)},
		{UserID: user.UserID, BookID: book2.BookID, BorrowDate: models.NewDate(2024, 6, 2)},
	}
	require.NoError(t, svc.CreateBorrows(borrows))

	require.NoError(t, svc.DeleteUser(user.UserID))

	_, err := svc.GetUser(user.UserID)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	for _, b := range borrows {
		_, err := svc.GetBorrow(b.BorrowID)
		assert.ErrorIs(t, err, services.ErrBorrowNotFound)
	}

	// The books themselves survive.
	_, err = svc.GetBook(book1.BookID)
	assert.NoError(t, err)
}

func TestDeleteBookCascadesDependents(t *testing.T) {
	svc, _ := newTestService(t)
	user := mustCreateUser(t, svc, "Ada", "ada@example.com")
	book := mustCreateBook(t, svc, "Dune", "9780441013593")

	details := &models.BookDetails{BookID: book.BookID, NumberOfPages: 412, Publisher: "Chilton", Language: "English"}
	require.NoError(t, svc.CreateBookDetails([]*models.BookDetails{details}))
	borrow := &models.BorrowedBook{UserID: user.UserID, BookID: book.BookID, BorrowDate: models.NewDate(2024, 6, 1)}
	require.NoError(t, svc.CreateBorrows([]*models.BorrowedBook{borrow}))

	require.NoError(t, svc.DeleteBook(book.BookID))

	_, err := svc.GetBook(book.BookID)
	assert.ErrorIs(t, err, services.ErrBookNotFound)
	_, err = svc.GetBookDetails(details.DetailsID)
	assert.ErrorIs(t, err, services.ErrDetailsNotFound)
	_, err = svc.GetBorrow(borrow.BorrowID)
	assert.ErrorIs(t, err, services.ErrBorrowNotFound)

	// The borrowing user survives.
	_, err = svc.GetUser(user.UserID)
	assert.NoError(t, err)
}

func TestCreateBorrowUnknownReferences(t *testing.T) {
	svc, _ := newTestService(t)
	user := mustCreateUser(t, svc, "Ada", "ada@example.com")

	err := svc.CreateBorrows([]*models.BorrowedBook{
		{UserID: user.UserID, BookID: 42, BorrowDate: models.NewDate(2024, 6, 1)},
	})
	var verrs services.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "BookID", verrs[0].Field)

	listed, err := svc.ListBorrows()
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCreateBorrowReturnBeforeBorrow(t *testing.T) {
	svc, _ := newTestService(t)
	user := mustCreateUser(t, svc, "Ada", "ada@example.com")
	book := mustCreateBook(t, svc, "Dune", "9780441013593")

	returned := models.NewDate(2024, 5, 1)
	err := svc.CreateBorrows([]*models.BorrowedBook{
		{UserID: user.UserID, BookID: book.BookID, BorrowDate: models.NewDate(2024, 6, 1), ReturnDate: &returned},
	})
	var verrs services.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "ReturnDate", verrs[0].Field)
}

func TestUpdateBorrowReturnBeforeBorrow(t *testing.T) {
	svc, _ := newTestService(t)
	user := mustCreateUser(t, svc, "Ada", "ada@example.com")
	book := mustCreateBook(t, svc, "Dune", "9780441013593")

	borrow := &models.BorrowedBook{UserID: user.UserID, BookID: book.BookID, BorrowDate: models.NewDate(2024, 6, 1)}
	require.NoError(t, svc.CreateBorrows([]*models.BorrowedBook{borrow}))

	returned := models.NewDate(2024, 5, 1)
	borrow.ReturnDate = &returned
	assert.ErrorIs(t, svc.UpdateBorrow(borrow), services.ErrReturnBeforeBorrow)
}

func TestListUserBorrowsEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	user := mustCreateUser(t, svc, "Ada", "ada@example.com")

	borrows, err := svc.ListUserBorrows(user.UserID)
	require.NoError(t, err)
	require.NotNil(t, borrows)
	assert.Empty(t, borrows)

	// Unknown user also yields an empty slice, not an error.
	borrows, err = svc.ListUserBorrows(9999)
	require.NoError(t, err)
	require.NotNil(t, borrows)
	assert.Empty(t, borrows)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateUser(t, svc, "Ada", "ada@example.com")
	other := mustCreateUser(t, svc, "Alan", "alan@example.com")

	other.Email = "ada@example.com"
	assert.ErrorIs(t, svc.UpdateUser(other), services.ErrEmailTaken)
}

func TestUpdateBookISBNConflict(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateBook(t, svc, "Dune", "1111111111111")
	other := mustCreateBook(t, svc, "Hyperion", "2222222222222")

	other.ISBN = "1111111111111"
	assert.ErrorIs(t, svc.UpdateBook(other), services.ErrISBNTaken)
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetUser(1)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	_, err = svc.GetBook(1)
	assert.ErrorIs(t, err, services.ErrBookNotFound)
	_, err = svc.GetBookDetails(1)
	assert.ErrorIs(t, err, services.ErrDetailsNotFound)
	_, err = svc.GetBorrow(1)
	assert.ErrorIs(t, err, services.ErrBorrowNotFound)

	assert.ErrorIs(t, svc.DeleteUser(1), services.ErrUserNotFound)
	assert.ErrorIs(t, svc.DeleteBook(1), services.ErrBookNotFound)
}

func TestBorrowDateRoundTripThroughStore(t *testing.T) {
	svc, _ := newTestService(t)
	user := mustCreateUser(t, svc, "Ada", "ada@example.com")
	book := mustCreateBook(t, svc, "Dune", "9780441013593")

	returned := models.NewDate(2024, 6, 20)
	borrow := &models.BorrowedBook{
		UserID:     user.UserID,
		BookID:     book.BookID,
		BorrowDate: models.NewDate(2024, 6, 1),
		ReturnDate: &returned,
	}
	require.NoError(t, svc.CreateBorrows([]*models.BorrowedBook{borrow}))

	got, err := svc.GetBorrow(borrow.BorrowID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got.BorrowDate.String())
	require.NotNil(t, got.ReturnDate)
	assert.Equal(t, "2024-06-20", got.ReturnDate.String())
}

func TestValidationErrorsMessage(t *testing.T) {
	verrs := services.ValidationErrors{
		{Index: 0, Field: "Email", Message: "email already in use"},
		{Index: 2, Message: "malformed"},
	}
	msg := verrs.Error()
	assert.Contains(t, msg, "item 0: Email")
	assert.Contains(t, msg, "item 2: malformed")
	assert.False(t, errors.Is(verrs, services.ErrEmailTaken))
}
