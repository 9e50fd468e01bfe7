package models

// User is a library member. Email is unique across all users.
type User struct {
	UserID         uint   `gorm:"primaryKey;autoIncrement" json:"UserID"`
	Name           string `gorm:"size:100;not null" json:"Name"`
	Email          string `gorm:"size:254;not null;uniqueIndex" json:"Email"`
	MembershipDate Date   `gorm:"not null" json:"MembershipDate"`
}

// Book is a catalogue entry. ISBN is unique and at most 13 characters.
type Book struct {
	BookID        uint   `gorm:"primaryKey;autoIncrement" json:"BookID"`
	Title         string `gorm:"size:200;not null" json:"Title"`
	ISBN          string `gorm:"size:13;not null;uniqueIndex" json:"ISBN"`
	PublishedDate Date   `gorm:"not null" json:"PublishedDate"`
	Genre         string `gorm:"size:100;not null" json:"Genre"`
}

// BookDetails holds the optional one-to-one supplement of a Book. The unique
// index on BookID is what makes the relationship one-to-one; the row is
// removed together with its book.
type BookDetails struct {
	DetailsID     uint   `gorm:"primaryKey;autoIncrement" json:"DetailsID"`
	BookID        uint   `gorm:"not null;uniqueIndex" json:"BookID"`
	Book          Book   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	NumberOfPages int    `gorm:"not null" json:"NumberOfPages"`
	Publisher     string `gorm:"size:100;not null" json:"Publisher"`
	Language      string `gorm:"size:50;not null" json:"Language"`
}

// BorrowedBook records one user borrowing one book. A nil ReturnDate means the
// book is still out. Rows are removed together with either referenced side.
type BorrowedBook struct {
	BorrowID   uint  `gorm:"primaryKey;autoIncrement" json:"BorrowID"`
	UserID     uint  `gorm:"not null;index" json:"UserID"`
	User       User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	BookID     uint  `gorm:"not null;index" json:"BookID"`
	Book       Book  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	BorrowDate Date  `gorm:"not null" json:"BorrowDate"`
	ReturnDate *Date `json:"ReturnDate"`
}

// Principal is an authentication identity, separate from the catalogue's User
// entity. It exists only so the token endpoints have something to verify
// against.
type Principal struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Username     string `gorm:"size:150;not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"size:72;not null" json:"-"`
}

// All returns every model the store migrates, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Book{},
		&BookDetails{},
		&BorrowedBook{},
		&Principal{},
	}
}
