package entities

import "time"

// Account is a registered user of the catalog. The password column only ever
// holds a bcrypt digest; it is excluded from every JSON response.
type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:25" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:255" json:"email"`
	Password  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Novelist owns a collection of books. Name is stored in normalized form
// (see the sanitize package) and is unique in that form.
type Novelist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:40" json:"name"`
	Books     []Book    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Book belongs to exactly one novelist. Year is kept as the 3-4 digit string
// the client sent; only year is mutable after creation.
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"uniqueIndex;size:50" json:"title"`
	Year      string    `gorm:"size:4" json:"year"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    Novelist  `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Account) TableName() string {
	return "accounts"
}

func (Novelist) TableName() string {
	return "novelists"
}

func (Book) TableName() string {
	return "books"
}
