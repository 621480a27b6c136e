package models

// User represents a registered account. The password column holds a bcrypt
// hash and is never serialized.
type User struct {
	Base
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	Expenses []Expense `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
}
