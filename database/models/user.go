package models

import "time"

// User is a registered account. Password holds the Argon2id hash, never
// the plaintext.
type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"size:255;uniqueIndex;not null"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Password  string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Startups []Startup `gorm:"foreignKey:UserID"`
}
