package models

import "time"

// Startup is a user-submitted listing entry. Logo, when set, names a file
// in the upload directory generated by the file intake; it is never a raw
// client-supplied filename. Startups are immutable after creation.
type Startup struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"not null"`
	Logo        *string `gorm:"size:255"`

	UserID uint `gorm:"index;not null"`
	User   User `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
}
