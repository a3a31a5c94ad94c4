package model

import "time"

// User is a vault account. Password holds a bcrypt hash.
type User struct {
	ID        int64     `gorm:"primaryKey"`
	Login     string    `gorm:"uniqueIndex;not null"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
