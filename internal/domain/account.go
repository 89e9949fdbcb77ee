package domain

import "time"

// Account Model, owned by the auth provider
type Account struct {
	ID           uint      `gorm:"primaryKey" json:"-"`                        // Primary key
	UID          string    `gorm:"size:36;uniqueIndex;not null" json:"uid"`    // Provider-assigned unique id
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"` // Lower-cased email
	PasswordHash string    `gorm:"not null" json:"-"`                          // bcrypt hash
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`            // Account creation time
}

// TableName keeps provider accounts apart from the document store tables
func (Account) TableName() string {
	return "auth_accounts"
}
