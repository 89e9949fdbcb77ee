package domain

import "time"

// Profile Model, one per account, keyed by the account uid
type Profile struct {
	UID        string    `gorm:"primaryKey;size:36" json:"uid"`        // Account uid
	Email      string    `gorm:"size:255;not null" json:"email"`       // Email at sign-up time
	CreatedAt  time.Time `json:"createdAt"`                            // Assigned by the store
	TotalMoney float64   `gorm:"not null;default:0" json:"totalMoney"` // Starts at 0
}

// TableName for the profiles collection
func (Profile) TableName() string {
	return "profiles"
}
