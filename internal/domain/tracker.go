package domain

import (
	"bytes"               // JSON literal inspection
	"database/sql"        // Scanner interface check
	"database/sql/driver" // Valuer interface
	"encoding/json"       // JSON encoding/decoding
	"errors"              // Error values
	"fmt"                 // Scan type errors
	"time"                // Timestamps
)

// TrackerRecord Model, one row of the money tracker list
type TrackerRecord struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`    // Store-assigned id
	Name      string    `gorm:"type:text" json:"name"`           // Person name as entered
	AllMoney  AllMoney  `gorm:"type:text" json:"allMoney"`       // Amount as entered
	Email     string    `gorm:"type:text" json:"email"`          // Contact email as entered
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"` // Insertion time, used for ordering
}

// TableName for the tracker list collection
func (TrackerRecord) TableName() string {
	return "tracker_users"
}

// AllMoney holds an amount exactly as it was submitted. Forms send strings,
// JSON clients may send numbers; the literal text and its JSON kind are both
// kept so a number comes back as a number.
type AllMoney struct {
	Text     string // Literal text as submitted
	IsNumber bool   // Submitted as a JSON number
}

var (
	_ json.Marshaler   = AllMoney{}
	_ json.Unmarshaler = (*AllMoney)(nil)
	_ driver.Valuer    = AllMoney{}
	_ sql.Scanner      = (*AllMoney)(nil)
)

// MoneyText is an amount submitted as text, e.g. from a form
func MoneyText(s string) AllMoney {
	return AllMoney{Text: s}
}

// MoneyNumber is an amount submitted as a JSON number literal
func MoneyNumber(s string) AllMoney {
	return AllMoney{Text: s, IsNumber: true}
}

func (m AllMoney) String() string {
	return m.Text
}

// MarshalJSON writes numbers bare and everything else as a JSON string
func (m AllMoney) MarshalJSON() ([]byte, error) {
	if m.IsNumber {
		return []byte(m.Text), nil // Kept verbatim from the request
	}
	return json.Marshal(m.Text)
}

// UnmarshalJSON accepts a JSON string or a JSON number
func (m *AllMoney) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = AllMoney{} // Treat null as empty
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = MoneyText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("allMoney must be a string or a number")
	}
	*m = MoneyNumber(n.String())
	return nil
}

// Value stores the amount as its JSON literal, so the kind survives the round trip
func (m AllMoney) Value() (driver.Value, error) {
	b, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads a stored JSON literal; text that is not one is taken as a plain string
func (m *AllMoney) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = AllMoney{} // NULL column
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("domain.AllMoney.Scan: unsupported type %T", src)
	}
	if err := m.UnmarshalJSON(raw); err != nil {
		*m = MoneyText(string(raw)) // Rows written before the kind was kept
	}
	return nil
}
