package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ItemCategory classifies a garment listing.
type ItemCategory string

const (
	CategoryTops        ItemCategory = "tops"
	CategoryDresses     ItemCategory = "dresses"
	CategoryBottoms     ItemCategory = "bottoms"
	CategoryOuterwear   ItemCategory = "outerwear"
	CategoryShoes       ItemCategory = "shoes"
	CategoryAccessories ItemCategory = "accessories"
)

// ItemCondition grades the wear state of a garment.
type ItemCondition string

const (
	ConditionExcellent ItemCondition = "excellent"
	ConditionGood      ItemCondition = "good"
	ConditionFair      ItemCondition = "fair"
	ConditionPoor      ItemCondition = "poor"
)

// StringList stores an ordered list of strings as a JSON column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported StringList source type %T", value)
	}
}

// Item represents a garment listing. New listings start unapproved and do not
// appear in the public catalog until an admin approves them. Approval is a
// one-way flip; rejection deletes the row.
type Item struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Title       string        `json:"title" gorm:"size:255;not null"`
	Description string        `json:"description" gorm:"type:text;not null"`
	Category    ItemCategory  `json:"category" gorm:"type:varchar(20);not null;index"`
	Condition   ItemCondition `json:"condition" gorm:"type:varchar(20);not null"`
	Size        string        `json:"size" gorm:"size:50;not null"`
	Value       int           `json:"value" gorm:"not null"`
	ImageURLs   StringList    `json:"image_urls" gorm:"type:json"`
	Tags        StringList    `json:"tags" gorm:"type:json"`
	OwnerID     uint          `json:"owner_id" gorm:"not null;index"`
	IsApproved  bool          `json:"is_approved" gorm:"not null;default:false;index"`
	IsAvailable bool          `json:"is_available" gorm:"not null;default:true;index"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
}

// OwnerSummary is the public slice of an item owner exposed on item detail.
type OwnerSummary struct {
	Username    string    `json:"username"`
	MemberSince time.Time `json:"member_since"`
}
