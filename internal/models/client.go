package models

// Client represents an account holder.
type Client struct {
	Base
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"not null" json:"email"`
}

// ClientCategory links a client to a category. The table carries no unique
// constraint, so the same pair may be stored more than once.
type ClientCategory struct {
	ClientID   uint `gorm:"not null;index" json:"client_id"`
	CategoryID uint `gorm:"not null;index" json:"category_id"`
}
