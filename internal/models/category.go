package models

// Category is a label that can be attached to any number of clients.
// Name uniqueness is checked by the service before insert, not by the store.
type Category struct {
	Base
	Name string `gorm:"not null;index" json:"name"`
}
