package models

// Account holds an integer balance owned by a client. ClientID is cleared when
// the owning client is deleted; the account itself is kept.
type Account struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	Balance  int64  `gorm:"type:bigint;not null;default:0" json:"balance"`
	ClientID *uint  `gorm:"index" json:"client_id"`
}
