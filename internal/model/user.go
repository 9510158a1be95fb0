package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an operator allowed to call the protected API
type User struct {
	BaseModel
	Username    string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Password    string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// AllModels lists every table owned by the service, in migration order
func AllModels() []interface{} {
	return []interface{}{&User{}, &Product{}, &LiveSellingEvent{}, &Order{}, &OrderItem{}}
}
