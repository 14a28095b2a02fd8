package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is an admin credential. Password holds the bcrypt hash at rest; the
// hash is applied in BeforeCreate so a plain password never touches the
// database.
type User struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Username  string    `json:"username" db:"username" gorm:"type:text;not null;unique"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null;unique"`
	Password  string    `json:"-" db:"password" gorm:"type:text;not null"`
	Role      string    `json:"role" db:"role" gorm:"type:text;not null;default:admin"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// ComparePassword checks a candidate password against the stored hash.
func (u *User) ComparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
}
