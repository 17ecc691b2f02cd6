package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash  *string   `gorm:"type:varchar(255)"`
	DisplayName   string    `gorm:"type:varchar(100);not null"`
	Discriminator string    `gorm:"type:varchar(8);not null;default:''"`
	AvatarURL     *string   `gorm:"type:text"`
	Role          string    `gorm:"type:varchar(50);not null;default:'user'"`
	Status        string    `gorm:"type:varchar(50);not null;default:'active'"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// Label is the rendered display name with the disambiguating suffix,
// e.g. "Jane Doe#0421". Two users may share a DisplayName; the suffix
// keeps notification attributions unambiguous.
func (u User) Label() string {
	if u.Discriminator == "" {
		return u.DisplayName
	}
	return u.DisplayName + "#" + u.Discriminator
}
