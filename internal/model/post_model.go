package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AuthorId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Author    User      `gorm:"foreignKey:AuthorId" json:"-"`
	Title     string    `gorm:"type:varchar(255)"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Post) TableName() string {
	return "posts"
}

type Comment struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	AuthorId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ParentId  *uuid.UUID `gorm:"type:uuid;index"`
	Body      string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Comment) TableName() string {
	return "comments"
}
