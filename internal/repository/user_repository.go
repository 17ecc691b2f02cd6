package repository

import (
	"context"

	"postboard-be/internal/model"

	"github.com/google/uuid"
)

type UserRepository interface {
	// GetByID returns nil, gorm.ErrRecordNotFound when the user does not
	// exist or is soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type PostRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
}

type CommentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
}
