package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/user-account-service/internal/domain/entity"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the interface for user-related database operations.
// Lookups report ErrNotFound when no row matches; writes report
// ErrDuplicateEmail when the unique email constraint is violated.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	List(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetFirstByPhone returns the lowest id user with the phone.
	GetFirstByPhone(ctx context.Context, phone string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}
