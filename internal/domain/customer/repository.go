package customer

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("customer not found")

	ErrEmailTaken = errors.New("email already taken")

	ErrNoChanges = errors.New("no data changes found")

	ErrProfileImageNotFound = errors.New("profile image not found")

	ErrUploadFailed = errors.New("failed to upload profile image")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository is the store contract. Two interchangeable backends exist:
// the durable pgx-backed one and a transient in-memory list for local
// development. Absence is signalled with ErrNotFound; the caller decides
// whether absence is an error.
type Repository interface {
	FindAll(ctx context.Context) ([]*Customer, error)

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// Insert assumes the caller already validated email uniqueness; the
	// store does not re-check beyond its own unique index.
	Insert(ctx context.Context, cust *Customer) error

	// Update replaces the full record. Partial-patch merging happens in
	// the service, not here.
	Update(ctx context.Context, cust *Customer) error

	Delete(ctx context.Context, customerID int64) error

	ExistsByID(ctx context.Context, customerID int64) (bool, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	SetProfileImageID(ctx context.Context, customerID int64, imageID string) error
}
