package memory

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"customer-api/internal/domain/customer"
	"customer-api/internal/pkg/hash"
)

func newTestRepo() *CustomerRepository {
	return NewCustomerRepository(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMemoryRepositorySeedData(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	customers, err := repo.FindAll(ctx)

	assert.NoError(t, err)
	assert.Len(t, customers, 2)
	assert.Equal(t, "Alex", customers[0].Name)
	assert.Equal(t, 21, customers[0].Age)
	assert.Equal(t, customer.GenderMale, customers[0].Gender)
	assert.Equal(t, "Jamila", customers[1].Name)
	assert.Equal(t, 19, customers[1].Age)
}

func TestMemoryRepositoryFindByID(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	cust, err := repo.FindByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "alex@gmail.com", cust.Email)

	_, err = repo.FindByID(ctx, 42)
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestMemoryRepositoryFindByEmail(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	cust, err := repo.FindByEmail(ctx, "jamila@gmail.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), cust.ID)

	_, err = repo.FindByEmail(ctx, "nobody@gmail.com")
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestMemoryRepositoryInsert(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	cust := customer.NewCustomer("Kim", "kim@gmail.com", "hash", 30, customer.GenderFemale)
	err := repo.Insert(ctx, cust)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), cust.ID)
	assert.False(t, cust.CreatedAt.IsZero())

	second := customer.NewCustomer("Lee", "lee@gmail.com", "hash", 25, customer.GenderMale)
	assert.NoError(t, repo.Insert(ctx, second))
	assert.Equal(t, int64(4), second.ID)

	customers, _ := repo.FindAll(ctx)
	assert.Len(t, customers, 4)
}

func TestMemoryRepositoryUpdate(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	cust, err := repo.FindByID(ctx, 1)
	assert.NoError(t, err)

	cust.Name = "Alexander"
	assert.NoError(t, repo.Update(ctx, cust))

	updated, _ := repo.FindByID(ctx, 1)
	assert.Equal(t, "Alexander", updated.Name)

	ghost := &customer.Customer{ID: 42, Name: "Ghost"}
	assert.ErrorIs(t, repo.Update(ctx, ghost), customer.ErrNotFound)
}

func TestMemoryRepositoryDelete(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	assert.NoError(t, repo.Delete(ctx, 1))

	_, err := repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, customer.ErrNotFound)

	customers, _ := repo.FindAll(ctx)
	assert.Len(t, customers, 1)

	assert.ErrorIs(t, repo.Delete(ctx, 1), customer.ErrNotFound)
}

func TestMemoryRepositoryExists(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	exists, err := repo.ExistsByID(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByID(ctx, 42)
	assert.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "alex@gmail.com")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@gmail.com")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryRepositoryFindReturnsDetachedRecords(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	cust, err := repo.FindByID(ctx, 1)
	assert.NoError(t, err)

	cust.Name = "Mallory"
	cust.Roles[0] = "ROLE_ADMIN"

	stored, err := repo.FindByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Alex", stored.Name)
	assert.Equal(t, []string{customer.RoleUser}, stored.Roles)

	byEmail, err := repo.FindByEmail(ctx, "alex@gmail.com")
	assert.NoError(t, err)
	byEmail.Email = "mallory@gmail.com"

	_, err = repo.FindByEmail(ctx, "alex@gmail.com")
	assert.NoError(t, err)

	all, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	all[0].Age = 99

	stored, _ = repo.FindByID(ctx, 1)
	assert.Equal(t, 21, stored.Age)
}

func TestMemoryRepositoryInsertDetachesFromCaller(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	cust := customer.NewCustomer("Kim", "kim@gmail.com", "hash", 30, customer.GenderFemale)
	assert.NoError(t, repo.Insert(ctx, cust))

	cust.Name = "Mallory"

	stored, err := repo.FindByID(ctx, cust.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Kim", stored.Name)
}

func TestMemoryRepositoryRejectedUpdateLeavesStoreUntouched(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	store := stubObjectStore{}
	svc := customer.NewService(repo, hash.NewBcryptHasher(), store, "customer", nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	// A patch whose email collides must be rejected without persisting
	// the other fields of the merge.
	newName := "Mallory"
	takenEmail := "jamila@gmail.com"
	err := svc.UpdateCustomer(ctx, 1, customer.UpdateRequest{Name: &newName, Email: &takenEmail})
	assert.ErrorIs(t, err, customer.ErrEmailTaken)

	stored, findErr := repo.FindByID(ctx, 1)
	assert.NoError(t, findErr)
	assert.Equal(t, "Alex", stored.Name)
	assert.Equal(t, "alex@gmail.com", stored.Email)
}

func TestMemoryRepositorySeedCredentials(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	hasher := hash.NewBcryptHasher()
	for _, email := range []string{"alex@gmail.com", "jamila@gmail.com"} {
		cust, err := repo.FindByEmail(ctx, email)
		assert.NoError(t, err)
		assert.NoError(t, hasher.Compare(cust.PasswordHash, "password"),
			"seeded hash for %s should verify against the seed password", email)
	}
}

type stubObjectStore struct{}

func (stubObjectStore) PutObject(context.Context, string, string, []byte) error { return nil }
func (stubObjectStore) GetObject(context.Context, string, string) ([]byte, error) {
	return nil, nil
}
func (stubObjectStore) RemoveObject(context.Context, string, string) error { return nil }
func (stubObjectStore) ListKeys(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func TestMemoryRepositorySetProfileImageID(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	assert.NoError(t, repo.SetProfileImageID(ctx, 1, "image-1"))

	cust, _ := repo.FindByID(ctx, 1)
	if assert.NotNil(t, cust.ProfileImageID) {
		assert.Equal(t, "image-1", *cust.ProfileImageID)
	}

	assert.ErrorIs(t, repo.SetProfileImageID(ctx, 42, "image-1"), customer.ErrNotFound)
}
