package memory

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"customer-api/internal/domain/customer"
)

// seedPassword is the plaintext behind the seeded records' credentials,
// matching the development seed migration.
const seedPassword = "password"

// CustomerRepository is a transient, process-local list backend. It is
// not synchronized and is unsafe under concurrent writers; it exists as
// a development fallback, not for production use.
type CustomerRepository struct {
	customers []*customer.Customer
	nextID    int64
	logger    *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

// NewCustomerRepository seeds the list with two starter records so the
// API has data to serve before anything is registered.
func NewCustomerRepository(logger *slog.Logger) *CustomerRepository {
	seedHash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		panic("failed to hash seed password: " + err.Error())
	}

	now := time.Now()
	seed := []*customer.Customer{
		{
			ID:           1,
			Name:         "Alex",
			Email:        "alex@gmail.com",
			PasswordHash: string(seedHash),
			Age:          21,
			Gender:       customer.GenderMale,
			Roles:        []string{customer.RoleUser},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           2,
			Name:         "Jamila",
			Email:        "jamila@gmail.com",
			PasswordHash: string(seedHash),
			Age:          19,
			Gender:       customer.GenderFemale,
			Roles:        []string{customer.RoleUser},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}

	return &CustomerRepository{
		customers: seed,
		nextID:    3,
		logger:    logger.With("component", "MemoryCustomerRepository"),
	}
}

// cloneCustomer detaches a record from the backing slice. Find methods
// must never hand out pointers into the store: callers merge patches
// into the returned struct before deciding whether to write it back.
func cloneCustomer(cust *customer.Customer) *customer.Customer {
	if cust == nil {
		return nil
	}
	out := *cust
	out.Roles = append([]string(nil), cust.Roles...)
	if cust.ProfileImageID != nil {
		imageID := *cust.ProfileImageID
		out.ProfileImageID = &imageID
	}
	return &out
}

func (r *CustomerRepository) FindAll(_ context.Context) ([]*customer.Customer, error) {
	out := make([]*customer.Customer, len(r.customers))
	for i, cust := range r.customers {
		out[i] = cloneCustomer(cust)
	}
	return out, nil
}

func (r *CustomerRepository) FindByID(_ context.Context, customerID int64) (*customer.Customer, error) {
	for _, cust := range r.customers {
		if cust.ID == customerID {
			return cloneCustomer(cust), nil
		}
	}
	return nil, customer.ErrNotFound
}

func (r *CustomerRepository) FindByEmail(_ context.Context, email string) (*customer.Customer, error) {
	for _, cust := range r.customers {
		if cust.Email == email {
			return cloneCustomer(cust), nil
		}
	}
	return nil, customer.ErrNotFound
}

func (r *CustomerRepository) Insert(_ context.Context, cust *customer.Customer) error {
	cust.ID = r.nextID
	r.nextID++
	now := time.Now()
	cust.CreatedAt = now
	cust.UpdatedAt = now
	r.customers = append(r.customers, cloneCustomer(cust))
	r.logger.Debug("Customer inserted", "customerID", cust.ID)
	return nil
}

func (r *CustomerRepository) Update(_ context.Context, cust *customer.Customer) error {
	for i, existing := range r.customers {
		if existing.ID == cust.ID {
			cust.UpdatedAt = time.Now()
			r.customers[i] = cloneCustomer(cust)
			return nil
		}
	}
	return customer.ErrNotFound
}

func (r *CustomerRepository) Delete(_ context.Context, customerID int64) error {
	for i, cust := range r.customers {
		if cust.ID == customerID {
			r.customers = append(r.customers[:i], r.customers[i+1:]...)
			return nil
		}
	}
	return customer.ErrNotFound
}

func (r *CustomerRepository) ExistsByID(_ context.Context, customerID int64) (bool, error) {
	for _, cust := range r.customers {
		if cust.ID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *CustomerRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, cust := range r.customers {
		if cust.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *CustomerRepository) SetProfileImageID(_ context.Context, customerID int64, imageID string) error {
	for _, cust := range r.customers {
		if cust.ID == customerID {
			cust.SetProfileImageID(imageID)
			return nil
		}
	}
	return customer.ErrNotFound
}
