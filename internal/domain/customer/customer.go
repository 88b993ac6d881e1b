package customer

import "time"

// Gender is the customer's declared gender.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// RoleUser is the default role granted to every registered customer.
// Roles feed token issuance only; nothing else in the service checks them.
const RoleUser = "ROLE_USER"

type Customer struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Age            int       `json:"age"`
	Gender         Gender    `json:"gender"`
	Roles          []string  `json:"roles"`
	ProfileImageID *string   `json:"profileImageId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewCustomer builds an unpersisted customer. ID stays 0 until the
// repository assigns one on insert.
func NewCustomer(name, email, passwordHash string, age int, gender Gender) *Customer {
	now := time.Now()
	return &Customer{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Age:          age,
		Gender:       gender,
		Roles:        []string{RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (c *Customer) SetProfileImageID(imageID string) {
	c.ProfileImageID = &imageID
	c.UpdatedAt = time.Now()
}
