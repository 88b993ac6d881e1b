package customer

// DTO is the outward projection of a customer. The password hash never
// leaves the domain package.
type DTO struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Gender         Gender   `json:"gender"`
	Age            int      `json:"age"`
	Roles          []string `json:"roles"`
	Username       string   `json:"username"`
	ProfileImageID *string  `json:"profileImageId"`
}

// NewDTO maps a persisted customer to its transfer shape. Deterministic,
// no side effects; absent optional fields stay nil.
func NewDTO(cust *Customer) DTO {
	if cust == nil {
		return DTO{}
	}
	roles := make([]string, len(cust.Roles))
	copy(roles, cust.Roles)

	return DTO{
		ID:             cust.ID,
		Name:           cust.Name,
		Email:          cust.Email,
		Gender:         cust.Gender,
		Age:            cust.Age,
		Roles:          roles,
		Username:       cust.Email,
		ProfileImageID: cust.ProfileImageID,
	}
}
