package dto

import (
	"fmt"
	"net/mail"
	"strings"

	"customer-api/internal/domain/customer"
)

type RegisterCustomerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

func (r *RegisterCustomerRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	if r.Password == "" {
		return fmt.Errorf("password must not be empty")
	}
	if r.Age < 0 {
		return fmt.Errorf("age must not be negative")
	}
	switch customer.Gender(r.Gender) {
	case customer.GenderMale, customer.GenderFemale:
	default:
		return fmt.Errorf("gender must be %s or %s", customer.GenderMale, customer.GenderFemale)
	}
	return nil
}

// UpdateCustomerRequest is a partial patch; absent fields leave the
// current value untouched.
type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Age   *int    `json:"age,omitempty"`
}

func (r *UpdateCustomerRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if r.Email != nil {
		if _, err := mail.ParseAddress(*r.Email); err != nil {
			return fmt.Errorf("invalid email address: %w", err)
		}
	}
	if r.Age != nil && *r.Age < 0 {
		return fmt.Errorf("age must not be negative")
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username must not be empty")
	}
	if r.Password == "" {
		return fmt.Errorf("password must not be empty")
	}
	return nil
}

type CustomerResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Age            int      `json:"age"`
	Gender         string   `json:"gender"`
	Roles          []string `json:"roles"`
	Username       string   `json:"username"`
	ProfileImageID *string  `json:"profileImageId,omitempty"`
}

type AuthenticationResponse struct {
	Token    string           `json:"token"`
	Customer CustomerResponse `json:"customer"`
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func NewCustomerResponse(d customer.DTO) CustomerResponse {
	return CustomerResponse{
		ID:             d.ID,
		Name:           d.Name,
		Email:          d.Email,
		Age:            d.Age,
		Gender:         string(d.Gender),
		Roles:          d.Roles,
		Username:       d.Username,
		ProfileImageID: d.ProfileImageID,
	}
}

func NewCustomerResponseList(dtos []customer.DTO) []CustomerResponse {
	responses := make([]CustomerResponse, len(dtos))
	for i, d := range dtos {
		responses[i] = NewCustomerResponse(d)
	}
	return responses
}
