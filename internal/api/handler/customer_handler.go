package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"customer-api/internal/api/handler/dto"
	"customer-api/internal/domain/customer"
	"customer-api/internal/pkg/apperrors"
)

// maxProfileImageBytes caps the multipart upload size.
const maxProfileImageBytes = 10 << 20

type CustomerHandler struct {
	service customer.Service
	tokens  tokenIssuer
	logger  *slog.Logger
}

type tokenIssuer interface {
	IssueToken(subject string, roles []string) (string, error)
}

func NewCustomerHandler(s customer.Service, tokens tokenIssuer, l *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: s,
		tokens:  tokens,
		logger:  l.With("component", "CustomerHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, customer.ErrNotFound), errors.Is(err, customer.ErrProfileImageNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, customer.ErrEmailTaken):
		status, message = http.StatusConflict, customer.ErrEmailTaken.Error()
	case errors.Is(err, customer.ErrNoChanges):
		status, message = http.StatusUnprocessableEntity, customer.ErrNoChanges.Error()
	case errors.Is(err, customer.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, customer.ErrInvalidCredentials.Error()
	case errors.Is(err, customer.ErrUploadFailed):
		status, message = http.StatusInternalServerError, customer.ErrUploadFailed.Error()
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.As(err, &appErr):
		message = appErr.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func getCustomerIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "customerID")
	if idStr == "" {
		return 0, fmt.Errorf("customerID not found in URL path")
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// ListCustomers returns every registered customer.
//
// @Summary List customers
// @Description Returns all registered customers without their credentials.
// @Tags Customers
// @Produce json
// @Success 200 {array} dto.CustomerResponse "Customers successfully listed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	dtos, err := h.service.ListCustomers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerResponseList(dtos))
}

// GetCustomer retrieves a single customer by ID.
//
// @Summary Retrieve customer details
// @Description Returns a customer by its numeric ID.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "Customer successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	d, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(d))
}

// RegisterCustomer registers a new customer account.
//
// @Summary Register a new customer
// @Description Registers a new customer and returns a bearer token in the Authorization response header.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.RegisterCustomerRequest true "Registration request payload"
// @Success 200 {object} dto.CustomerResponse "Customer successfully registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 409 {object} dto.ErrorResponse "Email already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [post]
func (h *CustomerHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	d, err := h.service.RegisterCustomer(r.Context(), customer.RegistrationRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Gender:   customer.Gender(req.Gender),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if h.tokens != nil {
		signed, tokenErr := h.tokens.IssueToken(d.Username, d.Roles)
		if tokenErr != nil {
			h.logger.ErrorContext(r.Context(), "Customer registered, but token issuance failed",
				slog.Int64("customerID", d.ID), slog.Any("error", tokenErr))
		} else {
			w.Header().Set("Authorization", "Bearer "+signed)
		}
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(d))
}

// UpdateCustomer applies a partial update to a customer.
//
// @Summary Update a customer
// @Description Applies a partial update. Only fields present in the payload change; a payload that changes nothing is rejected.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID"
// @Param request body dto.UpdateCustomerRequest true "Update request payload"
// @Success 200 "Customer successfully updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 409 {object} dto.ErrorResponse "Email already taken"
// @Failure 422 {object} dto.ErrorResponse "No data changes found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	var req dto.UpdateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	err = h.service.UpdateCustomer(r.Context(), customerID, customer.UpdateRequest{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteCustomer removes a customer.
//
// @Summary Delete a customer
// @Description Permanently removes a customer by its ID.
// @Tags Customers
// @Param customerID path int true "Customer ID"
// @Success 204 "Customer successfully deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadProfileImage stores a customer's profile image.
//
// @Summary Upload a profile image
// @Description Accepts a multipart form with a "file" part and stores it as the customer's profile image. Re-uploading replaces the previous image reference.
// @Tags Customers
// @Accept multipart/form-data
// @Produce json
// @Param customerID path int true "Customer ID"
// @Param file formData file true "Image file"
// @Success 200 "Profile image successfully uploaded"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID or missing file part"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to upload profile image"
// @Router /customers/{customerID}/profile-image [post]
// @Security BearerAuth
func (h *CustomerHandler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := r.ParseMultipartForm(maxProfileImageBytes); err != nil {
		respondError(w, fmt.Errorf("%w: invalid multipart form: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, fmt.Errorf("%w: missing file part: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	defer file.Close()

	if err := h.service.UploadProfileImage(r.Context(), customerID, file); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetProfileImage streams a customer's stored profile image.
//
// @Summary Retrieve a profile image
// @Description Returns the raw image bytes for the customer's current profile image.
// @Tags Customers
// @Produce image/jpeg
// @Param customerID path int true "Customer ID"
// @Success 200 {file} binary "Image bytes"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer or profile image not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/profile-image [get]
// @Security BearerAuth
func (h *CustomerHandler) GetProfileImage(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	data, err := h.service.GetProfileImage(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}

	contentType := http.DetectContentType(data)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
