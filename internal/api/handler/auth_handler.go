package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"customer-api/internal/api/handler/dto"
	"customer-api/internal/domain/customer"
	"customer-api/internal/pkg/apperrors"
)

type AuthHandler struct {
	service customer.Service
	tokens  tokenIssuer
	logger  *slog.Logger
}

func NewAuthHandler(s customer.Service, tokens tokenIssuer, l *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: s,
		tokens:  tokens,
		logger:  l.With("component", "AuthHandler"),
	}
}

// Login authenticates a customer and mints a bearer token.
//
// @Summary Authenticate a customer
// @Description Verifies the username and password and returns a bearer token alongside the customer record.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request payload"
// @Success 200 {object} dto.AuthenticationResponse "Successfully authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	d, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	signed, err := h.tokens.IssueToken(d.Username, d.Roles)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign token after successful login",
			slog.Int64("customerID", d.ID), slog.Any("error", err))
		respondError(w, fmt.Errorf("failed to issue token: %w", err))
		return
	}

	respondJSON(w, http.StatusOK, dto.AuthenticationResponse{
		Token:    signed,
		Customer: dto.NewCustomerResponse(d),
	})
}
