package customer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"customer-api/internal/event"

	"github.com/google/uuid"
)

const (
	inputValidationPassed = "Input validation passed"
	customerNotFound      = "Customer not found by repository"
)

// ProfileImageKey derives the object-storage key for a customer's
// profile image. One blob per (customer, image) pair; re-uploads mint a
// fresh image id and leave the previous blob unreferenced.
func ProfileImageKey(customerID int64, imageID string) string {
	return fmt.Sprintf("profile-images/%d/%s", customerID, imageID)
}

// ProfileImagePrefix is the key prefix shared by every profile image in
// the customer bucket.
const ProfileImagePrefix = "profile-images/"

// PasswordHasher is the one-way credential transform.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Compare(hash, raw string) error
}

// ObjectStore puts and gets byte blobs under a bucket and key.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, data []byte) error
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	RemoveObject(ctx context.Context, bucket, key string) error
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
}

type RegistrationRequest struct {
	Name     string
	Email    string
	Password string
	Age      int
	Gender   Gender
}

// UpdateRequest is a partial patch; nil fields are left untouched.
type UpdateRequest struct {
	Name  *string
	Email *string
	Age   *int
}

type Service interface {
	ListCustomers(ctx context.Context) ([]DTO, error)
	GetCustomer(ctx context.Context, customerID int64) (DTO, error)
	RegisterCustomer(ctx context.Context, req RegistrationRequest) (DTO, error)
	UpdateCustomer(ctx context.Context, customerID int64, req UpdateRequest) error
	DeleteCustomer(ctx context.Context, customerID int64) error
	UploadProfileImage(ctx context.Context, customerID int64, file io.Reader) error
	GetProfileImage(ctx context.Context, customerID int64) ([]byte, error)
	Login(ctx context.Context, email, password string) (DTO, error)
}

var _ Service = (*customerService)(nil)

type customerService struct {
	repo   Repository
	hasher PasswordHasher
	store  ObjectStore
	bucket string
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, store ObjectStore, bucket string, pub event.EventPublisher, logger *slog.Logger) Service {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if hasher == nil {
		panic("password hasher cannot be nil")
	}
	if store == nil {
		panic("object store cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewService, using default stderr handler")
	}
	if pub == nil {
		pub = event.NoopPublisher{}
	}

	return &customerService{
		repo:   repo,
		hasher: hasher,
		store:  store,
		bucket: bucket,
		pub:    pub,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func newCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID:     cust.ID,
		Name:           cust.Name,
		Email:          cust.Email,
		Age:            cust.Age,
		Gender:         string(cust.Gender),
		ProfileImageID: cust.ProfileImageID,
		CreatedAt:      cust.CreatedAt,
		UpdatedAt:      cust.UpdatedAt,
	}
}

func (s *customerService) publishUpdated(ctx context.Context, cust *Customer) {
	ev := event.CustomerUpdatedEvent{
		Timestamp: time.Now(),
		Payload:   newCustomerEventPayload(cust),
	}
	if err := s.pub.PublishCustomerUpdated(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish customer update event",
			slog.Int64("customerID", cust.ID), slog.Any("error", err))
	}
}

func (s *customerService) ListCustomers(ctx context.Context) ([]DTO, error) {
	s.logger.DebugContext(ctx, "Attempting to list all customers")

	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	dtos := make([]DTO, len(customers))
	for i, cust := range customers {
		dtos[i] = NewDTO(cust)
	}

	s.logger.InfoContext(ctx, "Successfully listed customers", slog.Int("count", len(dtos)))
	return dtos, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (DTO, error) {
	s.logger.DebugContext(ctx, "Attempting to get customer by ID", slog.Int64("customerID", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound, slog.Int64("customerID", customerID))
			return DTO{}, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return DTO{}, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	return NewDTO(cust), nil
}

func (s *customerService) RegisterCustomer(ctx context.Context, req RegistrationRequest) (DTO, error) {
	s.logger.InfoContext(ctx, "Attempting to register new customer")

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		s.logger.WarnContext(ctx, "Validation failed: name is empty")
		return DTO{}, errors.New("customer name cannot be empty")
	}
	if email == "" {
		s.logger.WarnContext(ctx, "Validation failed: email is empty", slog.String("name", name))
		return DTO{}, errors.New("customer email cannot be empty")
	}
	if req.Age < 0 {
		s.logger.WarnContext(ctx, "Validation failed: age is negative")
		return DTO{}, errors.New("customer age cannot be negative")
	}
	s.logger.DebugContext(ctx, inputValidationPassed)

	taken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error checking email uniqueness", slog.Any("error", err))
		return DTO{}, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if taken {
		s.logger.WarnContext(ctx, "Registration rejected: email already taken")
		return DTO{}, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return DTO{}, fmt.Errorf("failed to hash password: %w", err)
	}

	cust := NewCustomer(name, email, hash, req.Age, req.Gender)

	// The uniqueness check above is not atomic with this insert; the
	// relational backend's unique index is the backstop and surfaces
	// as ErrEmailTaken here.
	if err := s.repo.Insert(ctx, cust); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			s.logger.WarnContext(ctx, "Insert rejected by unique index: email already taken")
			return DTO{}, ErrEmailTaken
		}
		s.logger.ErrorContext(ctx, "Repository failed to insert new customer", slog.Any("error", err))
		return DTO{}, fmt.Errorf("failed to register new customer: %w", err)
	}

	createdEvent := event.CustomerCreatedEvent{
		Timestamp: time.Now(),
		Payload:   newCustomerEventPayload(cust),
	}
	if pubErr := s.pub.PublishCustomerCreated(ctx, createdEvent); pubErr != nil {
		s.logger.ErrorContext(ctx, "Customer registered, but failed to publish creation event", slog.Any("error", pubErr))
	}

	s.logger.InfoContext(ctx, "Successfully registered new customer", slog.Int64("customerID", cust.ID))
	return NewDTO(cust), nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, req UpdateRequest) error {
	s.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound, slog.Int64("customerID", customerID))
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return fmt.Errorf("cannot find customer %d to update: %w", customerID, err)
	}

	changed := false

	if req.Name != nil && *req.Name != cust.Name {
		cust.Name = *req.Name
		changed = true
	}

	if req.Email != nil && *req.Email != cust.Email {
		taken, err := s.repo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			s.logger.ErrorContext(ctx, "Repository error checking email uniqueness", slog.Any("error", err))
			return fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if taken {
			s.logger.WarnContext(ctx, "Update rejected: email already taken")
			return ErrEmailTaken
		}
		cust.Email = *req.Email
		changed = true
	}

	if req.Age != nil && *req.Age != cust.Age {
		cust.Age = *req.Age
		changed = true
	}

	if !changed {
		s.logger.WarnContext(ctx, "Update rejected: no data changes found")
		return ErrNoChanges
	}

	cust.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, cust); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.ErrorContext(ctx, "Customer disappeared before update completed")
			return ErrNotFound
		}
		if errors.Is(err, ErrEmailTaken) {
			s.logger.WarnContext(ctx, "Update rejected by unique index: email already taken")
			return ErrEmailTaken
		}
		s.logger.ErrorContext(ctx, "Repository failed to persist customer update", slog.Any("error", err))
		return fmt.Errorf("failed to update customer %d: %w", customerID, err)
	}

	s.publishUpdated(ctx, cust)

	s.logger.InfoContext(ctx, "Successfully updated customer", slog.Int64("customerID", customerID))
	return nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	s.logger.InfoContext(ctx, "Attempting to delete customer", slog.Int64("customerID", customerID))

	exists, err := s.repo.ExistsByID(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error checking customer existence", slog.Any("error", err))
		return fmt.Errorf("failed to check customer %d existence: %w", customerID, err)
	}
	if !exists {
		s.logger.WarnContext(ctx, customerNotFound, slog.Int64("customerID", customerID))
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer disappeared before delete completed")
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	deletedEvent := event.CustomerDeletedEvent{
		CustomerID: customerID,
		Timestamp:  time.Now(),
	}
	if pubErr := s.pub.PublishCustomerDeleted(ctx, deletedEvent); pubErr != nil {
		s.logger.ErrorContext(ctx, "Customer deleted, but failed to publish deletion event", slog.Any("error", pubErr))
	}

	s.logger.InfoContext(ctx, "Successfully deleted customer", slog.Int64("customerID", customerID))
	return nil
}

func (s *customerService) UploadProfileImage(ctx context.Context, customerID int64, file io.Reader) error {
	s.logger.InfoContext(ctx, "Attempting to upload profile image", slog.Int64("customerID", customerID))

	exists, err := s.repo.ExistsByID(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error checking customer existence", slog.Any("error", err))
		return fmt.Errorf("failed to check customer %d existence: %w", customerID, err)
	}
	if !exists {
		s.logger.WarnContext(ctx, customerNotFound, slog.Int64("customerID", customerID))
		return ErrNotFound
	}

	imageID := uuid.New().String()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read profile image bytes", slog.Any("error", err))
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	key := ProfileImageKey(customerID, imageID)
	if err := s.store.PutObject(ctx, s.bucket, key, data); err != nil {
		s.logger.ErrorContext(ctx, "Object store failed to put profile image",
			slog.String("key", key), slog.Any("error", err))
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	if err := s.repo.SetProfileImageID(ctx, customerID, imageID); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.ErrorContext(ctx, "Customer disappeared before image reference was saved")
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository failed to save profile image reference", slog.Any("error", err))
		return fmt.Errorf("failed to save profile image reference for customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully uploaded profile image",
		slog.Int64("customerID", customerID), slog.String("imageID", imageID))
	return nil
}

func (s *customerService) GetProfileImage(ctx context.Context, customerID int64) ([]byte, error) {
	s.logger.DebugContext(ctx, "Attempting to get profile image", slog.Int64("customerID", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound, slog.Int64("customerID", customerID))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	if cust.ProfileImageID == nil {
		s.logger.WarnContext(ctx, "Customer has no profile image", slog.Int64("customerID", customerID))
		return nil, ErrProfileImageNotFound
	}

	key := ProfileImageKey(customerID, *cust.ProfileImageID)
	data, err := s.store.GetObject(ctx, s.bucket, key)
	if err != nil {
		s.logger.ErrorContext(ctx, "Object store failed to get profile image",
			slog.String("key", key), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get profile image for customer %d: %w", customerID, err)
	}

	return data, nil
}

func (s *customerService) Login(ctx context.Context, email, password string) (DTO, error) {
	s.logger.InfoContext(ctx, "Attempting customer login")

	cust, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Absence is indistinguishable from a bad password.
			s.logger.WarnContext(ctx, "Login rejected: unknown email")
			return DTO{}, ErrInvalidCredentials
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer by email", slog.Any("error", err))
		return DTO{}, fmt.Errorf("failed to find customer by email: %w", err)
	}

	if err := s.hasher.Compare(cust.PasswordHash, password); err != nil {
		s.logger.WarnContext(ctx, "Login rejected: password mismatch", slog.Int64("customerID", cust.ID))
		return DTO{}, ErrInvalidCredentials
	}

	s.logger.InfoContext(ctx, "Successfully authenticated customer", slog.Int64("customerID", cust.ID))
	return NewDTO(cust), nil
}
