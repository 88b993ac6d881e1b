package customer

import (
	"context"

	"github.com/stretchr/testify/mock"

	"customer-api/internal/event"
)

type MockRepository struct {
	mock.Mock
}

var _ Repository = (*MockRepository)(nil)

func (_m *MockRepository) FindAll(ctx context.Context) ([]*Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	ret := _m.Called(ctx, email)

	var r0 *Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) Insert(ctx context.Context, cust *Customer) error {
	ret := _m.Called(ctx, cust)
	return ret.Error(0)
}

func (_m *MockRepository) Update(ctx context.Context, cust *Customer) error {
	ret := _m.Called(ctx, cust)
	return ret.Error(0)
}

func (_m *MockRepository) Delete(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}

func (_m *MockRepository) ExistsByID(ctx context.Context, customerID int64) (bool, error) {
	ret := _m.Called(ctx, customerID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ret := _m.Called(ctx, email)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockRepository) SetProfileImageID(ctx context.Context, customerID int64, imageID string) error {
	ret := _m.Called(ctx, customerID, imageID)
	return ret.Error(0)
}

type MockPasswordHasher struct {
	mock.Mock
}

var _ PasswordHasher = (*MockPasswordHasher)(nil)

func (_m *MockPasswordHasher) Hash(raw string) (string, error) {
	ret := _m.Called(raw)
	return ret.String(0), ret.Error(1)
}

func (_m *MockPasswordHasher) Compare(hash, raw string) error {
	ret := _m.Called(hash, raw)
	return ret.Error(0)
}

type MockObjectStore struct {
	mock.Mock
}

var _ ObjectStore = (*MockObjectStore)(nil)

func (_m *MockObjectStore) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	ret := _m.Called(ctx, bucket, key, data)
	return ret.Error(0)
}

func (_m *MockObjectStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	ret := _m.Called(ctx, bucket, key)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func (_m *MockObjectStore) RemoveObject(ctx context.Context, bucket, key string) error {
	ret := _m.Called(ctx, bucket, key)
	return ret.Error(0)
}

func (_m *MockObjectStore) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	ret := _m.Called(ctx, bucket, prefix)

	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}
	return r0, ret.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

var _ event.EventPublisher = (*MockEventPublisher)(nil)

func (_m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, ev event.CustomerCreatedEvent) error {
	ret := _m.Called(ctx, ev)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, ev event.CustomerUpdatedEvent) error {
	ret := _m.Called(ctx, ev)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishCustomerDeleted(ctx context.Context, ev event.CustomerDeletedEvent) error {
	ret := _m.Called(ctx, ev)
	return ret.Error(0)
}
