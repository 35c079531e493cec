package commands_test

import (
	"context"
	"time"

	"lifebank/internal/core/application/usecases/commands"
	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockBloodRequestRepository struct{ mock.Mock }

func (m *MockBloodRequestRepository) Add(ctx context.Context, r *request.BloodRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockBloodRequestRepository) Update(ctx context.Context, r *request.BloodRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockBloodRequestRepository) Get(ctx context.Context, id uint64) (*request.BloodRequest, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*request.BloodRequest); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockInstanceRepository struct{ mock.Mock }

func (m *MockInstanceRepository) GetAdmin(ctx context.Context) (kernel.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.Identity), args.Error(1)
}

func (m *MockInstanceRepository) SetAdmin(ctx context.Context, admin kernel.Identity) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockInstanceRepository) NextID(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) BloodRequestRepository() ports.BloodRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.BloodRequestRepository)
}

func (m *MockUoW) InstanceRepository() ports.InstanceRepository {
	args := m.Called()
	return args.Get(0).(ports.InstanceRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockInstanceUoWFactory struct{ mock.Mock }

func (m *MockInstanceUoWFactory) Create() commands.InstanceUoW {
	args := m.Called()
	return args.Get(0).(commands.InstanceUoW)
}

type MockAuthenticator struct{ mock.Mock }

func (m *MockAuthenticator) Authenticate(ctx context.Context, claimed kernel.Identity) error {
	args := m.Called(ctx, claimed)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, events ...request.DomainEvent) {
	m.Called(ctx, events)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var (
	now      = time.Unix(1_700_000_000, 0).UTC()
	clock    = fixedClock{now: now}
	admin    = kernel.MustNewIdentity("admin")
	stranger = kernel.MustNewIdentity("hospital-9")
)

func pendingRequest(id uint64) *request.BloodRequest {
	r, err := request.RestoreBloodRequest(
		id, admin, request.ONegative, 450, request.Urgent, request.Pending,
		now.Add(-time.Hour), now.Add(48*time.Hour), nil, nil, "Ward 3", request.Metadata{},
	)
	if err != nil {
		panic(err)
	}
	return r
}
