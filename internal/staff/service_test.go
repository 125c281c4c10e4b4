package staff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetStaff(ctx context.Context, id uint) (*Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Staff), args.Error(1)
}

func (m *MockRepository) GetStaffByUsername(ctx context.Context, username string) (*Staff, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Staff), args.Error(1)
}

func (m *MockRepository) GetAllStaff(ctx context.Context, onlyActive bool) ([]*Staff, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Staff), args.Error(1)
}

func (m *MockRepository) CreateStaff(ctx context.Context, s *Staff) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) UpdateStaff(ctx context.Context, id uint, params UpdateStaffParams) (*Staff, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Staff), args.Error(1)
}

func (m *MockRepository) DeleteStaff(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	member := &Staff{ID: 5, Username: "dana", Role: "waiter", HashedPassword: hash, IsActive: true}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "test-secret")

		fresh := *member
		repo.On("GetStaffByUsername", ctx, "dana").Return(&fresh, nil).Once()
		repo.On("TouchLastLogin", ctx, uint(5), mock.AnythingOfType("time.Time")).Return(nil).Once()

		token, got, err := svc.Login(ctx, "dana", "hunter2")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotNil(t, got.LastLogin)

		claims, err := ParseToken("test-secret", token)
		assert.NoError(t, err)
		assert.Equal(t, uint(5), claims.StaffID)
		repo.AssertExpectations(t)
	})

	t.Run("Error - Unknown username and wrong password look the same", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "test-secret")

		repo.On("GetStaffByUsername", ctx, "nobody").Return(nil, nil).Once()
		_, _, errUnknown := svc.Login(ctx, "nobody", "hunter2")

		fresh := *member
		repo.On("GetStaffByUsername", ctx, "dana").Return(&fresh, nil).Once()
		_, _, errWrongPass := svc.Login(ctx, "dana", "wrong")

		assert.Equal(t, ErrInvalidCredentials, errUnknown)
		assert.Equal(t, ErrInvalidCredentials, errWrongPass)
	})

	t.Run("Error - Inactive account", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "test-secret")

		inactive := *member
		inactive.IsActive = false
		repo.On("GetStaffByUsername", ctx, "dana").Return(&inactive, nil).Once()

		_, _, err := svc.Login(ctx, "dana", "hunter2")

		assert.Equal(t, ErrInactiveAccount, err)
		repo.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_CreateStaff(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - password is stored hashed, role defaults", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "test-secret")

		repo.On("CreateStaff", ctx, mock.MatchedBy(func(s *Staff) bool {
			return s.Username == "dana" &&
				s.Role == "waiter" &&
				s.HashedPassword != "hunter2" &&
				CheckPasswordHash("hunter2", s.HashedPassword)
		})).Return(nil).Once()

		got, err := svc.CreateStaff(ctx, CreateStaffParams{Username: "dana", Password: "hunter2"})

		assert.NoError(t, err)
		assert.Equal(t, "waiter", got.Role)
		repo.AssertExpectations(t)
	})

	t.Run("Success - explicit role kept", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "test-secret")

		repo.On("CreateStaff", ctx, mock.MatchedBy(func(s *Staff) bool {
			return s.Role == "manager"
		})).Return(nil).Once()

		got, err := svc.CreateStaff(ctx, CreateStaffParams{Username: "sam", Password: "pw", Role: "manager"})

		assert.NoError(t, err)
		assert.Equal(t, "manager", got.Role)
	})
}

func TestService_GetStaff(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	svc := NewService(repo, "test-secret")

	repo.On("GetStaff", ctx, uint(99)).Return(nil, nil).Once()

	_, err := svc.GetStaff(ctx, 99)

	assert.Equal(t, ErrStaffNotFound, err)
}
