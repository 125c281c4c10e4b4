package staff

import (
	"context"
	"time"

	"github.com/hector17rock/SeatServe/internal/logger"

	"go.uber.org/zap"
)

// Service defines business logic for staff management and login.
type Service interface {
	GetStaff(ctx context.Context, id uint) (*Staff, error)
	GetAllStaff(ctx context.Context, onlyActive bool) ([]*Staff, error)
	CreateStaff(ctx context.Context, params CreateStaffParams) (*Staff, error)
	UpdateStaff(ctx context.Context, id uint, params UpdateStaffParams) (*Staff, error)
	DeleteStaff(ctx context.Context, id uint) error
	Login(ctx context.Context, username, password string) (string, *Staff, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, jwtSecret: jwtSecret}
}

func (s *service) GetStaff(ctx context.Context, id uint) (*Staff, error) {
	member, err := s.repo.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrStaffNotFound
	}
	return member, nil
}

func (s *service) GetAllStaff(ctx context.Context, onlyActive bool) ([]*Staff, error) {
	return s.repo.GetAllStaff(ctx, onlyActive)
}

func (s *service) CreateStaff(ctx context.Context, params CreateStaffParams) (*Staff, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateStaff"),
		zap.String("username", params.Username),
	)

	hashed, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	member := &Staff{
		Username:       params.Username,
		Email:          params.Email,
		FullName:       params.FullName,
		HashedPassword: hashed,
		Role:           params.Role,
		Phone:          params.Phone,
		HireDate:       params.HireDate,
	}
	if member.Role == "" {
		member.Role = "waiter"
	}

	if err := s.repo.CreateStaff(ctx, member); err != nil {
		log.Error("failed to create staff member", zap.Error(err))
		return nil, err
	}

	log.Info("staff member created", zap.Uint("staff_id", member.ID))
	return member, nil
}

func (s *service) UpdateStaff(ctx context.Context, id uint, params UpdateStaffParams) (*Staff, error) {
	return s.repo.UpdateStaff(ctx, id, params)
}

func (s *service) DeleteStaff(ctx context.Context, id uint) error {
	return s.repo.DeleteStaff(ctx, id)
}

// Login verifies credentials and returns a signed access token. Failures are
// indistinguishable between unknown username and wrong password.
func (s *service) Login(ctx context.Context, username, password string) (string, *Staff, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("username", username),
	)

	member, err := s.repo.GetStaffByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if member == nil || !CheckPasswordHash(password, member.HashedPassword) {
		log.Warn("login rejected")
		return "", nil, ErrInvalidCredentials
	}
	if !member.IsActive {
		return "", nil, ErrInactiveAccount
	}

	token, err := GenerateToken(s.jwtSecret, member.ID, member.Username, member.Role)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.TouchLastLogin(ctx, member.ID, now); err != nil {
		log.Warn("failed to record last login", zap.Error(err))
	}
	member.LastLogin = &now

	log.Info("login succeeded", zap.Uint("staff_id", member.ID))
	return token, member, nil
}
