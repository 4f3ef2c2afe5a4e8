package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
	"github.com/go-playground/validator/v10"
)

type RegisterInput struct {
	FullName        string `json:"fullName" validate:"required,max=150"`
	Email           string `json:"email" validate:"required,email,max=100"`
	Phone           string `json:"phone" validate:"omitempty,min=8,max=20"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthService struct {
	userRepo  repositories.UserRepositoryImpl
	validator *validator.Validate
}

func NewAuthService(userRepo repositories.UserRepositoryImpl, validator *validator.Validate) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		validator: validator,
	}
}

func (s *AuthService) validate(v interface{}) error {
	if err := s.validator.Struct(v); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return apperror.NewInvalidFields("Dữ liệu không hợp lệ.", helpers.FormatValidationErrors(validationErrors))
		}
		return err
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, apperror.NewConflict("Email đã được đăng ký.")
	}

	hashed, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: hashed,
		Role:     models.RoleCustomer,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login returns Unauthorized for an unknown email and a wrong password alike.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(in.Password)) {
		return nil, apperror.NewUnauthorized("Email hoặc mật khẩu không đúng.")
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, apperror.NewUnauthorized("Vui lòng đăng nhập.")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, apperror.NewUnauthorized("Phiên đăng nhập không hợp lệ.")
	}
	return user, nil
}
