package service

import (
	"errors"

	"clinicbook/cmd/internal/auth"
	"clinicbook/cmd/internal/domain/entity"
	"clinicbook/cmd/internal/utils"
	"clinicbook/cmd/internal/utils/apierror"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByEmail(email string) (*entity.User, error)
	Create(user *entity.User) error
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64,hasupper,haslower,hasdigit,hasspecial"`
}

type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type DefaultUserService struct {
	UserRepo UserRepository
	Validate *validator.Validate
	Tokens   *auth.Tokens
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, tokens *auth.Tokens) *DefaultUserService {
	return &DefaultUserService{UserRepo: userRepo, Validate: validate, Tokens: tokens}
}

// Register creates a patient account. Email uniqueness is enforced by the
// store's unique index, not by a pre-check, so two concurrent registrations of
// the same address cannot both succeed.
func (u *DefaultUserService) Register(req *RegisterRequest) (*RegisterResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         entity.RolePatient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = u.UserRepo.Create(user)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apierror.EmailExistsError
	}
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}

	return &RegisterResponse{ID: user.ID, Email: user.Email}, nil
}

// Login verifies the credentials and issues a bearer token carrying the user
// id and role. Unknown email and wrong password are indistinguishable to the
// caller.
func (u *DefaultUserService) Login(req *LoginRequest) (*LoginResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	user, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user by email: %v", err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		return nil, apierror.InvalidCredentialsError
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.InvalidCredentialsError
	}

	token, err := u.Tokens.Sign(user.ID, user.Role)
	if err != nil {
		log.Errorf("failed to sign token for user %s: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	return &LoginResponse{Token: token, Role: user.Role}, nil
}
