package services

import (
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dressshop/app/models"
	"github.com/shashiranjanraj/dressshop/app/repositories"
	"github.com/shashiranjanraj/dressshop/config"
	"github.com/shashiranjanraj/dressshop/pkg/auth"
	"github.com/shashiranjanraj/dressshop/pkg/logger"
	"github.com/shashiranjanraj/dressshop/pkg/principal"
)

// AuthService handles registration, login and principal resolution for both
// shoppers and admins.
type AuthService struct {
	users  repositories.UserRepo
	admins repositories.AdminRepo
}

// NewAuthService wires the auth service.
func NewAuthService(users repositories.UserRepo, admins repositories.AdminRepo) *AuthService {
	return &AuthService{users: users, admins: admins}
}

// RegisterInput is the payload for user registration.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"nullable"`
	Address  string `json:"address" validate:"nullable"`
}

// RegisterUser creates a shopper account and returns it with a signed token.
func (s *AuthService) RegisterUser(r *http.Request, in RegisterInput) (*models.User, string, error) {
	ctx := r.Context()
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", NewError(http.StatusBadRequest, "User already exists with this email")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:     in.Name,
		Email:    email,
		Password: hash,
		Phone:    in.Phone,
		Address:  in.Address,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID.Hex(), auth.KindUser)
	if err != nil {
		return nil, "", err
	}

	logger.WithCtx(ctx).Info("user registered", "email", user.Email)
	return user, token, nil
}

// LoginUser authenticates a shopper by email and password.
// Wrong email and wrong password return the same message.
func (s *AuthService) LoginUser(r *http.Request, email, password string) (*models.User, string, error) {
	ctx := r.Context()
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", NewError(http.StatusBadRequest, "Invalid email or password")
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, "", NewError(http.StatusBadRequest, "Invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID.Hex(), auth.KindUser)
	if err != nil {
		return nil, "", err
	}

	logger.WithCtx(ctx).Info("user login", "email", user.Email)
	return user, token, nil
}

// LoginAdmin authenticates a back-office account.
func (s *AuthService) LoginAdmin(r *http.Request, email, password string) (*models.Admin, string, error) {
	ctx := r.Context()
	email = strings.ToLower(strings.TrimSpace(email))

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", NewError(http.StatusBadRequest, "Invalid email or password")
	}
	if !auth.CheckPassword(admin.Password, password) {
		return nil, "", NewError(http.StatusBadRequest, "Invalid email or password")
	}

	token, err := auth.GenerateToken(admin.ID.Hex(), auth.KindAdmin)
	if err != nil {
		return nil, "", err
	}

	logger.WithCtx(ctx).Info("admin login", "email", admin.Email)
	return admin, token, nil
}

// EnsureDefaultAdmin creates the bootstrap admin account from ADMIN_EMAIL /
// ADMIN_PASSWORD when it does not exist yet. Returns the admin and whether it
// was newly created.
func (s *AuthService) EnsureDefaultAdmin(r *http.Request) (*models.Admin, bool, error) {
	ctx := r.Context()
	email := strings.ToLower(config.AdminEmail())

	if existing, err := s.admins.FindByEmail(ctx, email); err == nil {
		return existing, false, nil
	}

	hash, err := auth.HashPassword(config.AdminPassword())
	if err != nil {
		return nil, false, err
	}

	admin := &models.Admin{
		Name:      "Admin",
		Email:     email,
		Password:  hash,
		Role:      "admin",
		CreatedAt: time.Now(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, false, err
	}

	logger.WithCtx(ctx).Info("default admin created", "email", admin.Email)
	return admin, true, nil
}

// LoadPrincipal resolves a validated token subject into a live account.
// Satisfies middleware.PrincipalLoader.
func (s *AuthService) LoadPrincipal(r *http.Request, kind, id string) (principal.Principal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return principal.Principal{}, err
	}

	switch kind {
	case auth.KindAdmin:
		admin, err := s.admins.FindByID(r.Context(), oid)
		if err != nil {
			return principal.Principal{}, err
		}
		return principal.Principal{
			ID:    admin.ID.Hex(),
			Kind:  auth.KindAdmin,
			Name:  admin.Name,
			Email: admin.Email,
			Role:  admin.Role,
		}, nil
	default:
		user, err := s.users.FindByID(r.Context(), oid)
		if err != nil {
			return principal.Principal{}, err
		}
		return principal.Principal{
			ID:    user.ID.Hex(),
			Kind:  auth.KindUser,
			Name:  user.Name,
			Email: user.Email,
		}, nil
	}
}
