package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "civicpulse/internal/errors"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/logger"
	"civicpulse/internal/models"
	"civicpulse/internal/uuid"
)

// DefaultUsers are seeded into an empty database so every role can log in.
var DefaultUsers = []models.User{
	{Name: "Citizen User", Email: "citizen@civicpulse.com", Role: lifecycle.RoleCitizen},
	{Name: "Super Admin", Email: "admin@civicpulse.com", Role: lifecycle.RoleAdmin},
	{Name: "John Doe (Roads)", Email: "roads@civicpulse.com", Role: lifecycle.RoleOfficer, Department: "Road Maintenance"},
	{Name: "Jane Smith (Waste)", Email: "waste@civicpulse.com", Role: lifecycle.RoleOfficer, Department: "Waste Management"},
}

// userService handles user-related business logic.
type userService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, audit AuditServicer) UserServicer {
	return &userService{db: db, audit: audit}
}

// Login finds the user registered under email for the given role. Accounts
// registered with a password must present it.
func (s *userService) Login(email string, role lifecycle.Role, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? AND role = ?", strings.ToLower(strings.TrimSpace(email)), role).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user.Password != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			return nil, apperrors.ErrInvalidCredentials
		}
	}
	return &user, nil
}

// Register creates a new account. The same email may be registered once per role.
func (s *userService) Register(name, email string, role lifecycle.Role, department, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name and email are required")
	}
	if !role.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown role")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ? AND role = ?", email, role).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	if role == lifecycle.RoleOfficer && department == "" {
		department = lifecycle.DefaultOfficerDepartment
	}

	user := &models.User{
		Name:       name,
		Email:      email,
		Role:       role,
		Department: department,
	}

	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		user.Password = string(hashed)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	if !uuid.IsValid(id) {
		return nil, apperrors.ErrUserNotFound
	}
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// ListUsers returns every user in registration order.
func (s *userService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return users, nil
}

// ListUsersByRole returns users holding the given role.
func (s *userService) ListUsersByRole(role lifecycle.Role) ([]models.User, error) {
	if !role.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown role")
	}
	var users []models.User
	if err := s.db.Where("role = ?", role).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return users, nil
}

// AddWarning increments an officer's warning counter.
func (s *userService) AddWarning(actor Actor, userID string) (*models.User, error) {
	return s.bumpCounter(actor, userID, "warnings_count", AuditActionUserWarning)
}

// AddAppreciation increments an officer's appreciation counter.
func (s *userService) AddAppreciation(actor Actor, userID string) (*models.User, error) {
	return s.bumpCounter(actor, userID, "appreciations_count", AuditActionAppreciation)
}

func (s *userService) bumpCounter(actor Actor, userID, column, action string) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Role != lifecycle.RoleOfficer {
		return nil, apperrors.ErrNotAnOfficer
	}

	if err := s.db.Model(user).UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(actor.UserID, action, "user", user.ID, actor.IP, nil)
	return s.GetUserByID(userID)
}

// SeedDefaultUsers inserts the default accounts when the users table is empty.
func (s *userService) SeedDefaultUsers() error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil
	}

	for _, u := range DefaultUsers {
		user := u
		if err := s.db.Create(&user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	logger.Get().Infow("seeded default users", "count", len(DefaultUsers))
	return nil
}
