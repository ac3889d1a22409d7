package services

import (
	"errors"
	"fmt"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/repositories"
	"github.com/ordena/ordena/pkg/auth"
	"github.com/ordena/ordena/pkg/orm"
	"gorm.io/gorm"
)

// UserInput carries the writable user fields. Password is required on
// create; on update an empty password keeps the existing hash.
type UserInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"nullable,min=8"`
	Role     string `json:"role" validate:"nullable,in=admin,employee,customer"`
}

// UserService owns admin-side user management.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService() *UserService {
	return &UserService{users: repositories.NewUserRepository()}
}

// List returns one page of users ordered by name.
func (s *UserService) List(page, limit int) ([]models.User, orm.Pagination, error) {
	return s.users.All(page, limit)
}

// Find loads one user.
func (s *UserService) Find(id uint) (models.User, error) {
	user, err := s.users.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user: load %d: %w", id, err)
	}
	return user, nil
}

// Create adds a user with a bcrypt-hashed password and a normalized role.
func (s *UserService) Create(in UserInput) (models.User, error) {
	if in.Password == "" {
		return models.User{}, ErrPasswordRequired
	}
	if err := s.ensureEmailFree(in.Email, 0); err != nil {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("user: hash password: %w", err)
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     models.NormalizeRole(in.Role),
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("user: create: %w", err)
	}
	return user, nil
}

// Update replaces a user's fields. The password is re-hashed only when a
// new one is supplied.
func (s *UserService) Update(id uint, in UserInput) (models.User, error) {
	user, err := s.Find(id)
	if err != nil {
		return models.User{}, err
	}
	if err := s.ensureEmailFree(in.Email, id); err != nil {
		return models.User{}, err
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Role = models.NormalizeRole(in.Role)
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("user: hash password: %w", err)
		}
		user.Password = hash
	}

	if err := s.users.Update(&user); err != nil {
		return models.User{}, fmt.Errorf("user: update %d: %w", id, err)
	}
	return user, nil
}

// Delete removes a user.
func (s *UserService) Delete(id uint) error {
	user, err := s.Find(id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(&user); err != nil {
		return fmt.Errorf("user: delete %d: %w", id, err)
	}
	return nil
}

// ensureEmailFree rejects an email already held by a different user.
func (s *UserService) ensureEmailFree(email string, selfID uint) error {
	existing, err := s.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("user: check email: %w", err)
	}
	if existing.ID != selfID {
		return ErrEmailTaken
	}
	return nil
}
