package services

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/fusionorder/fusion-order-api/models"
)

// UserService implements registration and admin-side user management.
type UserService struct {
	db *gorm.DB
}

// UserPatch is a partial user update. Nil fields are left unchanged.
type UserPatch struct {
	Username *string
	Password *string
	Email    *string
	Phone    *string
	Role     *models.Role
	Enabled  *bool
}

// NewUserService creates a UserService backed by the given database.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new account. The username and, when present, the email
// must not already be taken; the password is hashed before it is persisted.
// The unique indexes on the users table remain the authoritative guard
// against registration races; these checks only give a friendlier error.
func (s *UserService) Register(user *models.User) (*UserView, error) {
	taken, err := s.usernameTaken(user.Username, 0)
	if err != nil {
		return nil, InternalError(err)
	}
	if taken {
		log.Printf("Registration rejected: username %q already exists", user.Username)
		return nil, BusinessError("username already exists")
	}

	if user.Email != nil {
		taken, err := s.emailTaken(*user.Email, 0)
		if err != nil {
			return nil, InternalError(err)
		}
		if taken {
			log.Printf("Registration rejected: email %q already exists", *user.Email)
			return nil, BusinessError("email already exists")
		}
	}

	hash, err := HashPassword(user.Password)
	if err != nil {
		return nil, InternalError(err)
	}
	user.Password = hash

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, BusinessError("username or email already exists")
		}
		return nil, InternalError(err)
	}

	log.Printf("User registered, id: %d, username: %s", user.ID, user.Username)
	return NewUserView(user), nil
}

// Get returns the user with the given id.
func (s *UserService) Get(id uint) (*UserView, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("user", id)
		}
		return nil, InternalError(err)
	}
	return NewUserView(&user), nil
}

// List returns all users in insertion order.
func (s *UserService) List() ([]*UserView, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, InternalError(err)
	}
	views := make([]*UserView, 0, len(users))
	for i := range users {
		views = append(views, NewUserView(&users[i]))
	}
	return views, nil
}

// Update merges the non-nil patch fields onto the stored user. Username and
// email changes are re-checked for uniqueness against all other users, and a
// non-empty password is re-hashed.
func (s *UserService) Update(id uint, patch UserPatch) (*UserView, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("user", id)
		}
		return nil, InternalError(err)
	}

	if patch.Username != nil && *patch.Username != user.Username {
		taken, err := s.usernameTaken(*patch.Username, id)
		if err != nil {
			return nil, InternalError(err)
		}
		if taken {
			return nil, BusinessError("username already exists")
		}
		user.Username = *patch.Username
	}

	if patch.Email != nil && (user.Email == nil || *patch.Email != *user.Email) {
		taken, err := s.emailTaken(*patch.Email, id)
		if err != nil {
			return nil, InternalError(err)
		}
		if taken {
			return nil, BusinessError("email already exists")
		}
		user.Email = patch.Email
	}

	if patch.Phone != nil {
		user.Phone = patch.Phone
	}

	if patch.Role != nil {
		if !patch.Role.IsValid() {
			return nil, ValidationError("invalid role")
		}
		user.Role = *patch.Role
	}

	if patch.Enabled != nil {
		user.Enabled = *patch.Enabled
	}

	if patch.Password != nil && *patch.Password != "" {
		hash, err := HashPassword(*patch.Password)
		if err != nil {
			return nil, InternalError(err)
		}
		user.Password = hash
	}

	if err := s.db.Save(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, BusinessError("username or email already exists")
		}
		return nil, InternalError(err)
	}

	log.Printf("User updated, id: %d, username: %s", id, user.Username)
	return NewUserView(&user), nil
}

// Delete removes the user permanently.
func (s *UserService) Delete(id uint) error {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError("user", id)
		}
		return InternalError(err)
	}
	if err := s.db.Delete(&user).Error; err != nil {
		return InternalError(err)
	}
	log.Printf("User deleted, id: %d", id)
	return nil
}

// usernameTaken reports whether another user (excluding excludeID) already
// holds the username.
func (s *UserService) usernameTaken(username string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (s *UserService) emailTaken(email string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

// isUniqueViolation detects unique-constraint failures from both PostgreSQL
// and SQLite.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
