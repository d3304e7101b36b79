package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/fusionorder/fusion-order-api/models"
)

// AuthService orchestrates login: fetch the user, verify the password,
// check the enabled flag, issue a token.
type AuthService struct {
	db     *gorm.DB
	tokens *TokenService
}

// AuthResult is the login response payload.
type AuthResult struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// NewAuthService creates an AuthService backed by the given database and
// token service.
func NewAuthService(db *gorm.DB, tokens *TokenService) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

// Login verifies the credentials and returns a freshly issued token. An
// unknown username and a wrong password produce the same generic error so
// usernames cannot be enumerated.
func (s *AuthService) Login(username, password string) (*AuthResult, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Login failed: unknown username %q", username)
			return nil, BusinessError("username or password is incorrect")
		}
		return nil, InternalError(err)
	}

	if !CheckPassword(user.Password, password) {
		log.Printf("Login failed: wrong password for %q", username)
		return nil, BusinessError("username or password is incorrect")
	}

	if !user.Enabled {
		log.Printf("Login failed: account disabled for %q", username)
		return nil, BusinessError("account is disabled")
	}

	token, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, InternalError(err)
	}

	log.Printf("Login succeeded, username: %s, role: %s", user.Username, user.Role)
	return &AuthResult{Token: token, Username: user.Username, Role: user.Role}, nil
}
