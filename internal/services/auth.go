package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/schema"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// Session is the identity carried by a signed token
type Session struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the session carries the admin role
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// AuthService handles accounts and session tokens
type AuthService struct {
	users      UserStore
	jwtSecret  string
	ttl        time.Duration
	bcryptCost int
	now        func() time.Time
}

// NewAuthService creates a new auth service. A zero ttl selects one week.
func NewAuthService(users UserStore, jwtSecret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		users:      users,
		jwtSecret:  jwtSecret,
		ttl:        ttl,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// TTL is the lifetime of issued tokens
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

// GenerateJWT generates a JWT token for a user
func (s *AuthService) GenerateJWT(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     now.Add(s.ttl).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the session it carries
func (s *AuthService) ValidateJWT(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, errors.New("user_id not found in token")
	}
	role, _ := claims["role"].(string)

	return &Session{UserID: userID, Role: role}, nil
}

// Register creates an account with the user role and signs a token for it
func (s *AuthService) Register(ctx context.Context, in schema.RegisterInput) (*models.User, string, error) {
	user, err := s.createUser(ctx, in.Name, in.Email, in.Password, models.RoleUser)
	if err != nil {
		return nil, "", err
	}
	token, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CreateAdmin creates an operator account
func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password string) (*models.User, error) {
	return s.createUser(ctx, name, email, password, models.RoleAdmin)
}

func (s *AuthService) createUser(ctx context.Context, name, email, password, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and signs a token
func (s *AuthService) Login(ctx context.Context, in schema.LoginInput) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Me resolves the session to its stored user. A nil session or a user that
// no longer exists yields nil without error.
func (s *AuthService) Me(ctx context.Context, session *Session) (*models.User, error) {
	if session == nil {
		return nil, nil
	}
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
