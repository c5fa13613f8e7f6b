package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"goa.design/goa/v3/security"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seatrade/internal/domain"
	"seatrade/internal/metrics"
	"seatrade/internal/util"
)

// Scopes understood by JWTAuth.
const (
	ScopeAdmin = "admin"
	ScopeStaff = "staff"
)

type ctxKey int

const (
	userKey ctxKey = iota + 1
	claimsKey
)

// UserFromContext returns the authenticated user stored by JWTAuth.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey).(*domain.User)
	return u, ok
}

// ClaimsFromContext returns the token claims stored by JWTAuth.
func ClaimsFromContext(ctx context.Context) (*util.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*util.Claims)
	return c, ok
}

// LoginPayload is the body of a login request.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult carries the issued access token.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresAt   string `json:"expiresAt"`
}

// UserResult is the public view of a user.
type UserResult struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  *string `json:"fullName,omitempty"`
	IsActive  bool    `json:"isActive"`
	IsAdmin   bool    `json:"isAdmin"`
	IsStaff   bool    `json:"isStaff"`
	CreatedAt string  `json:"createdAt"`
	LastLogin *string `json:"lastLogin,omitempty"`
}

// AuthService implements the auth service
type AuthService struct {
	db     *gorm.DB
	tokens *util.TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB, tokens *util.TokenIssuer) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

// JWTAuth implements the authorization logic for the JWT security scheme
func (s *AuthService) JWTAuth(ctx context.Context, token string, schema *security.JWTScheme) (context.Context, error) {
	// Validate JWT token and extract claims
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, Unauthorized("invalid or expired token")
	}

	if claims.ID != "" {
		var revoked int64
		if err := s.db.WithContext(ctx).Model(&domain.RevokedToken{}).Where("jti = ?", claims.ID).Count(&revoked).Error; err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked > 0 {
			return nil, Unauthorized("session has been logged out")
		}
	}

	// Get user from database
	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", claims.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Unauthorized("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Check if user is active
	if !user.IsActive {
		return nil, Unauthorized("user account is inactive")
	}

	// Check scopes if required
	if schema != nil && len(schema.RequiredScopes) > 0 {
		hasScope := false
		for _, requiredScope := range schema.RequiredScopes {
			if requiredScope == ScopeAdmin && util.RequireAdmin(&user) == nil {
				hasScope = true
				break
			}
			if requiredScope == ScopeStaff && util.RequireStaff(&user) == nil {
				hasScope = true
				break
			}
		}
		if !hasScope {
			return nil, Forbidden("insufficient permissions")
		}
	}

	ctx = context.WithValue(ctx, userKey, &user)
	ctx = context.WithValue(ctx, claimsKey, claims)
	return ctx, nil
}

// Login implements the login method
func (s *AuthService) Login(ctx context.Context, p *LoginPayload) (*LoginResult, error) {
	username := strings.TrimSpace(p.Username)
	password := p.Password
	if username == "" || password == "" {
		return nil, BadRequest("username and password are required")
	}

	log.Printf("[AUTH] Login attempt for user: %s", username)

	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[AUTH] Login failed: user '%s' not found", username)
			metrics.RecordAuthAttempt(false)
			return nil, Unauthorized("incorrect username or password")
		}
		log.Printf("[AUTH] Login failed: database error for user '%s': %v", username, err)
		metrics.RecordAuthAttempt(false)
		return nil, err
	}

	if !util.CheckPasswordHash(password, user.HashedPassword) {
		log.Printf("[AUTH] Login failed: invalid password for user '%s'", username)
		metrics.RecordAuthAttempt(false)
		return nil, Unauthorized("incorrect username or password")
	}

	if !user.IsActive {
		log.Printf("[AUTH] Login failed: user '%s' is inactive", username)
		metrics.RecordAuthAttempt(false)
		return nil, Unauthorized("user account is inactive")
	}

	if util.RequireStaff(&user) != nil {
		log.Printf("[AUTH] Login failed: user '%s' has no admin panel access", username)
		metrics.RecordAuthAttempt(false)
		return nil, Forbidden("admin panel access required")
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		log.Printf("[AUTH] Warning: failed to record last login for '%s': %v", username, err)
	}

	token, claims, err := s.tokens.GenerateToken(&user)
	if err != nil {
		log.Printf("[AUTH] Login failed: token generation error for user '%s': %v", username, err)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("[AUTH] Login successful for user '%s' (id=%d, admin=%v, staff=%v)", username, user.ID, user.IsAdmin, user.IsStaff)
	metrics.RecordAuthAttempt(true)

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   claims.ExpiresAt.Time.UTC().Format(time.RFC3339),
	}, nil
}

// Logout revokes the token that authenticated the request.
func (s *AuthService) Logout(ctx context.Context) error {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return Unauthorized("not authenticated")
	}
	if claims.ID == "" {
		return BadRequest("token cannot be revoked")
	}

	revoked := domain.RevokedToken{JTI: claims.ID}
	if claims.ExpiresAt != nil {
		revoked.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&revoked).Error; err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	// Expired entries can never match a valid token again.
	if err := s.db.WithContext(ctx).Where("expires_at < ?", time.Now().UTC()).Delete(&domain.RevokedToken{}).Error; err != nil {
		log.Printf("[AUTH] Warning: failed to prune expired revoked tokens: %v", err)
	}

	log.Printf("[AUTH] Logout for user: %s", claims.Username)
	return nil
}

// Me implements the me method
func (s *AuthService) Me(ctx context.Context) (*UserResult, error) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return nil, Unauthorized("not authenticated")
	}
	return convertUserToResult(user), nil
}

// EnsureAdmin creates an active admin account unless the username is already taken.
// created reports whether a new account was written.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (created bool, err error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" {
		return false, BadRequest("username and email are required")
	}
	if len(password) < 8 {
		return false, BadRequest("password must be at least 8 characters")
	}

	var existing domain.User
	err = s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	fullName := "System Administrator"
	admin := domain.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		FullName:       &fullName,
		IsActive:       true,
		IsAdmin:        true,
		IsStaff:        true,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Printf("[AUTH] Admin user created: username=%s, id=%d", admin.Username, admin.ID)
	return true, nil
}

// Helper function to convert User model to UserResult
func convertUserToResult(user *domain.User) *UserResult {
	result := &UserResult{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
		IsStaff:   user.IsStaff,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
	if user.LastLogin != nil {
		lastLogin := user.LastLogin.Format(time.RFC3339)
		result.LastLogin = &lastLogin
	}
	return result
}
