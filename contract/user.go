package contract

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/hackathon-platform-backend/models"
)

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=superadmin organizer"`
}

// Normalize trims the identifying fields so lookups and unique indexes agree.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
}

// ToModel builds an active user; the caller supplies the password digest.
func (r RegisterRequest) ToModel(hashedPassword string) *models.User {
	return &models.User{
		Email:          r.Email,
		Username:       r.Username,
		HashedPassword: hashedPassword,
		FullName:       r.FullName,
		Role:           models.UserRole(r.Role),
		IsActive:       true,
	}
}

// UserResponse is the public view of a user. It never carries the password digest.
type UserResponse struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	Username         string     `json:"username"`
	FullName         string     `json:"full_name"`
	Role             string     `json:"role"`
	IsActive         bool       `json:"is_active"`
	RegistrationDate time.Time  `json:"registration_date"`
	LastLogin        *time.Time `json:"last_login"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Username:         u.Username,
		FullName:         u.FullName,
		Role:             string(u.Role),
		IsActive:         u.IsActive,
		RegistrationDate: u.RegistrationDate,
		LastLogin:        u.LastLogin,
	}
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
	ExpiresIn   int          `json:"expires_in"`
}

func NewTokenResponse(token string, ttl time.Duration, u models.User) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        NewUserResponse(u),
		ExpiresIn:   int(ttl.Seconds()),
	}
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DashboardMetrics struct {
	TotalHackathons                 int64   `json:"total_hackathons"`
	TotalOrganizers                 int64   `json:"total_organizers"`
	TotalParticipants               int64   `json:"total_participants"`
	TotalTeams                      int64   `json:"total_teams"`
	TotalSubmissions                int64   `json:"total_submissions"`
	TotalMentorSessions             int64   `json:"total_mentor_sessions"`
	AverageParticipantsPerHackathon float64 `json:"average_participants_per_hackathon"`
	ActiveHackathons                int64   `json:"active_hackathons"`
}
