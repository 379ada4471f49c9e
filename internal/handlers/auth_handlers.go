package handlers

import (
	"errors"
	"net/http"
	"time"

	"superinv/internal/common"
	"superinv/internal/models"
	"superinv/internal/repositories"
	"superinv/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthHandlers handles signup, signin and identity lookups.
type AuthHandlers struct {
	authService services.AuthService
	userRepo    repositories.UserRepository
}

func NewAuthHandlers(authService services.AuthService, userRepo repositories.UserRepository) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		userRepo:    userRepo,
	}
}

// SigninRequest represents the signin request payload
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signin exchanges email and password for a bearer token.
func (h *AuthHandlers) Signin(c echo.Context) error {
	ctx := c.Request().Context()

	var req SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Email == "" || req.Password == "" {
		return common.SendValidationError(c, "email", "Email and password are required")
	}

	tokenResponse, _, err := h.authService.IssueToken(ctx, req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("INVALID_CREDENTIALS", "Invalid email or password", nil))
	}

	return c.JSON(http.StatusOK, tokenResponse)
}

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Username  string `json:"username" validate:"required"`
	FirstName string `json:"firstname" validate:"required"`
	LastName  string `json:"lastname" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

// SignupResponse represents the signup response
type SignupResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// Signup registers a new user. Duplicate usernames and emails surface as
// a 400 with a DUPLICATE code.
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Username == "" || req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return common.SendValidationError(c, "fields", "Username, first name, last name, email and password are required")
	}

	hashedPassword, err := h.authService.HashPassword(req.Password)
	if err != nil {
		return common.SendServerError(c, "Failed to hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return common.SendDuplicateError(c, "Username or email already taken")
		}
		return common.SendServerError(c, "Failed to create user")
	}

	return c.JSON(http.StatusCreated, SignupResponse{
		Message: "User registered",
		User:    user,
	})
}

// MeResponse represents the identity lookup response
type MeResponse struct {
	Username string `json:"username"`
}

// Me returns the username behind the presented token.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.UserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "Unauthorized access")
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return common.SendUnauthorizedError(c, "User not found")
	}

	return c.JSON(http.StatusOK, MeResponse{Username: user.Username})
}
