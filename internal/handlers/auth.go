package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"github.com/MohamedHisham20/media-sharing-platform/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler. firebaseAuthClient may be nil
// when social sign-in is not configured.
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	if h.firebaseAuth != nil {
		g.POST("/firebase-login", h.FirebaseLogin)
	}
}

// Register handles user registration with email, username and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	// Check if user with this email already exists
	if _, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email); err == nil {
		return respondError(c, http.StatusConflict, "User with this email already registered")
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return mapError(c, err)
	}

	// Usernames are unique too; the index catches the race this pre-check
	// can miss.
	if _, err := h.userRepository.GetUserByUsername(c.Request().Context(), req.Username); err == nil {
		return respondError(c, http.StatusConflict, "Username already taken")
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return mapError(c, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: string(hashedPassword),
	}

	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		return mapError(c, err)
	}

	return respond(c, http.StatusCreated, "User created", echo.Map{
		"id":       user.ID.Hex(),
		"email":    user.Email,
		"username": user.Username,
	})
}

// Login handles user authentication with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest

	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return respondError(c, http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to generate token")
	}

	return respond(c, http.StatusOK, "Logged in", echo.Map{
		"token":    token,
		"userId":   user.ID.Hex(),
		"email":    user.Email,
		"username": user.Username,
	})
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin verifies a Firebase ID token, creating the account on first
// sign-in, and issues a local JWT.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req FirebaseLoginRequest

	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return respondError(c, http.StatusUnauthorized, "Firebase token carries no email")
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return mapError(c, err)
		}
		// First sign-in: create the account with an unusable random
		// credential, so only the social flow can authenticate it.
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
		if hashErr != nil {
			return respondError(c, http.StatusInternalServerError, "Failed to create user")
		}
		user = &models.User{
			Email:    email,
			Username: usernameFromClaims(token.Claims, email),
			Password: string(hashed),
		}
		if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
			return mapError(c, err)
		}
	}

	localJWT, err := h.generateJWT(user)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to generate token")
	}

	return respond(c, http.StatusOK, "Logged in", echo.Map{
		"token":    localJWT,
		"userId":   user.ID.Hex(),
		"email":    user.Email,
		"username": user.Username,
	})
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

func usernameFromClaims(claims map[string]interface{}, email string) string {
	if name, ok := claims["name"].(string); ok && name != "" {
		return strings.ReplaceAll(name, " ", "")
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
