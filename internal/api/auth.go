package api

import (
	"errors"   // Empty body detection
	"io"       // Empty body detection
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"inventory_system/internal/domain" // Importing domain models
	"inventory_system/internal/store"  // Credential store
	"inventory_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Auth response messages
const (
	MsgUserExists        = "User with this nomor_pengenal already exists"
	MsgEmailExists       = "User with this email already exists"
	MsgLoginFailed       = "Failed to login"
	MsgPasswordIncorrect = "Password incorrect"
)

// RegisterRequest is the body of POST /register
type RegisterRequest struct {
	Nama          FlexString `json:"nama"`           // Full name
	Password      FlexString `json:"password"`       // Plain password
	Role          FlexString `json:"role"`           // Role
	Pekerjaan     FlexString `json:"pekerjaan"`      // Occupation
	NomorPengenal FlexString `json:"nomor_pengenal"` // Identity number
	NomorWA       FlexString `json:"nomor_wa"`       // Optional WhatsApp number
	Email         FlexString `json:"email"`          // Login email
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Email    string `json:"email"`    // Login email
	Password string `json:"password"` // Plain password
}

// AuthResponse is the body of a successful login
type AuthResponse struct {
	Message string `json:"message"` // Status message
	Token   string `json:"token"`   // JWT token
}

// AuthHandler serves registration and login
type AuthHandler struct {
	Users     store.UserRepository // Credential store
	JWTSecret string               // Token signing secret
}

// RegisterHandler creates a user with a hashed password
func (h *AuthHandler) RegisterHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": MsgInvalidRequest})
			return
		}
		user := domain.User{
			Nama:          strings.TrimSpace(string(req.Nama)),
			Role:          strings.TrimSpace(string(req.Role)),
			Pekerjaan:     strings.TrimSpace(string(req.Pekerjaan)),
			NomorPengenal: strings.TrimSpace(string(req.NomorPengenal)),
			NomorWA:       optional(string(req.NomorWA)),
			Email:         optional(string(req.Email)),
		}
		// Check if required fields are provided
		if user.Nama == "" || string(req.Password) == "" || user.Role == "" || user.Pekerjaan == "" || user.NomorPengenal == "" {
			respondError(c, ValidationError(MsgMissingAttributes))
			return
		}
		ctx := c.Request.Context()
		taken, err := h.Users.ExistsByNomorPengenal(ctx, user.NomorPengenal)
		if err != nil {
			respondError(c, err)
			return
		}
		if taken {
			respondError(c, ValidationError(MsgUserExists))
			return
		}
		if user.Email != nil {
			taken, err := h.Users.ExistsByEmail(ctx, *user.Email)
			if err != nil {
				respondError(c, err)
				return
			}
			if taken {
				respondError(c, ValidationError(MsgEmailExists))
				return
			}
		}
		// Hash the password and create the user
		hash, err := utils.HashPassword(string(req.Password))
		if err != nil {
			respondError(c, err)
			return
		}
		user.Password = hash
		if err := h.Users.Create(ctx, &user); err != nil {
			if store.IsDuplicate(err) {
				// Lost a race with a concurrent registration
				respondError(c, ValidationError(MsgUserExists))
				return
			}
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,   // User ID
			"role":    user.Role, // User role
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func (h *AuthHandler) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": MsgInvalidRequest})
			return
		}
		email := strings.TrimSpace(req.Email)
		if email == "" || req.Password == "" {
			respondError(c, ValidationError(MsgMissingAttributes))
			return
		}
		user, err := h.Users.FindByEmail(c.Request.Context(), email) // Fetch user from database
		if store.IsNotFound(err) {
			respondError(c, AuthError(http.StatusBadRequest, MsgLoginFailed))
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(user.Password, req.Password) {
			respondError(c, AuthError(http.StatusBadRequest, MsgPasswordIncorrect))
			return
		}
		// Sign the stored email, the lookup may have matched case-insensitively
		if user.Email != nil {
			email = *user.Email
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Nama, email, user.Role, h.JWTSecret)
		if err != nil {
			respondError(c, err)
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Message: "Successfully logging in", Token: token})
	}
}

// optional turns a blank value into NULL
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
