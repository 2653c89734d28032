package handlers

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
)

// AuthHandler checks the single staff credential. The password is only
// kept as a bcrypt hash once the handler is built.
type AuthHandler struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	clock        clockwork.Clock
}

func NewAuthHandler(cfg *config.Config, clock clockwork.Clock) (*AuthHandler, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AuthHandler{
		username:     cfg.AdminUsername,
		passwordHash: hash,
		secret:       []byte(cfg.JWTSecret),
		ttl:          cfg.TokenTTL,
		clock:        clock,
	}, nil
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Username and password are required.")
		return
	}

	username := strings.TrimSpace(req.Username)
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password))
	if !userOK || passErr != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	token, expires, err := h.generateToken(username)
	if err != nil {
		internalError(c, "failed_to_generate_token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expires,
		"username":   username,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(username string) (string, time.Time, error) {
	now := h.clock.Now()
	expires := now.Add(h.ttl)
	claims := jwt.MapClaims{
		"sub":  username,
		"role": middleware.RoleAdmin,
		"exp":  expires.Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	return signed, expires, err
}
