package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/travel-agency/internal/auth"
	"github.com/ukydev/travel-agency/internal/db"
	"github.com/ukydev/travel-agency/internal/middleware"
	"github.com/ukydev/travel-agency/internal/models"
	"github.com/ukydev/travel-agency/internal/session"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHandler handles staff authentication requests
type AuthHandler struct {
	authService    *auth.Service
	userCollection db.UserCollection
	onSignOut      func(userID string)
}

// NewAuthHandler creates a new authentication handler. onSignOut, when set,
// is called with the user id after a sign-out.
func NewAuthHandler(authService *auth.Service, userCollection db.UserCollection, onSignOut func(userID string)) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		userCollection: userCollection,
		onSignOut:      onSignOut,
	}
}

// Login handles staff login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var loginReq models.LoginRequest
	if err := json.Unmarshal(body, &loginReq); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	loginReq.Email = strings.TrimSpace(loginReq.Email)
	if loginReq.Email == "" || loginReq.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.userCollection.FindUserByEmail(r.Context(), loginReq.Email)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if !user.IsActive {
		http.Error(w, "Account is deactivated", http.StatusUnauthorized)
		return
	}

	if !h.authService.CheckPassword(loginReq.Password, user.PasswordHash) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	response, ok := h.issueToken(w, r, user)
	if !ok {
		return
	}

	if err := h.userCollection.UpdateLastLogin(r.Context(), user.ID.Hex()); err != nil {
		log.WithError(err).WithField("user_id", user.ID.Hex()).Error("Failed to update last login")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// Register creates a staff account. It is mounted behind the user
// management permission.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var registerReq models.RegisterRequest
	if err := json.Unmarshal(body, &registerReq); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	registerReq.Name = strings.TrimSpace(registerReq.Name)
	registerReq.Email = strings.TrimSpace(registerReq.Email)

	if err := h.authService.ValidateName(registerReq.Name); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.authService.ValidateEmail(registerReq.Email); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.authService.ValidatePassword(registerReq.Password); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if registerReq.Role == "" {
		registerReq.Role = models.RoleEditor
	}
	if !models.IsValidRole(registerReq.Role) {
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}

	_, err = h.userCollection.FindUserByEmail(r.Context(), registerReq.Email)
	if err == nil {
		http.Error(w, "Email already exists", http.StatusConflict)
		return
	}
	if !db.IsNotFound(err) {
		log.WithError(err).Error("Failed to check existing user")
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	passwordHash, err := h.authService.HashPassword(registerReq.Password)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         registerReq.Name,
		Email:        registerReq.Email,
		PasswordHash: passwordHash,
		Role:         registerReq.Role,
		IsActive:     true,
	}

	if err := h.userCollection.InsertUser(r.Context(), user); err != nil {
		log.WithError(err).WithField("email", user.Email).Error("Failed to create user")
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// EnsureAdmin creates an active admin account unless a user with email
// already exists. Blank credentials skip the bootstrap.
func (h *AuthHandler) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil
	}
	_, err := h.userCollection.FindUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !db.IsNotFound(err) {
		return fmt.Errorf("look up admin: %w", err)
	}
	if err := h.authService.ValidatePassword(password); err != nil {
		return err
	}
	passwordHash, err := h.authService.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := h.userCollection.InsertUser(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.WithField("email", email).Info("Created bootstrap admin")
	return nil
}

// issueToken signs the access token and records the identity in the visitor
// session.
func (h *AuthHandler) issueToken(w http.ResponseWriter, r *http.Request, user *models.User) (models.LoginResponse, bool) {
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return models.LoginResponse{}, false
	}

	if sess, ok := session.FromContext(r.Context()); ok {
		sess.Auth.SignIn(&models.Claims{
			UserID: user.ID.Hex(),
			Email:  user.Email,
			Name:   user.Name,
			Role:   user.Role,
		})
	}

	return models.LoginResponse{
		Token: token,
		User:  *user,
	}, true
}

// Logout clears the session identity and the editor's CMS workspace
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	if sess, ok := session.FromContext(r.Context()); ok {
		sess.Auth.SignOut()
	}
	if h.onSignOut != nil {
		h.onSignOut(claims.UserID)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Signed out"})
}

// GetProfile returns the current user's profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	user, err := h.userCollection.FindUserByID(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// ChangePassword changes the current user's password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var passwordReq struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.Unmarshal(body, &passwordReq); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if passwordReq.CurrentPassword == "" || passwordReq.NewPassword == "" {
		http.Error(w, "Current password and new password are required", http.StatusBadRequest)
		return
	}
	if err := h.authService.ValidatePassword(passwordReq.NewPassword); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userCollection.FindUserByID(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if !h.authService.CheckPassword(passwordReq.CurrentPassword, user.PasswordHash) {
		http.Error(w, "Current password is incorrect", http.StatusUnauthorized)
		return
	}

	passwordHash, err := h.authService.HashPassword(passwordReq.NewPassword)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}
	if err := h.userCollection.UpdatePassword(r.Context(), claims.UserID, passwordHash); err != nil {
		log.WithError(err).WithField("user_id", claims.UserID).Error("Failed to update password")
		http.Error(w, "Failed to update password", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Password changed successfully"})
}
