// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/zenithc-git/soccer-Seeker/auth"
	"github.com/zenithc-git/soccer-Seeker/cliparse"
	"github.com/zenithc-git/soccer-Seeker/middleware"
	"github.com/zenithc-git/soccer-Seeker/models"
	"github.com/zenithc-git/soccer-Seeker/store"
)

// AvatarURLPrefix is where the router serves UploadDir
const AvatarURLPrefix = "/uploads/"

// Sniffed content types accepted as avatars, with the extension they are saved under
var avatarTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type UserHandler struct {
	store  *store.Store
	cfg    cliparse.Config
	tokens *auth.TokenService
}

func NewUserHandler(st *store.Store, cfg cliparse.Config, tokens *auth.TokenService) *UserHandler {
	return &UserHandler{store: st, cfg: cfg, tokens: tokens}
}

// Register handles POST /api/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidJSON, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	role := auth.RoleUser
	if req.Role != "" {
		parsed, err := auth.ParseRole(req.Role)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		role = parsed
	}
	if !role.SelfAssignable() {
		middleware.ErrorResponse(w, http.StatusForbidden, "admin accounts cannot be self-registered")
		return
	}

	birthday, err := parseDate(req.Birthday)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "birthday must be YYYY-MM-DD")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrWeakPassword) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	u := &store.User{
		Name:         req.Name,
		Email:        addr.Address,
		PasswordHash: hash,
		Role:         string(role),
		Birthday:     birthday,
	}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
			return
		}
		slog.Error("failed to create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("user registered", "user_id", u.ID, "role", u.Role)
	h.respondWithToken(w, http.StatusCreated, u)
}

// Login handles POST /api/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidJSON, "Invalid JSON")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if err == nil {
		err = auth.CheckPassword(u.PasswordHash, req.Password)
	}
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, auth.ErrInvalidCredentials):
		slog.Info("login rejected", "ip", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	case err != nil:
		slog.Error("failed to log in", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.respondWithToken(w, http.StatusOK, u)
}

func (h *UserHandler) respondWithToken(w http.ResponseWriter, status int, u *store.User) {
	role, err := auth.ParseRole(u.Role)
	if err != nil {
		slog.Error("stored user has unknown role", "user_id", u.ID, "role", u.Role)
		role = auth.RoleUser
	}
	token, err := h.tokens.Issue(u.ID, role)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	middleware.JSONResponse(w, status, models.LoginResponse{Token: token, User: toUser(u)})
}

// currentUser loads the caller named by the token. It writes the error
// response itself.
func (h *UserHandler) currentUser(w http.ResponseWriter, r *http.Request) (*store.User, bool) {
	u, err := h.store.UserByID(r.Context(), middleware.UserID(r.Context()))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to load user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	return u, true
}

// Me handles GET /api/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, toUser(u))
}

// UpdateMe handles PUT /api/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidJSON, "Invalid JSON")
		return
	}

	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		u.Name = name
	}
	if req.Birthday != nil {
		// An empty string clears the birthday
		birthday, err := parseDate(*req.Birthday)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "birthday must be YYYY-MM-DD")
			return
		}
		u.Birthday = birthday
	}

	if err := h.store.UpdateUserProfile(r.Context(), u); err != nil {
		slog.Error("failed to update profile", "user_id", u.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, toUser(u))
}

// ChangePassword handles POST /api/me/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidJSON, "Invalid JSON")
		return
	}

	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := auth.CheckPassword(u.PasswordHash, req.OldPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		slog.Error("failed to check password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if errors.Is(err, auth.ErrWeakPassword) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err == nil {
		err = h.store.UpdatePassword(r.Context(), u.ID, hash)
	}
	if err != nil {
		slog.Error("failed to change password", "user_id", u.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Password updated"})
}

// UploadAvatar handles POST /api/me/avatar with a multipart "avatar" file
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.MaxAvatarBytes
	tooBig := fmt.Sprintf("avatar must be %s or smaller", humanize.Bytes(uint64(limit)))

	// Leave room for the multipart envelope around the file itself
	r.Body = http.MaxBytesReader(w, r.Body, limit+64<<10)
	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.ErrorCode(w, http.StatusRequestEntityTooLarge, models.CodeInvalidUpload, tooBig)
			return
		}
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidUpload, "expected a multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidUpload, "avatar file is required")
		return
	}
	defer file.Close()

	if header.Size > limit {
		middleware.ErrorCode(w, http.StatusRequestEntityTooLarge, models.CodeInvalidUpload, tooBig)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidUpload, "failed to read avatar")
		return
	}
	ext, ok := avatarTypes[http.DetectContentType(data)]
	if !ok {
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidUpload, "avatar must be a PNG, JPEG, GIF or WebP image")
		return
	}

	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		slog.Error("failed to create upload dir", "dir", h.cfg.UploadDir, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store avatar")
		return
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(h.cfg.UploadDir, name), data, 0o644); err != nil {
		slog.Error("failed to write avatar", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store avatar")
		return
	}

	url := AvatarURLPrefix + name
	if err := h.store.UpdateAvatar(r.Context(), u.ID, url); err != nil {
		slog.Error("failed to save avatar url", "user_id", u.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store avatar")
		return
	}
	h.removeAvatar(u.AvatarURL)
	u.AvatarURL = &url

	slog.Info("avatar uploaded", "user_id", u.ID, "bytes", len(data))
	middleware.JSONResponse(w, http.StatusOK, toUser(u))
}

// removeAvatar deletes a previously uploaded file. Failures are only logged.
func (h *UserHandler) removeAvatar(url *string) {
	if url == nil {
		return
	}
	name, ok := strings.CutPrefix(*url, AvatarURLPrefix)
	if !ok || name == "" || strings.ContainsAny(name, `/\`) {
		return
	}
	if err := os.Remove(filepath.Join(h.cfg.UploadDir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to remove old avatar", "file", name, "error", err)
	}
}

// DeleteMe handles DELETE /api/users/me
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteUser(r.Context(), u.ID); err != nil {
		slog.Error("failed to delete user", "user_id", u.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}
	h.removeAvatar(u.AvatarURL)

	slog.Info("user deleted", "user_id", u.ID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Account deleted"})
}

// ListUsers handles GET /api/users (admin)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	out := make([]models.User, len(users))
	for i := range users {
		out[i] = toUser(&users[i])
	}
	middleware.JSONResponse(w, http.StatusOK, models.UsersResponse{Users: out})
}
