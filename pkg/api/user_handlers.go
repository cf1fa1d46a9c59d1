package api

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/rutamundo/backend/pkg/audit"
	"github.com/rutamundo/backend/pkg/auth"
	"github.com/rutamundo/backend/pkg/httputil"
	"github.com/rutamundo/backend/pkg/middleware"
	"github.com/rutamundo/backend/pkg/store"
)

const minPasswordLength = 8

// registerUser handles POST /users
func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if !httputil.RequireNonEmpty(w, req.Name, "name") {
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		httputil.WriteValidationError(w, "invalid email address")
		return
	}
	if len(req.Password) < minPasswordLength {
		httputil.WriteValidationError(w, "password must be at least 8 characters")
		return
	}

	ctx := r.Context()

	if existing, err := s.users.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		httputil.WriteUnprocessableEntity(w, auth.ErrDuplicateEmail.Error())
		return
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to check email uniqueness")
		httputil.WriteInternalError(w, errors.New("registration failed"))
		return
	}

	if existing, err := s.users.FindByName(ctx, req.Name); err == nil && existing != nil {
		httputil.WriteUnprocessableEntity(w, auth.ErrDuplicateName.Error())
		return
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to check name uniqueness")
		httputil.WriteInternalError(w, errors.New("registration failed"))
		return
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to hash password")
		httputil.WriteInternalError(w, errors.New("registration failed"))
		return
	}

	user := &store.User{
		Name:         req.Name,
		Avatar:       req.Avatar,
		Email:        req.Email,
		PasswordHash: hash,
		Permissions:  auth.DefaultUserPermissions(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to create user")
		httputil.WriteInternalError(w, errors.New("registration failed"))
		return
	}

	if s.auditor != nil {
		s.auditor.UserRegistered(ctx, user.ID, user.Email)
	}
	s.logger.ForRequest(ctx).WithField("user_id", user.ID).Info("user registered")

	// PasswordHash is json:"-"; the hash never leaves the server.
	httputil.WriteCreated(w, user)
}

// login handles POST /users/login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Email, "email") {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Password, "password") {
		return
	}

	ctx := r.Context()
	token, err := s.authenticator.Authenticate(ctx, auth.Credential{
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		s.recordLogin(r, req.Email, "not_found")
		httputil.WriteNotFoundError(w, auth.ErrUserNotFound.Error())
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.recordLogin(r, req.Email, "invalid_credentials")
		httputil.WriteUnauthorized(w, auth.ErrInvalidCredentials.Error())
		return
	case err != nil:
		s.recordLogin(r, req.Email, "error")
		s.logger.ForRequest(ctx).WithError(err).Error("login failed")
		httputil.WriteInternalError(w, errors.New("login failed"))
		return
	}

	s.recordLogin(r, req.Email, "success")
	httputil.WriteSuccess(w, LoginResponse{Token: token})
}

func (s *Server) recordLogin(r *http.Request, email, outcome string) {
	ctx := r.Context()
	if s.metrics != nil {
		s.metrics.RecordLogin(outcome)
	}
	if s.auditor == nil {
		return
	}
	if outcome == "success" {
		s.auditor.Record(ctx, &audit.Event{
			EventType: audit.EventTypeLogin,
			Status:    audit.EventStatusSuccess,
			Email:     email,
		})
		return
	}
	s.auditor.LoginFailed(ctx, email, outcome)
}

// authenticatedUser handles GET /users/auth
func (s *Server) authenticatedUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		httputil.WriteUnauthorized(w, auth.ErrUnauthenticated.Error())
		return
	}
	httputil.WriteSuccess(w, identity)
}

// listUsers handles GET /users
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.logger.ForRequest(r.Context()).WithError(err).Error("failed to list users")
		httputil.WriteInternalError(w, errors.New("failed to list users"))
		return
	}
	httputil.WriteSuccess(w, listOrEmpty(users))
}

// countUsers handles GET /users/count
func (s *Server) countUsers(w http.ResponseWriter, r *http.Request) {
	count, err := s.users.Count(r.Context())
	if err != nil {
		s.logger.ForRequest(r.Context()).WithError(err).Error("failed to count users")
		httputil.WriteInternalError(w, errors.New("failed to count users"))
		return
	}
	httputil.WriteSuccess(w, CountResponse{Count: count})
}

// getUser handles GET /users/{id}
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	user, err := s.users.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFoundError(w, auth.ErrUserNotFound.Error())
		return
	}
	if err != nil {
		s.logger.ForRequest(r.Context()).WithError(err).Error("failed to get user")
		httputil.WriteInternalError(w, errors.New("failed to get user"))
		return
	}
	httputil.WriteSuccess(w, user)
}

// updateUser handles PATCH /users/{id}
func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	ctx := r.Context()
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFoundError(w, auth.ErrUserNotFound.Error())
		return
	}
	if err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to load user for update")
		httputil.WriteInternalError(w, errors.New("failed to update user"))
		return
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			httputil.WriteValidationError(w, "invalid email address")
			return
		}
		if existing, err := s.users.FindByEmail(ctx, *req.Email); err == nil && existing != nil && existing.ID != id {
			httputil.WriteUnprocessableEntity(w, auth.ErrDuplicateEmail.Error())
			return
		}
		user.Email = *req.Email
	}
	if req.Name != nil && *req.Name != user.Name {
		if *req.Name == "" {
			httputil.WriteValidationError(w, "name is required")
			return
		}
		if existing, err := s.users.FindByName(ctx, *req.Name); err == nil && existing != nil && existing.ID != id {
			httputil.WriteUnprocessableEntity(w, auth.ErrDuplicateName.Error())
			return
		}
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			httputil.WriteValidationError(w, "password must be at least 8 characters")
			return
		}
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			s.logger.ForRequest(ctx).WithError(err).Error("failed to hash password")
			httputil.WriteInternalError(w, errors.New("failed to update user"))
			return
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to update user")
		httputil.WriteInternalError(w, errors.New("failed to update user"))
		return
	}

	if s.auditor != nil {
		s.auditor.Record(ctx, &audit.Event{
			EventType:  audit.EventTypeUserUpdate,
			Status:     audit.EventStatusSuccess,
			UserID:     actorID(r),
			Resource:   "user",
			ResourceID: id,
		})
	}
	httputil.WriteSuccess(w, user)
}

// deleteUser handles DELETE /users/{id}
func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		httputil.WriteUnauthorized(w, auth.ErrUnauthenticated.Error())
		return
	}
	// An account cannot remove itself; the session it holds would
	// outlive the user it names.
	if identity.ID == id {
		httputil.WriteUnauthorized(w, "cannot delete your own account")
		return
	}

	ctx := r.Context()
	err := s.users.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFoundError(w, auth.ErrUserNotFound.Error())
		return
	}
	if err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to delete user")
		httputil.WriteInternalError(w, errors.New("failed to delete user"))
		return
	}

	if s.auditor != nil {
		s.auditor.UserDeleted(ctx, identity.ID, id)
	}
	httputil.WriteNoContent(w)
}

func actorID(r *http.Request) string {
	if identity, ok := middleware.IdentityFromRequest(r); ok {
		return identity.ID
	}
	return ""
}
