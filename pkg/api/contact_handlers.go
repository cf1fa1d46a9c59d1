package api

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/rutamundo/backend/pkg/audit"
	"github.com/rutamundo/backend/pkg/httputil"
	"github.com/rutamundo/backend/pkg/store"
)

// createContact handles POST /contacts (public visitor form)
func (s *Server) createContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
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
	if !httputil.RequireNonEmpty(w, req.Message, "message") {
		return
	}

	ctx := r.Context()
	msg := &store.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.contacts.Create(ctx, msg); err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to create contact message")
		httputil.WriteInternalError(w, errors.New("failed to submit message"))
		return
	}

	httputil.WriteCreated(w, msg)
}

// listContacts handles GET /contacts
func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.contacts.List(r.Context())
	if err != nil {
		s.logger.ForRequest(r.Context()).WithError(err).Error("failed to list contact messages")
		httputil.WriteInternalError(w, errors.New("failed to list messages"))
		return
	}
	httputil.WriteSuccess(w, listOrEmpty(msgs))
}

// countContacts handles GET /contacts/count
func (s *Server) countContacts(w http.ResponseWriter, r *http.Request) {
	count, err := s.contacts.Count(r.Context())
	if err != nil {
		s.logger.ForRequest(r.Context()).WithError(err).Error("failed to count contact messages")
		httputil.WriteInternalError(w, errors.New("failed to count messages"))
		return
	}
	httputil.WriteSuccess(w, CountResponse{Count: count})
}

// getContact handles GET /contacts/{id}
func (s *Server) getContact(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	msg, err := s.contacts.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFoundError(w, "contact message not found")
		return
	}
	if err != nil {
		s.logger.ForRequest(r.Context()).WithError(err).Error("failed to get contact message")
		httputil.WriteInternalError(w, errors.New("failed to get message"))
		return
	}
	httputil.WriteSuccess(w, msg)
}

// markContactSeen handles PATCH /contacts/{id}
func (s *Server) markContactSeen(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	ctx := r.Context()
	err := s.contacts.MarkSeen(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFoundError(w, "contact message not found")
		return
	}
	if err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to mark contact message seen")
		httputil.WriteInternalError(w, errors.New("failed to update message"))
		return
	}

	if s.auditor != nil {
		s.auditor.ContentChanged(ctx, audit.EventTypeContentUpdate, actorID(r), "contact", id)
	}
	httputil.WriteNoContent(w)
}

// deleteContact handles DELETE /contacts/{id}
func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	ctx := r.Context()
	err := s.contacts.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFoundError(w, "contact message not found")
		return
	}
	if err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to delete contact message")
		httputil.WriteInternalError(w, errors.New("failed to delete message"))
		return
	}

	if s.auditor != nil {
		s.auditor.ContentChanged(ctx, audit.EventTypeContentDelete, actorID(r), "contact", id)
	}
	httputil.WriteNoContent(w)
}
