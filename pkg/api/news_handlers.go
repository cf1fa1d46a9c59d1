package api

import (
	"errors"
	"net/http"

	"github.com/rutamundo/backend/pkg/audit"
	"github.com/rutamundo/backend/pkg/httputil"
	"github.com/rutamundo/backend/pkg/store"
)

// listNews handles GET /news
func (s *Server) listNews(w http.ResponseWriter, r *http.Request) {
	items, err := s.news.List(r.Context())
	if err != nil {
		s.logger.ForRequest(r.Context()).WithError(err).Error("failed to list news")
		httputil.WriteInternalError(w, errors.New("failed to list news"))
		return
	}
	httputil.WriteSuccess(w, listOrEmpty(items))
}

// countNews handles GET /news/count
func (s *Server) countNews(w http.ResponseWriter, r *http.Request) {
	count, err := s.news.Count(r.Context())
	if err != nil {
		s.logger.ForRequest(r.Context()).WithError(err).Error("failed to count news")
		httputil.WriteInternalError(w, errors.New("failed to count news"))
		return
	}
	httputil.WriteSuccess(w, CountResponse{Count: count})
}

// getNewsItem handles GET /news/{id}
func (s *Server) getNewsItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	item, err := s.news.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFoundError(w, "news item not found")
		return
	}
	if err != nil {
		s.logger.ForRequest(r.Context()).WithError(err).Error("failed to get news item")
		httputil.WriteInternalError(w, errors.New("failed to get news item"))
		return
	}
	httputil.WriteSuccess(w, item)
}

// createNewsItem handles POST /news
func (s *Server) createNewsItem(w http.ResponseWriter, r *http.Request) {
	var req NewsRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Title, "title") {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Body, "body") {
		return
	}

	ctx := r.Context()
	item := &store.NewsItem{Title: req.Title, Body: req.Body}
	if err := s.news.Create(ctx, item); err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to create news item")
		httputil.WriteInternalError(w, errors.New("failed to create news item"))
		return
	}

	if s.auditor != nil {
		s.auditor.ContentChanged(ctx, audit.EventTypeContentCreate, actorID(r), "news", item.ID)
	}
	httputil.WriteCreated(w, item)
}

// updateNewsItem handles PATCH /news/{id}
func (s *Server) updateNewsItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	var req NewsRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	ctx := r.Context()
	item, err := s.news.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFoundError(w, "news item not found")
		return
	}
	if err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to load news item for update")
		httputil.WriteInternalError(w, errors.New("failed to update news item"))
		return
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Body != "" {
		item.Body = req.Body
	}

	if err := s.news.Update(ctx, item); err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to update news item")
		httputil.WriteInternalError(w, errors.New("failed to update news item"))
		return
	}

	if s.auditor != nil {
		s.auditor.ContentChanged(ctx, audit.EventTypeContentUpdate, actorID(r), "news", id)
	}
	httputil.WriteSuccess(w, item)
}

// deleteNewsItem handles DELETE /news/{id}
func (s *Server) deleteNewsItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	ctx := r.Context()
	err := s.news.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFoundError(w, "news item not found")
		return
	}
	if err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to delete news item")
		httputil.WriteInternalError(w, errors.New("failed to delete news item"))
		return
	}

	if s.auditor != nil {
		s.auditor.ContentChanged(ctx, audit.EventTypeContentDelete, actorID(r), "news", id)
	}
	httputil.WriteNoContent(w)
}
