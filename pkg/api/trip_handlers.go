package api

import (
	"errors"
	"net/http"

	"github.com/rutamundo/backend/pkg/audit"
	"github.com/rutamundo/backend/pkg/httputil"
	"github.com/rutamundo/backend/pkg/store"
)

// listTrips handles GET /trips
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		s.logger.ForRequest(r.Context()).WithError(err).Error("failed to list trips")
		httputil.WriteInternalError(w, errors.New("failed to list trips"))
		return
	}
	httputil.WriteSuccess(w, listOrEmpty(trips))
}

// countTrips handles GET /trips/count
func (s *Server) countTrips(w http.ResponseWriter, r *http.Request) {
	count, err := s.trips.Count(r.Context())
	if err != nil {
		s.logger.ForRequest(r.Context()).WithError(err).Error("failed to count trips")
		httputil.WriteInternalError(w, errors.New("failed to count trips"))
		return
	}
	httputil.WriteSuccess(w, CountResponse{Count: count})
}

// getTrip handles GET /trips/{id}
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	trip, err := s.trips.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFoundError(w, "trip not found")
		return
	}
	if err != nil {
		s.logger.ForRequest(r.Context()).WithError(err).Error("failed to get trip")
		httputil.WriteInternalError(w, errors.New("failed to get trip"))
		return
	}
	httputil.WriteSuccess(w, trip)
}

// createTrip handles POST /trips
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req TripRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Destination, "destination") {
		return
	}
	if !httputil.RequireNonEmpty(w, req.TravelDate, "travelDate") {
		return
	}

	ctx := r.Context()
	trip := &store.Trip{
		Destination: req.Destination,
		Summary:     req.Summary,
		TravelDate:  req.TravelDate,
		Images:      req.Images,
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to create trip")
		httputil.WriteInternalError(w, errors.New("failed to create trip"))
		return
	}

	if s.auditor != nil {
		s.auditor.ContentChanged(ctx, audit.EventTypeContentCreate, actorID(r), "trip", trip.ID)
	}
	httputil.WriteCreated(w, trip)
}

// replaceTrip handles PUT /trips/{id}
func (s *Server) replaceTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	var req TripRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Destination, "destination") {
		return
	}
	if !httputil.RequireNonEmpty(w, req.TravelDate, "travelDate") {
		return
	}

	ctx := r.Context()
	trip := &store.Trip{
		ID:          id,
		Destination: req.Destination,
		Summary:     req.Summary,
		TravelDate:  req.TravelDate,
		Images:      req.Images,
	}
	err := s.trips.Update(ctx, trip)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFoundError(w, "trip not found")
		return
	}
	if err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to replace trip")
		httputil.WriteInternalError(w, errors.New("failed to replace trip"))
		return
	}

	if s.auditor != nil {
		s.auditor.ContentChanged(ctx, audit.EventTypeContentUpdate, actorID(r), "trip", id)
	}
	httputil.WriteSuccess(w, trip)
}

// patchTrip handles PATCH /trips/{id}
func (s *Server) patchTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	var req TripPatchRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	ctx := r.Context()
	trip, err := s.trips.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFoundError(w, "trip not found")
		return
	}
	if err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to load trip for update")
		httputil.WriteInternalError(w, errors.New("failed to update trip"))
		return
	}

	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.Summary != nil {
		trip.Summary = *req.Summary
	}
	if req.TravelDate != nil {
		trip.TravelDate = *req.TravelDate
	}
	if req.Images != nil {
		trip.Images = *req.Images
	}

	if err := s.trips.Update(ctx, trip); err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to update trip")
		httputil.WriteInternalError(w, errors.New("failed to update trip"))
		return
	}

	if s.auditor != nil {
		s.auditor.ContentChanged(ctx, audit.EventTypeContentUpdate, actorID(r), "trip", id)
	}
	httputil.WriteSuccess(w, trip)
}

// deleteTrip handles DELETE /trips/{id}
func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	ctx := r.Context()
	err := s.trips.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFoundError(w, "trip not found")
		return
	}
	if err != nil {
		s.logger.ForRequest(ctx).WithError(err).Error("failed to delete trip")
		httputil.WriteInternalError(w, errors.New("failed to delete trip"))
		return
	}

	if s.auditor != nil {
		s.auditor.ContentChanged(ctx, audit.EventTypeContentDelete, actorID(r), "trip", id)
	}
	httputil.WriteNoContent(w)
}
