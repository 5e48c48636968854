package notebook

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/finsight-app/finsight/internal/api"
	"github.com/finsight-app/finsight/internal/api/auth"
	"github.com/finsight-app/finsight/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

func ownerID(r *http.Request) (int64, bool) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	return userID, ok && userID > 0
}

func entryIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	return id, err == nil && id > 0
}

// List handles GET /api/notebook.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("NotebookHandler").Start(r.Context(), "List")
	defer span.End()
	l := h.logger.With(slog.String("handler", "List"))

	userID, ok := ownerID(r)
	if !ok {
		l.ErrorContext(ctx, "User ID not found in context")
		span.SetStatus(codes.Error, "Unauthorized")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	span.SetAttributes(attribute.Int64("user.id", userID))

	entries, err := h.service.List(ctx, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list notebook entries", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "List failed")
		api.DomainErrorResponse(w, r, err)
		return
	}

	span.SetStatus(codes.Ok, "Entries listed")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

// Create handles POST /api/notebook.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("NotebookHandler").Start(r.Context(), "Create")
	defer span.End()
	l := h.logger.With(slog.String("handler", "Create"))

	userID, ok := ownerID(r)
	if !ok {
		l.ErrorContext(ctx, "User ID not found in context")
		span.SetStatus(codes.Error, "Unauthorized")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	span.SetAttributes(attribute.Int64("user.id", userID))

	var req types.CreateNotebookEntryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Bad request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.service.Create(ctx, userID, req)
	if err != nil {
		l.WarnContext(ctx, "Failed to create notebook entry", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Create failed")
		api.DomainErrorResponse(w, r, err)
		return
	}

	span.SetAttributes(attribute.Int64("entry.id", entry.ID))
	span.SetStatus(codes.Ok, "Entry created")
	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]interface{}{
		"message": "Notebook entry created",
		"entry":   entry,
	})
}

// Update handles PUT /api/notebook/{entryID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("NotebookHandler").Start(r.Context(), "Update")
	defer span.End()
	l := h.logger.With(slog.String("handler", "Update"))

	userID, ok := ownerID(r)
	if !ok {
		l.ErrorContext(ctx, "User ID not found in context")
		span.SetStatus(codes.Error, "Unauthorized")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	span.SetAttributes(attribute.Int64("user.id", userID))

	entryID, ok := entryIDParam(r)
	if !ok {
		span.SetStatus(codes.Error, "Invalid entry id")
		api.ErrorResponse(w, r, http.StatusNotFound, "Entry not found")
		return
	}

	var req types.UpdateNotebookEntryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Bad request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.service.Update(ctx, userID, entryID, req)
	if err != nil {
		l.WarnContext(ctx, "Failed to update notebook entry", slog.Any("error", err), slog.Int64("entry_id", entryID))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Update failed")
		api.DomainErrorResponse(w, r, err)
		return
	}

	span.SetStatus(codes.Ok, "Entry updated")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"message": "Entry updated",
		"entry":   entry,
	})
}

// Delete handles DELETE /api/notebook/{entryID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("NotebookHandler").Start(r.Context(), "Delete")
	defer span.End()
	l := h.logger.With(slog.String("handler", "Delete"))

	userID, ok := ownerID(r)
	if !ok {
		l.ErrorContext(ctx, "User ID not found in context")
		span.SetStatus(codes.Error, "Unauthorized")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	span.SetAttributes(attribute.Int64("user.id", userID))

	entryID, ok := entryIDParam(r)
	if !ok {
		span.SetStatus(codes.Error, "Invalid entry id")
		api.ErrorResponse(w, r, http.StatusNotFound, "Entry not found")
		return
	}

	if err := h.service.Delete(ctx, userID, entryID); err != nil {
		l.WarnContext(ctx, "Failed to delete notebook entry", slog.Any("error", err), slog.Int64("entry_id", entryID))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Delete failed")
		api.DomainErrorResponse(w, r, err)
		return
	}

	span.SetStatus(codes.Ok, "Entry deleted")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"message": "Entry deleted",
	})
}
