package asset

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/finsight-app/finsight/app/observability/metrics"
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

// ownerID extracts the authenticated user id placed by the request gate.
func ownerID(r *http.Request) (int64, bool) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	return userID, ok && userID > 0
}

// assetIDParam parses the {assetID} URL parameter. A non-numeric id cannot
// name an existing record, so it reports false and the caller responds 404.
func assetIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "assetID"), 10, 64)
	return id, err == nil && id > 0
}

func recordAssetOp(r *http.Request, op string, err error) {
	m := metrics.Get()
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.AssetOperationsTotal.Add(r.Context(), 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("outcome", outcome),
	))
}

// List handles GET /api/assets.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AssetHandler").Start(r.Context(), "List")
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

	assets, err := h.service.List(ctx, userID)
	recordAssetOp(r, "list", err)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list assets", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "List failed")
		api.DomainErrorResponse(w, r, err)
		return
	}

	span.SetStatus(codes.Ok, "Assets listed")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"assets": assets,
	})
}

// Add handles POST /api/assets.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AssetHandler").Start(r.Context(), "Add")
	defer span.End()
	l := h.logger.With(slog.String("handler", "Add"))

	userID, ok := ownerID(r)
	if !ok {
		l.ErrorContext(ctx, "User ID not found in context")
		span.SetStatus(codes.Error, "Unauthorized")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	span.SetAttributes(attribute.Int64("user.id", userID))

	var req types.AddAssetRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Bad request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	asset, err := h.service.Add(ctx, userID, req)
	recordAssetOp(r, "add", err)
	if err != nil {
		l.WarnContext(ctx, "Failed to add asset", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Add failed")
		api.DomainErrorResponse(w, r, err)
		return
	}

	span.SetAttributes(attribute.String("asset.symbol", asset.Symbol))
	span.SetStatus(codes.Ok, "Asset added")
	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]interface{}{
		"message": "Asset added to watch list",
		"asset":   asset,
	})
}

// Update handles PUT /api/assets/{assetID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AssetHandler").Start(r.Context(), "Update")
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

	assetID, ok := assetIDParam(r)
	if !ok {
		span.SetStatus(codes.Error, "Invalid asset id")
		api.ErrorResponse(w, r, http.StatusNotFound, "Asset not found")
		return
	}

	var req types.UpdateAssetRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Bad request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	asset, err := h.service.Update(ctx, userID, assetID, req)
	recordAssetOp(r, "update", err)
	if err != nil {
		l.WarnContext(ctx, "Failed to update asset", slog.Any("error", err), slog.Int64("asset_id", assetID))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Update failed")
		api.DomainErrorResponse(w, r, err)
		return
	}

	span.SetStatus(codes.Ok, "Asset updated")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"message": "Asset updated",
		"asset":   asset,
	})
}

// Delete handles DELETE /api/assets/{assetID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AssetHandler").Start(r.Context(), "Delete")
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

	assetID, ok := assetIDParam(r)
	if !ok {
		span.SetStatus(codes.Error, "Invalid asset id")
		api.ErrorResponse(w, r, http.StatusNotFound, "Asset not found")
		return
	}

	err := h.service.Delete(ctx, userID, assetID)
	recordAssetOp(r, "delete", err)
	if err != nil {
		l.WarnContext(ctx, "Failed to delete asset", slog.Any("error", err), slog.Int64("asset_id", assetID))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Delete failed")
		api.DomainErrorResponse(w, r, err)
		return
	}

	span.SetStatus(codes.Ok, "Asset deleted")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"message": "Asset removed from watch list",
	})
}
