package http

import (
	"encoding/json"
	"net/http"

	"product-api/internal/logger"
	"product-api/internal/model"
	"product-api/internal/service"

	"go.opentelemetry.io/otel"
)

type ProductHandler struct {
	service *service.ProductService
}

var ProductHandlerTracer = otel.Tracer("HttpProductHandler")

func NewProductHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := ProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Create")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler.Create")

	var payload model.ProductCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		kind, details := decodeError(err)
		writeError(w, http.StatusBadRequest, kind, details)
		return
	}

	product, err := h.service.Create(ctx, &payload)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := ProductHandlerTracer.Start(r.Context(), "HttpProductHandler.GetByID")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler.GetByID")

	product, err := h.service.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := ProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Update")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler.Update")

	var payload model.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		kind, details := decodeError(err)
		writeError(w, http.StatusBadRequest, kind, details)
		return
	}

	product, err := h.service.Update(ctx, r.PathValue("id"), &payload)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := ProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Delete")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler.Delete")

	product, err := h.service.Delete(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := ProductHandlerTracer.Start(r.Context(), "HttpProductHandler.List")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler.List")

	products, err := h.service.List(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
