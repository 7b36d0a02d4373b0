package handlers

import (
	"net/http"

	"CATALOG_BACK-END/internal/dto"
	"CATALOG_BACK-END/internal/logging"
	"CATALOG_BACK-END/internal/middleware"
	"CATALOG_BACK-END/internal/services"
	"CATALOG_BACK-END/internal/utils"
)

// CategoryHandler serves category endpoints
type CategoryHandler struct {
	catalog *services.CatalogService
	log     logging.Logger
}

// NewCategoryHandler creates a new CategoryHandler instance
func NewCategoryHandler(catalog *services.CatalogService, log logging.Logger) *CategoryHandler {
	return &CategoryHandler{catalog: catalog, log: log}
}

// ListCategories returns every category
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.UserIDFromContext(r.Context())

	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, dto.NewCategoryResponse(&categories[i], viewerID))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// GetCategory returns one category
// @Summary Get a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param category_id path int true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid category id"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /categories/{category_id} [get]
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "category_id")
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}
	viewerID, _ := middleware.UserIDFromContext(r.Context())

	category, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.NewCategoryResponse(category, viewerID))
}

// CreateCategory creates a category owned by the caller
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data or name already exists"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromContext(r.Context())

	var req dto.CreateCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), actorID, &req)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.NewCategoryResponse(category, actorID))
}

// DeleteCategory deletes a category and its items
// @Summary Delete a category
// @Description Only the creator may delete a category. Its items are deleted with it.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param category_id path int true "Category ID"
// @Success 200 {object} dto.EmptyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid category id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /categories/{category_id} [delete]
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "category_id")
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}
	actorID, _ := middleware.UserIDFromContext(r.Context())

	if err := h.catalog.DeleteCategory(r.Context(), actorID, id); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.EmptyResponse{})
}
