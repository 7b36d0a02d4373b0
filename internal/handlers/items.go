package handlers

import (
	"net/http"

	"CATALOG_BACK-END/internal/apperr"
	"CATALOG_BACK-END/internal/dto"
	"CATALOG_BACK-END/internal/logging"
	"CATALOG_BACK-END/internal/middleware"
	"CATALOG_BACK-END/internal/services"
	"CATALOG_BACK-END/internal/utils"
)

// ItemHandler serves item endpoints
type ItemHandler struct {
	catalog *services.CatalogService
	log     logging.Logger
}

// NewItemHandler creates a new ItemHandler instance
func NewItemHandler(catalog *services.CatalogService, log logging.Logger) *ItemHandler {
	return &ItemHandler{catalog: catalog, log: log}
}

// ListItems returns one page of a category's items
// @Summary List items of a category
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param category_id path int true "Category ID"
// @Param page query int false "Page number, starting at 1" default(1)
// @Param number_per_page query int false "Items per page" default(20)
// @Success 200 {object} dto.ItemListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id or pagination"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /categories/{category_id}/items [get]
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "category_id")
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}
	viewerID, _ := middleware.UserIDFromContext(r.Context())

	res, err := h.catalog.ListItems(r.Context(), categoryID, page)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	resp := dto.ItemListResponse{
		Total:         res.Total,
		Page:          res.Page,
		NumberPerPage: res.NumberPerPage,
		Items:         make([]dto.ItemResponse, 0, len(res.Items)),
	}
	for i := range res.Items {
		resp.Items = append(resp.Items, dto.NewItemResponse(&res.Items[i], viewerID))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// GetItem returns one item
// @Summary Get an item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param item_id path int true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid item id"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /items/{item_id} [get]
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "item_id")
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}
	viewerID, _ := middleware.UserIDFromContext(r.Context())

	item, err := h.catalog.GetItem(r.Context(), id)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.NewItemResponse(item, viewerID))
}

// CreateItem adds an item to a category
// @Summary Create an item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category_id path int true "Category ID"
// @Param request body dto.CreateItemRequest true "Item data"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data or name already exists"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /categories/{category_id}/items [post]
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "category_id")
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}
	actorID, _ := middleware.UserIDFromContext(r.Context())

	var req dto.CreateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		// a missing category outranks a malformed body
		if _, lookupErr := h.catalog.GetCategory(r.Context(), categoryID); lookupErr != nil {
			err = lookupErr
		}
		utils.WriteError(w, r, h.log, err)
		return
	}

	item, err := h.catalog.CreateItem(r.Context(), actorID, categoryID, &req)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.NewItemResponse(item, actorID))
}

// UpdateItem partially updates an item
// @Summary Update an item
// @Description Only the creator may update an item. At least one field must be provided.
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item_id path int true "Item ID"
// @Param request body dto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data or name already exists"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /items/{item_id} [put]
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "item_id")
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}
	actorID, _ := middleware.UserIDFromContext(r.Context())

	var req dto.UpdateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		// resolution and ownership outrank a malformed body
		item, lookupErr := h.catalog.GetItem(r.Context(), id)
		switch {
		case lookupErr != nil:
			err = lookupErr
		case !item.IsCreatedBy(actorID):
			err = apperr.NotCreator()
		}
		utils.WriteError(w, r, h.log, err)
		return
	}

	item, err := h.catalog.UpdateItem(r.Context(), actorID, id, &req)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.NewItemResponse(item, actorID))
}

// DeleteItem deletes an item
// @Summary Delete an item
// @Description Only the creator may delete an item.
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param item_id path int true "Item ID"
// @Success 200 {object} dto.EmptyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid item id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /items/{item_id} [delete]
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "item_id")
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}
	actorID, _ := middleware.UserIDFromContext(r.Context())

	if err := h.catalog.DeleteItem(r.Context(), actorID, id); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.EmptyResponse{})
}
