package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/refindhq/refind/internal/auth"
	"github.com/refindhq/refind/internal/models"
	pkghttp "github.com/refindhq/refind/pkg/http"
)

// DefaultDeletionReason is recorded when the owner deletes an item
// without giving a reason of their own.
const DefaultDeletionReason = "User requested"

// ItemService defines the CRUD surface over item reports
type ItemService interface {
	CreateItem(ctx context.Context, item *models.Item) (*models.Item, error)
	GetItem(ctx context.Context, itemType models.ItemType, id, requestingUserID string) (*models.Item, error)
	ListUserItems(ctx context.Context, itemType models.ItemType, userID string) ([]*models.Item, error)
}

// LifecycleService defines the deletion and restore surface over items
type LifecycleService interface {
	SoftDeleteItem(ctx context.Context, itemType models.ItemType, itemID, userID, reason string) error
	RestoreItem(ctx context.Context, itemType models.ItemType, itemID, userID string) error
}

// ItemHandler handles lost and found item requests. The same handler
// serves both variants; routes bind each method to a concrete type.
type ItemHandler struct {
	items     ItemService
	lifecycle LifecycleService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(items ItemService, lifecycle LifecycleService) *ItemHandler {
	return &ItemHandler{
		items:     items,
		lifecycle: lifecycle,
	}
}

// CreateItemRequest represents the request body for reporting an item
type CreateItemRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description string  `json:"description" validate:"required,min=1"`
	Category    string  `json:"category" validate:"required,min=1,max=100"`
	Location    string  `json:"location" validate:"required,min=1,max=255"`
	ItemDate    string  `json:"item_date" validate:"required,datetime=2006-01-02"`
	ImageFile   *string `json:"image_file" validate:"omitempty,max=255"`
}

// DeleteItemRequest is the optional request body for a deletion
type DeleteItemRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// ItemResponse represents an item in HTTP responses
type ItemResponse struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	UserID         string     `json:"user_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Location       string     `json:"location"`
	ItemDate       string     `json:"item_date"`
	ImageFile      *string    `json:"image_file,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	DeletionReason *string    `json:"deletion_reason,omitempty"`
	AutoDeleted    bool       `json:"auto_deleted,omitempty"`
}

func itemModelToResponse(item *models.Item) *ItemResponse {
	return &ItemResponse{
		ID:             item.ID,
		Type:           item.Type.String(),
		UserID:         item.UserID,
		Title:          item.Title,
		Description:    item.Description,
		Category:       item.Category,
		Location:       item.Location,
		ItemDate:       item.ItemDate.Format("2006-01-02"),
		ImageFile:      item.ImageFile,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
		DeletedAt:      item.DeletedAt,
		DeletionReason: item.DeletionReason,
		AutoDeleted:    item.AutoDeleted,
	}
}

func itemsToResponse(items []*models.Item) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemModelToResponse(item))
	}
	return out
}

// Create reports a new item of the bound type
func (h *ItemHandler) Create(itemType models.ItemType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttp.WriteBadRequest(w, "invalid request body")
			return
		}

		if err := ValidateRequest(&req); err != nil {
			pkghttp.WriteBadRequest(w, err.Error())
			return
		}

		itemDate, err := time.Parse("2006-01-02", req.ItemDate)
		if err != nil {
			pkghttp.WriteBadRequest(w, "item_date must be formatted as YYYY-MM-DD")
			return
		}

		item := &models.Item{
			Type:        itemType,
			UserID:      auth.UserID(r.Context()),
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Location:    req.Location,
			ItemDate:    itemDate,
			ImageFile:   req.ImageFile,
		}

		created, err := h.items.CreateItem(r.Context(), item)
		if err != nil {
			pkghttp.WriteInternalError(w, "failed to create item")
			return
		}

		pkghttp.WriteJSON(w, http.StatusCreated, itemModelToResponse(created))
	}
}

// List returns the caller's active items of the bound type
func (h *ItemHandler) List(itemType models.ItemType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.items.ListUserItems(r.Context(), itemType, auth.UserID(r.Context()))
		if err != nil {
			pkghttp.WriteInternalError(w, "failed to list items")
			return
		}

		pkghttp.WriteJSON(w, http.StatusOK, itemsToResponse(items))
	}
}

// Get returns one item by id
func (h *ItemHandler) Get(itemType models.ItemType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "id")

		item, err := h.items.GetItem(r.Context(), itemType, itemID, auth.UserID(r.Context()))
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				pkghttp.WriteNotFound(w, "item not found")
				return
			}
			pkghttp.WriteInternalError(w, "failed to get item")
			return
		}

		pkghttp.WriteJSON(w, http.StatusOK, itemModelToResponse(item))
	}
}

// Delete soft-deletes an item on behalf of its owner. The body may carry
// a reason; items locked by an active match return 409.
func (h *ItemHandler) Delete(itemType models.ItemType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "id")

		reason := DefaultDeletionReason
		if r.Body != nil && r.ContentLength != 0 {
			var req DeleteItemRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				pkghttp.WriteBadRequest(w, "invalid request body")
				return
			}
			if err := ValidateRequest(&req); err != nil {
				pkghttp.WriteBadRequest(w, err.Error())
				return
			}
			if req.Reason != "" {
				reason = req.Reason
			}
		}

		err := h.lifecycle.SoftDeleteItem(r.Context(), itemType, itemID, auth.UserID(r.Context()), reason)
		if err != nil {
			var matchErr *models.ActiveMatchError
			switch {
			case errors.As(err, &matchErr):
				pkghttp.WriteErrorWithDetails(w, http.StatusConflict, "conflict",
					"item cannot be deleted while a match is in progress",
					fmt.Sprintf("%d active match(es)", matchErr.ActiveCount))
			case errors.Is(err, models.ErrNotFound):
				pkghttp.WriteNotFound(w, "item not found")
			case errors.Is(err, models.ErrUnauthorized):
				pkghttp.WriteForbidden(w, "only the owner can delete this item")
			default:
				pkghttp.WriteInternalError(w, "failed to delete item")
			}
			return
		}

		pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "item deleted",
		})
	}
}

// Restore undoes a soft delete within the recovery window
func (h *ItemHandler) Restore(itemType models.ItemType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "id")

		err := h.lifecycle.RestoreItem(r.Context(), itemType, itemID, auth.UserID(r.Context()))
		if err != nil {
			var windowErr *models.RestoreWindowError
			switch {
			case errors.As(err, &windowErr):
				pkghttp.WriteGone(w, "the restore window for this item has expired")
			case errors.Is(err, models.ErrNotFound):
				pkghttp.WriteNotFound(w, "item not found")
			case errors.Is(err, models.ErrUnauthorized):
				pkghttp.WriteForbidden(w, "only the user who deleted this item can restore it")
			default:
				pkghttp.WriteInternalError(w, "failed to restore item")
			}
			return
		}

		pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "item restored",
		})
	}
}
