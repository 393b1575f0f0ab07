package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mdcampos/wants-api/internal/apperrors"
	"github.com/mdcampos/wants-api/internal/models"
	"github.com/mdcampos/wants-api/internal/services"
	"github.com/mdcampos/wants-api/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxImageUploadBytes = 10 << 20

type WantHandler struct {
	Service *services.WantService
}

func NewWantHandler(service *services.WantService) *WantHandler {
	return &WantHandler{
		Service: service,
	}
}

// CreateWantRequest is the JSON payload for creating a want.
type CreateWantRequest struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Visibility  *models.WantVisibility `json:"visibility"`
}

// UpdateWantRequest is the JSON payload for a partial update. Absent
// fields are left untouched.
type UpdateWantRequest struct {
	Admins      []string               `json:"admins"`
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Visibility  *models.WantVisibility `json:"visibility"`
	Location    *models.WantLocation   `json:"location"`
}

// CreateWantHandler handles creation of a new want.
func (h *WantHandler) CreateWantHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateWantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	creatorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	opts := services.CreateWantOptions{
		Creator:     creatorID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Visibility != nil {
		opts.Visibility = *req.Visibility
	}

	want, err := h.Service.CreateWant(r.Context(), opts)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			http.Error(w, "Creator not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, apperrors.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logrus.WithError(err).Error("Failed to create want")
		http.Error(w, "Failed to create want", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(want)
}

// GetWantHandler retrieves a specific want by ID.
func (h *WantHandler) GetWantHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wantID := mux.Vars(r)["id"]

	want, err := h.Service.GetWantByID(r.Context(), wantID)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch want")
		http.Error(w, "Failed to fetch want", http.StatusInternalServerError)
		return
	}
	if want == nil {
		http.Error(w, "Want not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(want)
}

// UpdateWantHandler applies a partial update to a want. Only admins of
// the want may update it.
func (h *WantHandler) UpdateWantHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wantID := mux.Vars(r)["id"]

	want, err := h.Service.GetWantByID(r.Context(), wantID)
	if err != nil {
		http.Error(w, "Failed to fetch want", http.StatusInternalServerError)
		return
	}
	if want == nil {
		http.Error(w, "Want not found", http.StatusNotFound)
		return
	}
	if !isAdmin(want, claims.UserID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var req UpdateWantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid update payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	opts := services.UpdateWantOptions{
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
		Location:    req.Location,
	}

	if req.Admins != nil {
		admins := make([]primitive.ObjectID, 0, len(req.Admins))
		for _, admin := range req.Admins {
			adminID, err := primitive.ObjectIDFromHex(admin)
			if err != nil {
				http.Error(w, "Invalid admin ID", http.StatusBadRequest)
				return
			}
			admins = append(admins, adminID)
		}
		opts.Admins = admins
	}

	updated, err := h.Service.UpdateWantByID(r.Context(), wantID, opts)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			http.Error(w, "Want not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, apperrors.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logrus.WithError(err).Error("Failed to update want")
		http.Error(w, "Failed to update want", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// UploadWantImageHandler attaches an uploaded image to a want. The file
// type is determined from the uploaded bytes, not from the declared
// Content-Type.
func (h *WantHandler) UploadWantImageHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wantID := mux.Vars(r)["id"]

	want, err := h.Service.GetWantByID(r.Context(), wantID)
	if err != nil {
		http.Error(w, "Failed to fetch want", http.StatusInternalServerError)
		return
	}
	if want == nil {
		http.Error(w, "Want not found", http.StatusNotFound)
		return
	}
	if !isAdmin(want, claims.UserID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		http.Error(w, "File too big or invalid format", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file in request", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	updated, err := h.Service.UpdateWantByID(r.Context(), wantID, services.UpdateWantOptions{
		ImageData: data,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidContent) {
			http.Error(w, "Unrecognized image format", http.StatusBadRequest)
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			http.Error(w, "Want not found", http.StatusNotFound)
			return
		}
		logrus.WithError(err).Error("Failed to upload want image")
		http.Error(w, "Failed to upload want image", http.StatusInternalServerError)
		return
	}

	logrus.WithFields(logrus.Fields{
		"wantID": updated.ID.Hex(),
		"userID": claims.UserID,
	}).Info("Want image updated")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func isAdmin(want *models.Want, userID string) bool {
	for _, admin := range want.Admins {
		if admin.Hex() == userID {
			return true
		}
	}
	return false
}
