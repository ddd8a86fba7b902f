package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/service"

	"github.com/gorilla/mux"
)

const maxUploadBytes = 10 << 20

type ItemHandler struct {
	items service.ItemService
}

func NewItemHandler(items service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// Create accepts a multipart form: an "item" JSON part plus a required
// "image" file part.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid multipart form")
		return
	}

	var item domain.Item
	if err := json.Unmarshal([]byte(r.FormValue("item")), &item); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid item payload")
		return
	}

	var (
		imageName, imageType string
		image                io.Reader
	)
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageName = header.Filename
		imageType = header.Header.Get("Content-Type")
		image = file
	}

	created, err := h.items.Create(r.Context(), userID, &item, imageName, imageType, image)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid id")
		return
	}
	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ItemFilter{
		Location:    q.Get("location"),
		Category:    q.Get("category"),
		Search:      q.Get("search"),
		ListingType: domain.ListingType(q.Get("listing_type")),
		Sort:        domain.ItemSort(q.Get("sort")),
	}
	if owner := q.Get("owner_id"); owner != "" {
		id, err := strconv.ParseInt(owner, 10, 32)
		if err != nil {
			respondErrorCode(w, http.StatusBadRequest, "validation", "invalid owner_id")
			return
		}
		filter.OwnerID = int32(id)
	}

	items, err := h.items.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid id")
		return
	}

	var item domain.Item
	if err := decodeJSON(r, &item); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	item.ID = id

	if err := h.items.Update(r.Context(), userID, &item); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid id")
		return
	}
	if err := h.items.Delete(r.Context(), userID, id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ItemHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid id")
		return
	}
	dates, err := h.items.BlockedDates(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"blocked_dates": dates})
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}
