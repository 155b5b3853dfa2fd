package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/item"
)

// ItemView is the public form of a catalogue item. The location reference
// stays server-side; it is the credential a finder has to present.
type ItemView struct {
	ID           string `json:"item_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURI     string `json:"image_uri"`
	Rarity       string `json:"rarity"`
	RequiredRank string `json:"required_rank"`
	RewardPoints int    `json:"reward_points"`
	Discovered   bool   `json:"discovered"`
	DiscoveredBy string `json:"discovered_by,omitempty"`
}

// NewItemView strips the location reference from it
func NewItemView(it domain.Item) ItemView {
	return ItemView{
		ID:           it.ID,
		Name:         it.Name,
		Description:  it.Description,
		ImageURI:     it.ImageURI,
		Rarity:       it.Rarity.String(),
		RequiredRank: it.RequiredRank.String(),
		RewardPoints: it.RewardPoints,
		Discovered:   it.Discovered,
		DiscoveredBy: it.DiscoveredBy,
	}
}

// ItemListResponse wraps a catalogue listing
type ItemListResponse struct {
	Count int        `json:"count"`
	Items []ItemView `json:"items"`
}

// HandleListItems lists the catalogue.
// Query: rarity=common|rare|legendary, available=true to hide discovered items.
func HandleListItems(svc item.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter item.ListFilter

		if raw := r.URL.Query().Get("rarity"); raw != "" {
			rarity, err := domain.ParseRarity(raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRarity)
				return
			}
			filter.Rarity = &rarity
		}
		filter.OnlyAvailable = GetOptionalQueryParam(r, "available", "false") == "true"

		items := svc.List(r.Context(), filter)
		views := make([]ItemView, 0, len(items))
		for _, it := range items {
			views = append(views, NewItemView(it))
		}
		respondJSON(w, http.StatusOK, ItemListResponse{Count: len(views), Items: views})
	}
}

// HandleGetItem returns one catalogue item
func HandleGetItem(svc item.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			missingParam(w, "itemID")
			return
		}

		it, err := svc.Get(r.Context(), itemID)
		if err != nil {
			respondServiceError(w, r, "Get item", err)
			return
		}
		respondJSON(w, http.StatusOK, NewItemView(it))
	}
}
