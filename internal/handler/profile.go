package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/logger"
	"github.com/osse101/geotreasure/internal/profile"
)

// RegisterProfileRequest is the body of POST /profiles. The owner id comes from the token.
type RegisterProfileRequest struct {
	Username string `json:"username" validate:"required,max=50"`
}

// RewardLister reads an owner's reward collection
type RewardLister interface {
	Collection(ctx context.Context, ownerID string) ([]domain.RewardRecord, error)
}

// RewardsResponse lists the rewards an owner has minted
type RewardsResponse struct {
	OwnerID string                `json:"owner_id"`
	Count   int                   `json:"count"`
	Rewards []domain.RewardRecord `json:"rewards"`
}

// HandleRegisterProfile creates the caller's progress profile
func HandleRegisterProfile(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := requireOwner(w, r)
		if !ok {
			return
		}

		var req RegisterProfileRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register profile"); err != nil {
			return
		}
		logger.FromContext(r.Context()).Debug(LogMsgProfileRequested, "owner_id", owner)

		view, err := svc.Register(r.Context(), owner, req.Username)
		if err != nil {
			respondServiceError(w, r, "Register profile", err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgProfileCreated, Data: view})
	}
}

// HandleGetProfile returns a profile with progress toward the next rank
func HandleGetProfile(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := chi.URLParam(r, "ownerID")
		if ownerID == "" {
			missingParam(w, "ownerID")
			return
		}

		view, err := svc.Get(r.Context(), ownerID)
		if err != nil {
			respondServiceError(w, r, "Get profile", err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// HandleGetRewards returns the reward collection of an existing profile
func HandleGetRewards(profiles profile.Service, rewards RewardLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := chi.URLParam(r, "ownerID")
		if ownerID == "" {
			missingParam(w, "ownerID")
			return
		}

		if _, err := profiles.Get(r.Context(), ownerID); err != nil {
			respondServiceError(w, r, "Get rewards", err)
			return
		}

		records, err := rewards.Collection(r.Context(), ownerID)
		if err != nil {
			respondServiceError(w, r, "Get rewards", err)
			return
		}
		if records == nil {
			records = []domain.RewardRecord{}
		}

		respondJSON(w, http.StatusOK, RewardsResponse{OwnerID: ownerID, Count: len(records), Rewards: records})
	}
}
