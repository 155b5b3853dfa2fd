package handler

import (
	"net/http"

	"github.com/osse101/geotreasure/internal/claim"
	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/logger"
	"github.com/osse101/geotreasure/internal/profile"
)

// ClaimRequest is the body of POST /claims. The finder is the token's owner.
type ClaimRequest struct {
	ItemID        string `json:"item_id" validate:"required,max=64"`
	LocationProof string `json:"location_proof" validate:"required,max=256"`
}

// ClaimResponse reports a successful discovery
type ClaimResponse struct {
	Message      string              `json:"message"`
	Record       domain.RewardRecord `json:"record"`
	Profile      profile.View        `json:"profile"`
	RankAdvanced bool                `json:"rank_advanced"`
}

// HandleClaim attempts to claim an item for the authenticated owner
func HandleClaim(svc claim.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := requireOwner(w, r)
		if !ok {
			return
		}

		var req ClaimRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim"); err != nil {
			return
		}

		result, err := svc.Claim(r.Context(), owner, req.ItemID, req.LocationProof)
		if err != nil {
			respondServiceError(w, r, "Claim", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgClaimAccepted,
			"owner_id", owner,
			"item_id", req.ItemID,
			"record_id", result.Record.ID)

		respondJSON(w, http.StatusCreated, ClaimResponse{
			Message:      MsgTreasureFound,
			Record:       result.Record,
			Profile:      profile.NewView(result.Profile),
			RankAdvanced: result.RankAdvanced(),
		})
	}
}
