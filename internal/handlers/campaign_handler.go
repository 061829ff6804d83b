// internal/handlers/campaign_handler.go
package handlers

import (
	"net/http"

	"classifieds/internal/interfaces"
	"classifieds/internal/models"
)

type CampaignHandler struct {
	*BaseHandler
	repo    interfaces.CampaignRepository
	clients interfaces.ClientRepository
	ads     interfaces.AdRepository
}

func NewCampaignHandler(
	base *BaseHandler,
	repo interfaces.CampaignRepository,
	clients interfaces.ClientRepository,
	ads interfaces.AdRepository,
) *CampaignHandler {
	return &CampaignHandler{
		BaseHandler: base,
		repo:        repo,
		clients:     clients,
		ads:         ads,
	}
}

// CreateCampaign handles POST /api/campaigns
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCampaignRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	client, err := h.clients.GetByID(r.Context(), req.ClientID)
	if err != nil {
		h.respondError(w, r, notFound("client", err))
		return
	}

	campaign := &models.Campaign{
		CampaignName: req.CampaignName,
		ClientID:     client.ID,
		ClientName:   client.Name,
	}
	if err := h.repo.Create(r.Context(), campaign); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, campaign)
}

// GetCampaign handles GET /api/campaigns/{id}
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	campaign, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("campaign", err))
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// ListCampaigns handles GET /api/campaigns?client_id=
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	filter := interfaces.CampaignFilter{
		ClientID: r.URL.Query().Get("client_id"),
	}

	campaigns, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if campaigns == nil {
		campaigns = []*models.Campaign{}
	}

	writeJSON(w, http.StatusOK, campaigns)
}

// UpdateCampaign handles PUT /api/campaigns/{id}
func (h *CampaignHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	campaign, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("campaign", err))
		return
	}

	var req models.UpdateCampaignRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if req.CampaignName == nil && req.ClientID == nil {
		h.respondError(w, r, badRequest("no_fields", "No fields to update"))
		return
	}

	if req.CampaignName != nil {
		campaign.CampaignName = *req.CampaignName
	}
	if req.ClientID != nil && *req.ClientID != campaign.ClientID {
		client, err := h.clients.GetByID(r.Context(), *req.ClientID)
		if err != nil {
			h.respondError(w, r, notFound("client", err))
			return
		}
		campaign.ClientID = client.ID
		campaign.ClientName = client.Name
	}

	if err := h.repo.Update(r.Context(), id, campaign); err != nil {
		h.respondError(w, r, notFound("campaign", err))
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// DeleteCampaign handles DELETE /api/campaigns/{id}; campaigns that still have ads are kept.
func (h *CampaignHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, notFound("campaign", err))
		return
	}

	writeDeleted(w, "campaign", id)
}

// ListCampaignAds handles GET /api/campaigns/{id}/ads
func (h *CampaignHandler) ListCampaignAds(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	page, pageSize, err := parsePaginationParams(r, 20, 100)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if _, err := h.repo.GetByID(r.Context(), id); err != nil {
		h.respondError(w, r, notFound("campaign", err))
		return
	}

	filter := models.AdFilter{CampaignID: id}
	total, err := h.ads.Count(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize
	ads, err := h.ads.List(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if ads == nil {
		ads = []*models.Ad{}
	}

	writePaginatedResponse(w, ads, page, pageSize, total)
}
