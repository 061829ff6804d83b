package handlers

import (
	"log"
	"net/http"
	"strings"

	"classifieds/internal/interfaces"
	"classifieds/internal/models"
	"classifieds/internal/storage"
)

const (
	defaultAdPageSize = 12
	maxAdPageSize     = 100
)

type AdHandler struct {
	*BaseHandler
	ads       interfaces.AdRepository
	media     interfaces.AdMediaRepository
	campaigns interfaces.CampaignRepository
	store     storage.Store
}

func NewAdHandler(
	base *BaseHandler,
	ads interfaces.AdRepository,
	media interfaces.AdMediaRepository,
	campaigns interfaces.CampaignRepository,
	store storage.Store,
) *AdHandler {
	return &AdHandler{
		BaseHandler: base,
		ads:         ads,
		media:       media,
		campaigns:   campaigns,
		store:       store,
	}
}

func adFilterFromQuery(r *http.Request) (models.AdFilter, error) {
	q := r.URL.Query()
	filter := models.AdFilter{
		CampaignID: q.Get("campaign_id"),
		AreaID:     q.Get("area_id"),
		CityID:     q.Get("city_id"),
		Search:     strings.TrimSpace(q.Get("q")),
	}

	var err error
	if filter.Hot, err = parseBoolParam(r, "hot"); err != nil {
		return filter, err
	}
	if filter.Premium, err = parseBoolParam(r, "premium"); err != nil {
		return filter, err
	}
	if filter.HappyHour, err = parseBoolParam(r, "happy_hour"); err != nil {
		return filter, err
	}
	return filter, nil
}

// ListAds godoc
// @Summary List ads
// @Description Paginated; premium ads first, then newest.
// @Tags ads
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size"
// @Param campaign_id query string false "Campaign"
// @Param area_id query string false "Area"
// @Param city_id query string false "City"
// @Param hot query bool false "Only hot ads"
// @Param premium query bool false "Only premium ads"
// @Param happy_hour query bool false "Only happy hour ads"
// @Param q query string false "Search in name and description"
// @Success 200 {object} PaginatedResponse
// @Router /api/ads [get]
func (h *AdHandler) ListAds(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := parsePaginationParams(r, defaultAdPageSize, maxAdPageSize)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	filter, err := adFilterFromQuery(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

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

// CreateAd godoc
// @Summary Create an ad
// @Tags ads
// @Accept json
// @Produce json
// @Param ad body models.CreateAdRequest true "Ad"
// @Success 201 {object} models.Ad
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/ads [post]
func (h *AdHandler) CreateAd(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if _, err := h.campaigns.GetByID(r.Context(), req.CampaignID); err != nil {
		h.respondError(w, r, notFound("campaign", err))
		return
	}

	ad := &models.Ad{
		Name:        req.Name,
		Description: req.Description,
		Phone:       req.Phone,
		Age:         req.Age,
		IsHappyHour: req.IsHappyHour,
		IsHot:       req.IsHot,
		IsPremium:   req.IsPremium,
		CampaignID:  req.CampaignID,
		AreaID:      req.AreaID,
		CityIDs:     req.CityIDs,
	}
	if err := h.ads.Create(r.Context(), ad); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ad)
}

// GetAd godoc
// @Summary Get an ad with its media
// @Tags ads
// @Produce json
// @Param id path string true "Ad ID"
// @Success 200 {object} models.Ad
// @Failure 404 {object} map[string]interface{}
// @Router /api/ads/{id} [get]
func (h *AdHandler) GetAd(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	ad, err := h.ads.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("ad", err))
		return
	}

	media, err := h.media.ListByAd(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ad.Media = media

	writeJSON(w, http.StatusOK, ad)
}

// UpdateAd godoc
// @Summary Update an ad
// @Tags ads
// @Accept json
// @Produce json
// @Param id path string true "Ad ID"
// @Param ad body models.UpdateAdRequest true "Fields to change"
// @Success 200 {object} models.Ad
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/ads/{id} [put]
func (h *AdHandler) UpdateAd(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	ad, err := h.ads.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("ad", err))
		return
	}

	var req models.UpdateAdRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if req.CampaignID != nil && *req.CampaignID != ad.CampaignID {
		if _, err := h.campaigns.GetByID(r.Context(), *req.CampaignID); err != nil {
			h.respondError(w, r, notFound("campaign", err))
			return
		}
		ad.CampaignID = *req.CampaignID
	}
	applyAdUpdate(ad, &req)

	if err := h.ads.Update(r.Context(), ad); err != nil {
		h.respondError(w, r, notFound("ad", err))
		return
	}

	writeJSON(w, http.StatusOK, ad)
}

func applyAdUpdate(ad *models.Ad, req *models.UpdateAdRequest) {
	if req.Name != nil {
		ad.Name = *req.Name
	}
	if req.Description != nil {
		ad.Description = *req.Description
	}
	if req.Phone != nil {
		ad.Phone = *req.Phone
	}
	if req.Age != nil {
		ad.Age = req.Age
	}
	if req.IsHappyHour != nil {
		ad.IsHappyHour = *req.IsHappyHour
	}
	if req.IsHot != nil {
		ad.IsHot = *req.IsHot
	}
	if req.IsPremium != nil {
		ad.IsPremium = *req.IsPremium
	}
	if req.AreaID != nil {
		ad.AreaID = req.AreaID
	}
	if req.CityIDs != nil {
		ad.CityIDs = *req.CityIDs
	}
}

// DeleteAd godoc
// @Summary Delete an ad and its stored media
// @Tags ads
// @Produce json
// @Param id path string true "Ad ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]interface{}
// @Router /api/ads/{id} [delete]
func (h *AdHandler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.ads.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, notFound("ad", err))
		return
	}

	// Rows are gone already; leftover objects are only logged.
	if err := h.store.Clear(r.Context(), storage.AdPrefix(id)); err != nil {
		log.Printf("Error clearing media of deleted ad %s: %v", id, err)
	}

	writeDeleted(w, "ad", id)
}

// LikeAd handles POST /api/ads/{id}/like
func (h *AdHandler) LikeAd(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	likes, err := h.ads.IncrementLikes(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("ad", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "likes_count": likes})
}

// ViewAd handles POST /api/ads/{id}/view
func (h *AdHandler) ViewAd(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	views, err := h.ads.IncrementViews(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("ad", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "views_count": views})
}
