package handlers

import (
	"net/http"
	"strings"

	"classifieds/internal/interfaces"
	"classifieds/internal/models"
)

type ClientHandler struct {
	*BaseHandler
	repo      interfaces.ClientRepository
	campaigns interfaces.CampaignRepository
}

func NewClientHandler(base *BaseHandler, repo interfaces.ClientRepository, campaigns interfaces.CampaignRepository) *ClientHandler {
	return &ClientHandler{
		BaseHandler: base,
		repo:        repo,
		campaigns:   campaigns,
	}
}

// CreateClient godoc
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body models.CreateClientRequest true "Client"
// @Success 201 {object} models.Client
// @Failure 400 {object} map[string]string
// @Router /api/clients [post]
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClientRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := h.ensureEmailFree(r, req.Email, ""); err != nil {
		h.respondError(w, r, err)
		return
	}

	client := &models.Client{
		Name:   req.Name,
		Title:  req.Title,
		Email:  req.Email,
		Mobile: req.Mobile,
	}
	if err := h.repo.Create(r.Context(), client); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) ensureEmailFree(r *http.Request, email, excludeID string) error {
	exists, err := h.repo.ExistsByEmail(r.Context(), email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return badRequest("email_in_use", "A client with this email already exists")
	}
	return nil
}

// GetClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]string
// @Router /api/clients/{id} [get]
func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	client, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("client", err))
		return
	}

	writeJSON(w, http.StatusOK, client)
}

// ListClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Success 200 {array} models.Client
// @Router /api/clients [get]
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.repo.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if clients == nil {
		clients = []models.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

// UpdateClient godoc
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body models.UpdateClientRequest true "Fields to change"
// @Success 200 {object} models.Client
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/clients/{id} [put]
func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if _, err := h.repo.GetByID(r.Context(), id); err != nil {
		h.respondError(w, r, notFound("client", err))
		return
	}

	var req models.UpdateClientRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if req.Name == nil && req.Title == nil && req.Email == nil && req.Mobile == nil {
		h.respondError(w, r, badRequest("no_fields", "No fields to update"))
		return
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		req.Email = &email
		if err := h.ensureEmailFree(r, email, id); err != nil {
			h.respondError(w, r, err)
			return
		}
	}

	if err := h.repo.Update(r.Context(), id, &req); err != nil {
		h.respondError(w, r, notFound("client", err))
		return
	}

	client, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("client", err))
		return
	}

	writeJSON(w, http.StatusOK, client)
}

// DeleteClient godoc
// @Summary Delete a client
// @Description Refused with 400 while the client still has campaigns.
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/clients/{id} [delete]
func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, notFound("client", err))
		return
	}

	writeDeleted(w, "client", id)
}

// ListClientCampaigns godoc
// @Summary List the campaigns of a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {array} models.Campaign
// @Failure 404 {object} map[string]string
// @Router /api/clients/{id}/campaigns [get]
func (h *ClientHandler) ListClientCampaigns(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if _, err := h.repo.GetByID(r.Context(), id); err != nil {
		h.respondError(w, r, notFound("client", err))
		return
	}

	campaigns, err := h.campaigns.List(r.Context(), interfaces.CampaignFilter{ClientID: id})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if campaigns == nil {
		campaigns = []*models.Campaign{}
	}

	writeJSON(w, http.StatusOK, campaigns)
}
