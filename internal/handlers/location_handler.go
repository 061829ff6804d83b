package handlers

import (
	"net/http"

	"classifieds/internal/interfaces"
	"classifieds/internal/models"
)

type LocationHandler struct {
	*BaseHandler
	areas  interfaces.AreaRepository
	cities interfaces.CityRepository
}

func NewLocationHandler(base *BaseHandler, areas interfaces.AreaRepository, cities interfaces.CityRepository) *LocationHandler {
	return &LocationHandler{BaseHandler: base, areas: areas, cities: cities}
}

// ListAreas handles GET /api/areas
func (h *LocationHandler) ListAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.areas.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, areas)
}

// CreateArea handles POST /api/areas
func (h *LocationHandler) CreateArea(w http.ResponseWriter, r *http.Request) {
	var req models.AreaRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	area := &models.Area{Name: req.Name}
	if err := h.areas.Create(r.Context(), area); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, area)
}

// GetArea handles GET /api/areas/{id}; the response includes the area's cities.
func (h *LocationHandler) GetArea(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	area, err := h.areas.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("area", err))
		return
	}
	writeJSON(w, http.StatusOK, area)
}

func (h *LocationHandler) UpdateArea(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var req models.AreaRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	area := &models.Area{ID: id, Name: req.Name}
	if err := h.areas.Update(r.Context(), area); err != nil {
		h.respondError(w, r, notFound("area", err))
		return
	}
	writeJSON(w, http.StatusOK, area)
}

func (h *LocationHandler) DeleteArea(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.areas.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, notFound("area", err))
		return
	}
	writeDeleted(w, "area", id)
}

// ListAreaCities handles GET /api/areas/{id}/cities
func (h *LocationHandler) ListAreaCities(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	area, err := h.areas.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("area", err))
		return
	}
	cities := area.Cities
	if cities == nil {
		cities = []models.City{}
	}
	writeJSON(w, http.StatusOK, cities)
}

// ListCities handles GET /api/cities?area_id=
func (h *LocationHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.cities.List(r.Context(), r.URL.Query().Get("area_id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}

// CreateCity handles POST /api/cities
func (h *LocationHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCityRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if _, err := h.areas.GetByID(r.Context(), req.AreaID); err != nil {
		h.respondError(w, r, notFound("area", err))
		return
	}

	city := &models.City{Name: req.Name, AreaID: req.AreaID}
	if err := h.cities.Create(r.Context(), city); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, city)
}

func (h *LocationHandler) GetCity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	city, err := h.cities.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("city", err))
		return
	}
	writeJSON(w, http.StatusOK, city)
}

func (h *LocationHandler) UpdateCity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	city, err := h.cities.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("city", err))
		return
	}

	var req models.UpdateCityRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if req.Name != nil {
		city.Name = *req.Name
	}
	if req.AreaID != nil && *req.AreaID != city.AreaID {
		if _, err := h.areas.GetByID(r.Context(), *req.AreaID); err != nil {
			h.respondError(w, r, notFound("area", err))
			return
		}
		city.AreaID = *req.AreaID
	}

	if err := h.cities.Update(r.Context(), city); err != nil {
		h.respondError(w, r, notFound("city", err))
		return
	}
	writeJSON(w, http.StatusOK, city)
}

func (h *LocationHandler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.cities.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, notFound("city", err))
		return
	}
	writeDeleted(w, "city", id)
}
