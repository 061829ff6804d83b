package models

type Area struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Cities []City `json:"cities,omitempty"`
}

type City struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	AreaID string `json:"area_id"`
}

type AreaRequest struct {
	Name string `json:"name" validate:"required,min=2,max=128"`
}

type CreateCityRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=128"`
	AreaID string `json:"area_id" validate:"required,uuid"`
}

type UpdateCityRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=128"`
	AreaID *string `json:"area_id,omitempty" validate:"omitempty,uuid"`
}
