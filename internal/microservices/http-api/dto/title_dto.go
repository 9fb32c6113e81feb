package dto

import "yamdb/internal/microservices/http-api/models"

// CreateTitleRequest references category and genres by slug
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=300"`
	Year        *int     `json:"year" binding:"required"`
	Category    string   `json:"category" binding:"required,slug"`
	Genre       []string `json:"genre" binding:"required,dive,slug"`
}

// UpdateTitleRequest is a partial update. A present genre list replaces the set.
type UpdateTitleRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string   `json:"description" binding:"omitempty,max=300"`
	Year        *int      `json:"year"`
	Category    *string   `json:"category" binding:"omitempty,slug"`
	Genre       *[]string `json:"genre" binding:"omitempty,dive,slug"`
}

// TitleResponse is the read shape, with the computed rating
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Category    *CategoryResponse `json:"category"`
	Genre       []GenreResponse   `json:"genre"`
}

func FromModelToTitleResponse(t *models.Title) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Year:        t.Year,
		Rating:      t.Rating,
		Genre:       FromModelsToGenreResponses(t.Genres),
	}
	if t.Category != nil {
		c := FromModelToCategoryResponse(t.Category)
		resp.Category = &c
	}
	return resp
}

func FromModelsToTitleResponses(ts []models.Title) []TitleResponse {
	out := make([]TitleResponse, len(ts))
	for i := range ts {
		out[i] = FromModelToTitleResponse(&ts[i])
	}
	return out
}
