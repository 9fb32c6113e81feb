package dto

import "yamdb/internal/microservices/http-api/models"

// CreateLookupRequest creates a category or a genre
type CreateLookupRequest struct {
	Name string `json:"name" binding:"required,max=200"`
	Slug string `json:"slug" binding:"required,max=50,slug"`
}

// UpdateLookupRequest patches a category or a genre
type UpdateLookupRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=200"`
	Slug *string `json:"slug" binding:"omitempty,max=50,slug"`
}

// CategoryResponse is also the embedded category of a title
type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}

func FromModelsToCategoryResponses(cs []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(cs))
	for i := range cs {
		out[i] = FromModelToCategoryResponse(&cs[i])
	}
	return out
}

func FromModelToGenreResponse(g *models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}

func FromModelsToGenreResponses(gs []models.Genre) []GenreResponse {
	out := make([]GenreResponse, len(gs))
	for i := range gs {
		out[i] = FromModelToGenreResponse(&gs[i])
	}
	return out
}
