package dto

import (
	"time"

	"yamdb/internal/microservices/http-api/models"
)

type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewRequest changes text and/or score; author, title and pub_date are fixed
type UpdateReviewRequest struct {
	Text  *string `json:"text" binding:"omitempty,min=1"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToReviewResponse(r *models.Review) ReviewResponse {
	resp := ReviewResponse{ID: r.ID, Text: r.Text, Score: r.Score, PubDate: r.PubDate}
	if r.Author != nil {
		resp.Author = r.Author.Username
	}
	return resp
}

func FromModelsToReviewResponses(rs []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(rs))
	for i := range rs {
		out[i] = FromModelToReviewResponse(&rs[i])
	}
	return out
}
