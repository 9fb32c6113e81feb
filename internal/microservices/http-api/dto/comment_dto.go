package dto

import (
	"time"

	"yamdb/internal/microservices/http-api/models"
)

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToCommentResponse(c *models.Comment) CommentResponse {
	resp := CommentResponse{ID: c.ID, Text: c.Text, PubDate: c.PubDate}
	if c.Author != nil {
		resp.Author = c.Author.Username
	}
	return resp
}

func FromModelsToCommentResponses(cs []models.Comment) []CommentResponse {
	out := make([]CommentResponse, len(cs))
	for i := range cs {
		out[i] = FromModelToCommentResponse(&cs[i])
	}
	return out
}
