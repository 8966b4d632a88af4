package handlers

import (
	"github.com/xpanvictor/vidquiz/internal/domains/video"
	"github.com/xpanvictor/vidquiz/internal/types"
)

// Response wrapper types for Swagger documentation

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Message string `json:"message" example:"Operation completed successfully"`
}

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	Error   string          `json:"error" example:"video not found"`
	Code    types.ErrorCode `json:"code" example:"NOT_FOUND"`
	Details string          `json:"details,omitempty" example:"invalid character 'x' looking for beginning of value"`
}

// PaginationInfo represents pagination information
type PaginationInfo struct {
	Total  int64 `json:"total" example:"150"`
	Offset int   `json:"offset" example:"0"`
	Limit  int   `json:"limit" example:"20"`
}

// UploadResponse represents the response for a video upload
type UploadResponse struct {
	Message string      `json:"message" example:"Video uploaded, processing started"`
	Video   video.Video `json:"video"`
}

// VideoResponse represents the response for getting a single video
type VideoResponse struct {
	Video video.Video `json:"video"`
}

// ListVideosResponse represents the response for listing videos
type ListVideosResponse struct {
	Videos     []video.VideoSummary `json:"videos"`
	Pagination PaginationInfo       `json:"pagination"`
}

// QuestionResponse represents the response for editing a question
type QuestionResponse struct {
	Message  string         `json:"message" example:"Question updated successfully"`
	Question types.Question `json:"question"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
