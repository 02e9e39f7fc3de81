package handler

import "github.com/erp/feeengine/internal/interfaces/http/dto"

// APIResponse is dto.Response with a typed data field, for the OpenAPI document
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success  bool           `json:"success"`
	Data     T              `json:"data,omitempty"`
	Error    *dto.ErrorInfo `json:"error,omitempty"`
	Meta     *dto.Meta      `json:"meta,omitempty"`
	Warnings []dto.Warning  `json:"warnings,omitempty"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}
