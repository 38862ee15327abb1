// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message    string `json:"message" binding:"required"`
	SessionID  string `json:"sessionId"`
	Language   string `json:"language"`
	ShopDomain string `json:"shopDomain"`
}
