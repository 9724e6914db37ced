package model

type ChatMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	Department string `json:"department,omitempty"`
}

type PostMessageRequest struct {
	Message string `json:"message"`
}
