package models

// APIResponse is the envelope of every JSON response, local or remote
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Source  string      `json:"source,omitempty"`
}

// Data sources reported in responses
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// StatusChangeRequest moves an application to a new status
type StatusChangeRequest struct {
	Status ApplicationStatus `json:"status" binding:"required"`
}

// AssistantRequest is a help-chat question
type AssistantRequest struct {
	Message string `json:"message" binding:"required"`
}

// AssistantReply is the scripted help-chat answer
type AssistantReply struct {
	Reply   string `json:"reply"`
	Matched bool   `json:"matched"`
}
