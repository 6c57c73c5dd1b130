// internal/models/priority.go
package models

// PriorityAdopterItem is one row of the interested-adopters ranking.
type PriorityAdopterItem struct {
	AdopterID           string  `json:"adopterId"`
	DisplayName         string  `json:"displayName"`
	AvatarURL           *string `json:"avatarUrl"`
	MatchScore          *int    `json:"matchScore"`
	ProfileCompleteness int     `json:"profileCompleteness"`
	HasConversation     bool    `json:"hasConversation"`
	ConversationID      *string `json:"conversationId"`
	PriorityScore       int     `json:"priorityScore"`
}
