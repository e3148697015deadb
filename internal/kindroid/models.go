package kindroid

import "time"

// Default endpoint and policy values
const (
	DefaultBaseURL    = "https://api.kindroid.ai/v1"
	DefaultTimeout    = 90 * time.Second
	systemUsername    = "System"
	requesterHashSize = 32
)

// sendMessageRequest is the body for POST /send-message.
type sendMessageRequest struct {
	AIID    string `json:"ai_id"`
	Message string `json:"message"`
}

// conversationEntry is one turn in the /discord-bot conversation payload.
type conversationEntry struct {
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// discordBotRequest is the body for POST /discord-bot.
type discordBotRequest struct {
	ShareCode    string              `json:"share_code"`
	EnableFilter bool                `json:"enable_filter"`
	Conversation []conversationEntry `json:"conversation"`
}

// replyResponse is the response body shared by both endpoints.
type replyResponse struct {
	Reply string `json:"reply"`
}
