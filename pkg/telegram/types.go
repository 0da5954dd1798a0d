package telegram

// Update is an incoming webhook update. Only plain messages are read; other
// update kinds decode with a nil Message.
type Update struct {
	Message *Message `json:"message,omitempty"`
}

// Message is the part of a Telegram message the planner reads.
type Message struct {
	Chat *Chat  `json:"chat"`
	Text string `json:"text,omitempty"`
}

// Chat identifies where replies go.
type Chat struct {
	ID int64 `json:"id"`
}

// SendMessageRequest is the sendMessage payload.
type SendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}
