package domain

// Message is the chat payload the two clients exchange. The server
// relays it verbatim and never stores it; the shape is documented here
// for tests and for anyone reading the wire traffic. Sender is resolved
// client-side ("me"/"stranger"), it carries no server identity.
type Message struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Sender    string      `json:"sender"`
	Timestamp int64       `json:"timestamp"`
	ReplyTo   *MessageRef `json:"replyTo,omitempty"`
}

// MessageRef references an earlier message when replying.
type MessageRef struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Sender string `json:"sender"`
}
