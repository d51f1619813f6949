package llm

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams holds parameters for chat completion requests.
type ChatParams struct {
	// Model overrides the client's default model when non-empty. The pipeline
	// uses this to address its classifier, answer and refiner models through
	// one client.
	Model string

	// MaxTokens limits generation length. 0 means no limit.
	MaxTokens int

	// Temperature controls output randomness. 0 uses the server default.
	Temperature float32
}
