package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	apperrors "studyhub/internal/errors"
)

const (
	flashcardMinCount = 1
	flashcardMaxCount = 50

	// DefaultGroqBaseURL is the Groq OpenAI-compatible endpoint.
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

	flashcardModel       = "llama-3.3-70b-versatile"
	flashcardTemperature = 0.7
	flashcardMaxTokens   = 2000
	flashcardTimeout     = 30 * time.Second
)

// flashcardService generates question/answer flashcards through an
// OpenAI-compatible chat-completions API.
type flashcardService struct {
	client *openai.Client
}

// NewFlashcardService creates a new FlashcardServicer. An empty baseURL
// falls back to the Groq endpoint.
func NewFlashcardService(apiKey, baseURL string) FlashcardServicer {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	clientConfig.BaseURL = baseURL
	return &flashcardService{client: openai.NewClientWithConfig(clientConfig)}
}

// GenerateFlashcards asks the model for count flashcards about the given
// subject and optional topic. The count is validated before any upstream
// request; exactly one chat-completion call is made per invocation, bounded
// by a 30 second wait. Any upstream failure, timeout, or unparseable reply
// surfaces as an upstream error.
func (s *flashcardService) GenerateFlashcards(ctx context.Context, subject, topic string, count int) ([]Flashcard, error) {
	if subject == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "subject is required")
	}
	if count < flashcardMinCount || count > flashcardMaxCount {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("count must be between %d and %d", flashcardMinCount, flashcardMaxCount))
	}

	ctx, cancel := context.WithTimeout(ctx, flashcardTimeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: flashcardModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a teacher who specializes in writing educational flashcards.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildFlashcardPrompt(subject, topic, count),
			},
		},
		Temperature: flashcardTemperature,
		MaxTokens:   flashcardMaxTokens,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFlashcardUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrFlashcardUpstream, "Upstream returned no choices")
	}

	flashcards, err := parseFlashcardReply(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFlashcardUpstream, err)
	}
	return flashcards, nil
}

// buildFlashcardPrompt asks for a strict JSON array so the reply can be
// decoded without post-processing beyond fence stripping.
func buildFlashcardPrompt(subject, topic string, count int) string {
	var b strings.Builder
	if topic != "" {
		fmt.Fprintf(&b, "Create exactly %d educational flashcards about %s, focusing specifically on: %s.\n\n", count, subject, topic)
	} else {
		fmt.Fprintf(&b, "Create exactly %d educational flashcards about %s.\n\n", count, subject)
	}
	b.WriteString(`Each flashcard must have:
- A clear, direct question
- A concise, accurate answer

Format your reply as a JSON array of objects with 'question' and 'answer' keys.

Expected format example:
[
  {"question": "What is...?", "answer": "It is..."},
  {"question": "How does ... work?", "answer": "It works by..."}
]

`)
	fmt.Fprintf(&b, "Now create the %d flashcards:", count)
	return b.String()
}

// parseFlashcardReply strips markdown code fences the model sometimes wraps
// around its output and decodes the JSON array.
func parseFlashcardReply(content string) ([]Flashcard, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var flashcards []Flashcard
	if err := json.Unmarshal([]byte(content), &flashcards); err != nil {
		return nil, fmt.Errorf("failed to decode flashcards: %w", err)
	}
	return flashcards, nil
}
