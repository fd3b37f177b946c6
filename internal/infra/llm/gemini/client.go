package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/yanqian/safeland/internal/infra/llm/chatgpt"
)

// DefaultModel is used when the configured model is not a Gemini model.
const DefaultModel = "gemini-2.0-flash"

type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

// Client adapts the Gemini API to the chat completion contract.
type Client struct {
	models models
}

// NewClient constructs a Gemini backed chat client.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{models: client.Models}, nil
}

// CreateChatCompletion performs a single generate call.
func (c *Client) CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	contents, config := translate(req)
	resp, err := c.models.GenerateContent(ctx, modelName(req.Model), contents, config)
	if err != nil {
		return chatgpt.ChatCompletionResponse{}, fmt.Errorf("gemini generate: %w", err)
	}
	text, ok := responseText(resp)
	if !ok {
		return chatgpt.ChatCompletionResponse{}, nil
	}
	return chatgpt.ChatCompletionResponse{
		Choices: []chatgpt.Choice{{Message: chatgpt.Message{Role: "assistant", Content: text}}},
	}, nil
}

// CreateChatCompletionStream starts a streaming generate call.
func (c *Client) CreateChatCompletionStream(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.Stream, error) {
	contents, config := translate(req)
	ctx, cancel := context.WithCancel(ctx)
	next, stop := iter.Pull2(c.models.GenerateContentStream(ctx, modelName(req.Model), contents, config))
	return &stream{next: next, stop: stop, cancel: cancel}, nil
}

// stream serializes next and stop, which iter.Pull2 forbids calling concurrently.
// Close cancels the request first so a blocked Recv returns and releases mu.
type stream struct {
	mu     sync.Mutex
	next   func() (*genai.GenerateContentResponse, error, bool)
	stop   func()
	cancel context.CancelFunc
	closed bool
}

func (s *stream) Recv() (chatgpt.ChatCompletionStreamChunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return chatgpt.ChatCompletionStreamChunk{}, io.EOF
	}
	resp, err, ok := s.next()
	if !ok {
		return chatgpt.ChatCompletionStreamChunk{}, io.EOF
	}
	if err != nil {
		return chatgpt.ChatCompletionStreamChunk{}, fmt.Errorf("gemini stream: %w", err)
	}
	text, _ := responseText(resp)
	return chatgpt.ChatCompletionStreamChunk{
		Choices: []chatgpt.StreamChoice{{Delta: chatgpt.Message{Role: "assistant", Content: text}}},
	}, nil
}

func (s *stream) Close() error {
	s.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		s.stop()
	}
	return nil
}

// translate maps system messages to the system instruction and the rest to contents.
func translate(req chatgpt.ChatCompletionRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	config := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		temperature := req.Temperature
		config.Temperature = &temperature
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	var system []string
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case "system":
			system = append(system, msg.Content)
		case "assistant":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	if len(system) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	return contents, config
}

func modelName(requested string) string {
	if strings.HasPrefix(requested, "gemini") {
		return requested
	}
	return DefaultModel
}

func responseText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), true
}
