package advisor

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/yanqian/safeland/internal/infra/llm/chatgpt"
)

// ChatClient is the LLM backend contract shared by every provider adapter.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
	CreateChatCompletionStream(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.Stream, error)
}

// CompletionOptions are the model parameters for one call.
type CompletionOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
	Stream      bool
}

// Complete sends messages once and returns the full completion text. Streamed
// fragments are concatenated in arrival order before returning.
func Complete(ctx context.Context, client ChatClient, messages []chatgpt.Message, opts CompletionOptions) (string, error) {
	req := chatgpt.ChatCompletionRequest{
		Model:       opts.Model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if !opts.Stream {
		resp, err := client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", nil
		}
		return resp.Choices[0].Message.Content, nil
	}

	stream, err := client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", err
	}
	return drain(ctx, stream)
}

func drain(ctx context.Context, stream chatgpt.Stream) (string, error) {
	defer stream.Close()

	fragments := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(fragments)
		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				errc <- nil
				return
			}
			if err != nil {
				errc <- err
				return
			}
			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}
			select {
			case fragments <- chunk.Choices[0].Delta.Content:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()

	var b strings.Builder
	for {
		select {
		case fragment, ok := <-fragments:
			if !ok {
				if err := <-errc; err != nil {
					return "", err
				}
				return b.String(), nil
			}
			b.WriteString(fragment)
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}
