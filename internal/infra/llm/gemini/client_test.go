package gemini

import (
	"context"
	"errors"
	"io"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/yanqian/safeland/internal/domain/advisor"
	"github.com/yanqian/safeland/internal/infra/llm/chatgpt"
)

type stubModels struct {
	texts []string
	err   error

	model  string
	config *genai.GenerateContentConfig
	turns  []*genai.Content
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(text, genai.RoleModel)}},
	}
}

func (s *stubModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.model, s.turns, s.config = model, contents, config
	if s.err != nil {
		return nil, s.err
	}
	return textResponse(s.texts[0]), nil
}

func (s *stubModels) GenerateContentStream(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	s.model, s.turns, s.config = model, contents, config
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, text := range s.texts {
			if !yield(textResponse(text), nil) {
				return
			}
		}
		if s.err != nil {
			yield(nil, s.err)
		}
	}
}

var request = chatgpt.ChatCompletionRequest{
	Model:       "swiss-ai/Apertus-70B",
	Temperature: 0.3,
	MaxTokens:   300,
	Messages: []chatgpt.Message{
		{Role: "system", Content: "be safe"},
		{Role: "user", Content: "boots?"},
	},
}

func TestCreateChatCompletion(t *testing.T) {
	models := &stubModels{texts: []string{"Yes."}}
	client := &Client{models: models}

	resp, err := client.CreateChatCompletion(context.Background(), request)
	require.NoError(t, err)
	require.Equal(t, "Yes.", resp.Choices[0].Message.Content)

	require.Equal(t, DefaultModel, models.model)
	require.Len(t, models.turns, 1)
	require.Equal(t, string(genai.RoleUser), models.turns[0].Role)
	require.Equal(t, "be safe", models.config.SystemInstruction.Parts[0].Text)
	require.Equal(t, int32(300), models.config.MaxOutputTokens)
	require.InDelta(t, 0.3, *models.config.Temperature, 1e-6)
}

func TestCreateChatCompletionError(t *testing.T) {
	client := &Client{models: &stubModels{err: errors.New("quota")}}
	_, err := client.CreateChatCompletion(context.Background(), request)
	require.ErrorContains(t, err, "quota")
}

func TestCreateChatCompletionStream(t *testing.T) {
	models := &stubModels{texts: []string{"Bern ", "is ", "dry."}}
	client := &Client{models: models}

	req := request
	req.Model = "gemini-2.5-flash"
	stream, err := client.CreateChatCompletionStream(context.Background(), req)
	require.NoError(t, err)
	defer stream.Close()

	var text string
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		text += chunk.Choices[0].Delta.Content
	}
	require.Equal(t, "Bern is dry.", text)
	require.Equal(t, "gemini-2.5-flash", models.model)
}

func TestCreateChatCompletionStreamError(t *testing.T) {
	client := &Client{models: &stubModels{texts: []string{"partial"}, err: errors.New("reset")}}
	stream, err := client.CreateChatCompletionStream(context.Background(), request)
	require.NoError(t, err)
	defer stream.Close()

	_, err = stream.Recv()
	require.NoError(t, err)
	_, err = stream.Recv()
	require.ErrorContains(t, err, "reset")
}

// hangingModels yields one chunk and then blocks until the request is cancelled.
type hangingModels struct {
	stubModels
}

func (h *hangingModels) GenerateContentStream(ctx context.Context, _ string, _ []*genai.Content, _ *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		if !yield(textResponse("first"), nil) {
			return
		}
		<-ctx.Done()
		yield(nil, ctx.Err())
	}
}

func TestStreamCloseDuringBlockedRecv(t *testing.T) {
	client := &Client{models: &hangingModels{}}
	stream, err := client.CreateChatCompletionStream(context.Background(), request)
	require.NoError(t, err)

	chunk, err := stream.Recv()
	require.NoError(t, err)
	require.Equal(t, "first", chunk.Choices[0].Delta.Content)

	done := make(chan error, 1)
	go func() {
		_, err := stream.Recv()
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, stream.Close())

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Recv did not return after Close")
	}

	_, err = stream.Recv()
	require.ErrorIs(t, err, io.EOF)
	require.NoError(t, stream.Close())
}

func TestCompleteCancelledMidStream(t *testing.T) {
	client := &Client{models: &hangingModels{}}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := advisor.Complete(ctx, client, request.Messages, advisor.CompletionOptions{Stream: true})
	require.ErrorIs(t, err, context.Canceled)
}
