// Package openai implements genai.Generator against an OpenAI-compatible
// chat-completions API.
//
// The structured-output contract rides on the chat API's JSON-schema response
// format: the request pins the exact kit object shape (see schema.go) and the
// model must reply with a single conforming JSON document. An uploaded photo
// travels as an inline image part (base64 data URL) ahead of the text part.
package openai

import (
	"context"
	"errors"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sakif/kitcraft/internal/genai"
)

const defaultModel = "gpt-4o-mini"

var _ genai.Generator = (*Client)(nil)

// Client is the production Generator implementation.
type Client struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// New creates a Client.
//
// apiKey must be non-empty — the server treats a missing key as "generation
// unavailable" and starts without a generator rather than failing here with
// a confusing transport error on the first request. baseURL and model are
// optional overrides (empty = api.openai.com and the default model), which
// also lets tests point the client at an httptest server.
func New(apiKey, baseURL, model string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	logger.Info("initializing generation client", slog.String("model", model))

	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}, nil
}

// Generate builds the schema-constrained request, invokes the model, and
// decodes the response into a typed draft.
//
// Every failure mode — bad input, transport error, empty choice list,
// malformed or schema-violating JSON — comes back as *genai.GenerationError.
// No retry, no caching: identical prompts always issue a new request.
func (c *Client) Generate(ctx context.Context, req genai.KitRequest) (*genai.KitDraft, error) {
	if err := genai.ValidateRequest(req); err != nil {
		return nil, err
	}

	hasImage := req.Image != nil

	userMessage := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if hasImage {
		userMessage.MultiContent = []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: genai.ImageDataURL(*req.Image),
				},
			},
			{
				Type: openai.ChatMessagePartTypeText,
				Text: genai.UserText(req.Prompt, true),
			},
		}
	} else {
		userMessage.Content = genai.UserText(req.Prompt, false)
	}

	chatReq := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: genai.SystemInstruction(req.SkillLevel, hasImage),
			},
			userMessage,
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "project_kit",
				Schema: &kitSchema,
				Strict: true,
			},
		},
	}

	c.logger.Debug("requesting kit generation",
		slog.String("model", c.model),
		slog.String("skillLevel", string(req.SkillLevel)),
		slog.Bool("hasImage", hasImage),
	)

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		c.logger.Error("generation call failed", slog.String("error", err.Error()))
		return nil, &genai.GenerationError{Message: "generation request failed", Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &genai.GenerationError{Message: "model returned no choices"}
	}

	draft, err := genai.DecodeKitDraft(resp.Choices[0].Message.Content)
	if err != nil {
		c.logger.Error("generation response rejected", slog.String("error", err.Error()))
		return nil, err
	}

	c.logger.Debug("kit draft generated",
		slog.String("projectName", draft.ProjectName),
		slog.Int("materials", len(draft.Materials)),
		slog.Int("steps", len(draft.Instructions)),
	)

	return draft, nil
}
