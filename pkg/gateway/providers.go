package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"vidsum/pkg/gemini"
)

const maxOutputTokens = 8000

// Gemini passes the link as a video file part so the model watches it.
type Gemini struct {
	client *gemini.Client
}

func NewGemini(apiKey string, opts Options) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not provided")
	}
	client := gemini.NewClient(apiKey, opts.Model, opts.Timeout)
	client.SetBaseURL(opts.BaseURL)
	return &Gemini{client: client}, nil
}

func (g *Gemini) Name() string {
	return "gemini"
}

func (g *Gemini) Generate(ctx context.Context, prompt, sourceReference string) (string, error) {
	return g.client.GenerateFromVideo(ctx, prompt, sourceReference)
}

// OpenAI sends the link inside the prompt text.
type OpenAI struct {
	client openai.Client
	model  openai.ChatModel
}

func NewOpenAI(apiKey string, opts Options) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not provided")
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}

	model := openai.ChatModel(opts.Model)
	if opts.Model == "" {
		model = openai.ChatModelGPT4o
	}

	return &OpenAI{
		client: openai.NewClient(reqOpts...),
		model:  model,
	}, nil
}

func (o *OpenAI) Name() string {
	return "openai"
}

func (o *OpenAI) Generate(ctx context.Context, prompt, sourceReference string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(withVideoLink(prompt, sourceReference)),
		},
		MaxTokens: openai.Int(maxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}
	return resp.Choices[0].Message.Content, nil
}

// Anthropic sends the link inside the prompt text.
type Anthropic struct {
	client *anthropic.Client
	model  string
}

func NewAnthropic(apiKey string, opts Options) (*Anthropic, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key not provided")
	}

	reqOpts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(apiKey),
		anthropicoption.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, anthropicoption.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, anthropicoption.WithRequestTimeout(opts.Timeout))
	}

	client := anthropic.NewClient(reqOpts...)

	model := opts.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	return &Anthropic{
		client: &client,
		model:  model,
	}, nil
}

func (a *Anthropic) Name() string {
	return "anthropic"
}

func (a *Anthropic) Generate(ctx context.Context, prompt, sourceReference string) (string, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: maxOutputTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(withVideoLink(prompt, sourceReference))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var content strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	if content.Len() == 0 {
		return "", fmt.Errorf("no response from API")
	}
	return content.String(), nil
}
