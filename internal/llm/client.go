// Package llm adapts an OpenAI-compatible chat-completions API to the
// engine's Generator contract.
package llm

// #region imports
import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/factfence/rag-controller/internal/engine"
)

// #endregion

// #region prompts

const systemPrompt = `You are a helpful assistant answering questions about a single product.

CRITICAL RULES:
1. ONLY use information provided in the context
2. NEVER make up or hallucinate information
3. Always cite sources using the format [source:doc_id:chunk_id], copying tags exactly as they appear in the context
4. Passages tagged [facts:...] come from official documentation
5. Passages tagged [external:...] come from unofficial sources like videos and reviews
6. For pricing, warranty, availability, or purchase information, only rely on [facts:...] passages
7. Keep responses concise and factual
8. If you cannot provide a complete answer from the context, say so clearly`

const userPromptFormat = `Context:
%s

Question: %s

Please answer based ONLY on the provided context. Include the citation tags for every claim.`

// #endregion prompts

// #region client

// Client generates answers through the chat-completions API.
type Client struct {
	api         *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

var _ engine.Generator = (*Client)(nil)

// Options configures a Client.
type Options struct {
	APIKey      string
	BaseURL     string // empty = default endpoint
	Model       string
	MaxTokens   int
	Temperature float32
}

// New builds a generator client.
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("llm client requires an API key")
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
	}, nil
}

// #endregion client

// #region generate

// Generate produces free text for the question over the assembled
// context. The guardrail prompt requires a citation tag on every claim;
// the engine still validates every tag afterwards.
func (c *Client) Generate(ctx context.Context, contextText, question string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: UserPrompt(contextText, question)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// UserPrompt renders the user message for a context/question pair.
func UserPrompt(contextText, question string) string {
	return fmt.Sprintf(userPromptFormat, contextText, question)
}

// #endregion generate
