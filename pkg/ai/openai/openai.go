package openai

import (
	"github.com/diretoriaja/portal/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// GraphOpenAIClient implements ai.Client on the OpenAI chat completions API
// or any compatible endpoint.
//
// A GraphOpenAIClient should be created using NewGraphOpenAIClient.
type GraphOpenAIClient struct {
	ai.MetricsRecorder

	chatModel string
	chatURL   string

	ChatClient *openai.Client
}

// NewGraphOpenAIClientParams configures a GraphOpenAIClient. An empty ChatURL
// targets the public OpenAI API.
type NewGraphOpenAIClientParams struct {
	ChatModel string
	ChatURL   string
	ChatKey   string
}

// NewGraphOpenAIClient returns nil when no key is configured, so callers can
// treat the AI summary as disabled.
func NewGraphOpenAIClient(params NewGraphOpenAIClientParams) *GraphOpenAIClient {
	chatClient := newOpenaiClient(params.ChatURL, params.ChatKey)
	if chatClient == nil {
		return nil
	}
	model := params.ChatModel
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}

	return &GraphOpenAIClient{
		chatModel:  model,
		chatURL:    params.ChatURL,
		ChatClient: chatClient,
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
