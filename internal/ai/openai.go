package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// OpenAIResponses is the primary OpenAI tier: the Responses API with a
// strict json_schema text format.
type OpenAIResponses struct {
	client *openai.Client
	model  string
}

// OpenAIChat is the secondary OpenAI tier: a bare chat completion.
type OpenAIChat struct {
	client *openai.Client
	model  string
}

func newOpenAIClient(apiKey string, opts ...option.RequestOption) *openai.Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	c := openai.NewClient(opts...)
	return &c
}

func NewOpenAIResponses(apiKey, model string, opts ...option.RequestOption) *OpenAIResponses {
	return &OpenAIResponses{client: newOpenAIClient(apiKey, opts...), model: model}
}

func NewOpenAIChat(apiKey, model string, opts ...option.RequestOption) *OpenAIChat {
	return &OpenAIChat{client: newOpenAIClient(apiKey, opts...), model: model}
}

func (o *OpenAIResponses) Generate(ctx context.Context, prompt string, format Format) (string, error) {
	params := responses.ResponseNewParams{
		Model: o.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(prompt, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   format.schemaName(),
					Schema: schemaFor(format),
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		},
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: openai responses: %w", ErrTransient, err)
	}
	text := resp.OutputText()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: openai responses returned no text", ErrMalformedResponse)
	}
	return text, nil
}

func (o *OpenAIChat) Generate(ctx context.Context, prompt string, _ Format) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai chat: %w", ErrTransient, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai chat returned no choices", ErrMalformedResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
