package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"scheduler-agent/core/config"
	"scheduler-agent/core/constants"
	"scheduler-agent/core/errors"
	"scheduler-agent/core/logger"
	"scheduler-agent/core/utils"
	"scheduler-agent/modules/schedule/dto"

	openai "github.com/sashabaranov/go-openai"
)

const parserSystemPrompt = "You are a smart scheduling assistant. Parse natural language into title + datetime in ISO format."

type ParserServiceInterface interface {
	Parse(ctx context.Context, freeText string, referenceDate time.Time) (*dto.EventCandidate, *errors.AppError)
}

type ParserService struct{}

func NewParserService() *ParserService {
	return &ParserService{}
}

// Parse turns free text into an event candidate with one completion call.
// The reference date is embedded so relative expressions like "next Thursday"
// resolve deterministically. The model is an unreliable input source: its
// output is re-validated and nothing is retried automatically.
func (service *ParserService) Parse(ctx context.Context, freeText string, referenceDate time.Time) (*dto.EventCandidate, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrConfig, "config not initialized", nil)
	}
	if cfg.LLM.APIKey == "" {
		return nil, errors.NewAppError(errors.ErrConfig, "LLM configuration is missing", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	prompt := fmt.Sprintf(`Today is %s.
Parse the following text into a structured event with title and ISO datetime.

Text: %q

Return ONLY a JSON like:
{
  "title": "...",
  "datetime": "yyyy-mm-ddTHH:MM:SS"
}
`, referenceDate.Format("2006-01-02"), freeText)

	clientConfig := openai.DefaultConfig(cfg.LLM.APIKey)
	clientConfig.BaseURL = cfg.LLM.BaseURL
	client := openai.NewClientWithConfig(clientConfig)

	completion, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: cfg.LLM.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: parserSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		logger.Error("ParserService:Parse:CreateChatCompletion:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "completion request failed", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.NewAppError(errors.ErrLLMParse, "model returned no choices", nil)
	}
	message := completion.Choices[0].Message.Content
	logger.Info("ParserService:Parse:RawMessage", "message", message)

	return candidateFromMessage(message)
}

// jsonObjectPattern matches the first {...} block in the completion text.
// Reasoning models prepend prose before the object; everything around the
// block is ignored.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*?\}`)

// ExtractJSONObject returns the first JSON-object-shaped block in s.
func ExtractJSONObject(s string) (string, bool) {
	match := jsonObjectPattern.FindString(s)
	if match == "" {
		return "", false
	}
	return match, true
}

func candidateFromMessage(message string) (*dto.EventCandidate, *errors.AppError) {
	block, ok := ExtractJSONObject(message)
	if !ok {
		return nil, errors.NewAppError(errors.ErrLLMParse, "No JSON found in model response", nil)
	}

	var candidate dto.EventCandidate
	if err := json.Unmarshal([]byte(block), &candidate); err != nil {
		return nil, errors.NewAppError(errors.ErrLLMParse, "model returned malformed JSON", err)
	}

	if candidate.Title == "" || candidate.Datetime == "" {
		return nil, errors.NewAppError(errors.ErrLLMParse, "parsed event missing title or datetime", nil)
	}

	if _, err := utils.ParseEventDateTime(candidate.Datetime); err != nil {
		return nil, errors.NewAppError(errors.ErrLLMParse, "parsed datetime is not a valid instant", err)
	}

	return &candidate, nil
}
