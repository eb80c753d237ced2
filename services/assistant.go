package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
)

// AssistantClient wraps the OpenAI-compatible model used for task breakdown.
type AssistantClient struct {
	Chat llms.Model
}

func NewAssistantClient(apiKey, apiEndpoint, model string) (*AssistantClient, error) {
	chat, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(apiEndpoint),
		openai.WithModel(model),
		openai.WithResponseFormat(&openai.ResponseFormat{
			Type: "json_object",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant client: %w", err)
	}
	return &AssistantClient{Chat: chat}, nil
}

const subtaskPrompt = `You break a software task into concrete subtasks.
Respond with a JSON object of the form {"subtasks": ["...", "..."]}.
Each subtask is a short imperative title. Propose at most %d subtasks.`

// Assistant suggests subtask breakdowns for a task. Suggestions are advisory:
// nothing is persisted until the caller attaches them through the hierarchy.
type Assistant struct {
	client *AssistantClient
}

func NewAssistant(client *AssistantClient) *Assistant {
	return &Assistant{client: client}
}

// SuggestSubtasks asks the model for up to max subtask titles for the task.
func (a *Assistant) SuggestSubtasks(ctx context.Context, task models.Task, max int) ([]string, error) {
	if max <= 0 {
		max = 5
	}

	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(fmt.Sprintf(subtaskPrompt, max))},
		},
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(
				fmt.Sprintf("Task: %s\nDescription: %s", task.Title, task.Description),
			)},
		},
	}

	resp, err := a.client.Chat.GenerateContent(ctx, messages, llms.WithTemperature(0.3))
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("assistant returned no choices")
	}

	var parsed struct {
		Subtasks []string `json:"subtasks"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Content), &parsed); err != nil {
		return nil, fmt.Errorf("parsing assistant response: %w", err)
	}

	out := parsed.Subtasks
	if len(out) > max {
		out = out[:max]
	}
	for i := range out {
		out[i] = strings.TrimSpace(out[i])
	}
	return out, nil
}
