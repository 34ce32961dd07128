package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"wellness-bot/internal/domain"
)

const foodPrompt = "Ты нутрициолог. Проанализируй еду на фото.\n" +
	"Верни СТРОГО JSON без пояснений.\n\n" +
	`{"dish": str, "calories": number, "protein": number, "fat": number, "carbs": number, "comment": str}` +
	"\n\nЕсли есть сомнения — укажи приблизительные значения."

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

// OpenAI распознаёт блюдо по фото через vision-модель.
type OpenAI struct {
	client  chatClient
	model   string
	timeout time.Duration
}

var _ domain.FoodClassifier = (*OpenAI)(nil)

// NewOpenAI создаёт классификатор еды.
func NewOpenAI(client chatClient, model string, timeout time.Duration) *OpenAI {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAI{client: client, model: model, timeout: timeout}
}

// Classify отправляет изображение модели и разбирает ответ.
func (c *OpenAI) Classify(ctx context.Context, image []byte) (domain.FoodAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role: goopenai.ChatMessageRoleUser,
				MultiContent: []goopenai.ChatMessagePart{
					{Type: goopenai.ChatMessagePartTypeText, Text: foodPrompt},
					{
						Type: goopenai.ChatMessagePartTypeImageURL,
						ImageURL: &goopenai.ChatMessageImageURL{
							URL:    "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image),
							Detail: goopenai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return domain.FoodAnalysis{}, fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}
	parts := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			parts = append(parts, text)
		}
	}
	return ParseFoodAnalysis(strings.Join(parts, "\n"))
}
