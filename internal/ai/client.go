package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Client ходит в локальный Ollama через его OpenAI-совместимый endpoint.
// Для модуля это непрозрачный сервис «промпт на входе — текст на выходе».
type Client struct {
	client *openai.Client
	model  string
}

func New(baseURL, model string) *Client {
	// Локальному Ollama API-ключ не нужен, но конфиг его требует
	config := openai.DefaultConfig("ollama")
	config.BaseURL = strings.TrimSuffix(baseURL, "/") + "/v1"

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Chat отправляет диалог модели и возвращает текст ответа. Ретраев нет:
// ошибка уходит вызывающему как есть.
func (c *Client) Chat(messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := c.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("модель вернула пустой ответ")
	}
	return resp.Choices[0].Message.Content, nil
}
