package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"glimmer/internal/config"
	"glimmer/internal/logger"
)

// Moods that warrant a generated encouragement line.
const (
	MoodThinking = "思考"
	MoodTired    = "疲惫"
	MoodSad      = "悲伤"
)

// EncourageService generates one short encouragement sentence for a low mood.
// Any LLM failure degrades to the deterministic local line, so check-in never
// blocks on the model.
type EncourageService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewEncourageService(cfg config.LLMConfig) *EncourageService {
	return &EncourageService{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{},
	}
}

// WantsEncouragement reports whether the mood gets a generated line at all.
func WantsEncouragement(mood string) bool {
	return mood == MoodThinking || mood == MoodTired || mood == MoodSad
}

func (s *EncourageService) Generate(ctx context.Context, mood string) string {
	if s.baseURL == "" || s.apiKey == "" {
		return DefaultEncouragement(mood)
	}

	system := "你是一个只会用简短中文鼓励用户的助手。"
	user := fmt.Sprintf(`你是一名温柔、克制的安慰者，只输出一句非常简短的中文鼓励话语。

当前用户心情: %s

要求:
- 只输出一句话
- 不超过 30 个汉字
- 不使用感叹号
- 不出现 Emoji
- 语气平实、温和、不过度积极`, mood)

	text, err := s.chat(ctx, system, user)
	if err != nil {
		logger.Warn("encouragement llm failed, using default", "mood", mood, "err", err)
		return DefaultEncouragement(mood)
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return DefaultEncouragement(mood)
	}
	return text
}

func (s *EncourageService) chat(ctx context.Context, system, user string) (string, error) {
	body := map[string]interface{}{
		"model":  s.model,
		"stream": false,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llm status %d: %s", resp.StatusCode, data)
	}

	data, _ := io.ReadAll(resp.Body)
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices")
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// DefaultEncouragement is the local fallback used when no model is configured
// or the call fails.
func DefaultEncouragement(mood string) string {
	switch mood {
	case MoodThinking:
		return "慢慢来就好，给自己一点时间整理思绪。"
	case MoodTired:
		return "你已经很努力了，允许自己好好休息一下。"
	case MoodSad:
		return "难过也是生活的一部分，你不必一个人扛。"
	default:
		return "今天不必太勉强自己，按自己的节奏就好。"
	}
}
