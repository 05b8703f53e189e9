package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/leon37/EduConsult/internal/model"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// Config LLM 客户端配置
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GeminiClient 走 Gemini 的 OpenAI 兼容层，统一用结构化输出约束返回格式
type GeminiClient struct {
	client *openai.Client
	model  string
}

var _ Provider = (*GeminiClient)(nil)

func NewGeminiClient(cfg Config) *GeminiClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	} else {
		clientConfig.BaseURL = defaultBaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	m := cfg.Model
	if m == "" {
		m = "gemini-2.5-flash"
	}
	return &GeminiClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  m,
	}
}

// AnalyzeInteraction 分析聊天记录，输出回复策略和档案更新建议
func (g *GeminiClient) AnalyzeInteraction(ctx context.Context, req InteractionRequest) (*model.AnalysisResult, error) {
	parts := buildParts(buildInteractionPrompt(req), req.ChatImages)
	var result model.AnalysisResult
	if err := g.complete(ctx, parts, "interaction_analysis", interactionSchema(), 0.7, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzePersonality 基于资料截图和聊天素材生成性格深度画像
func (g *GeminiClient) AnalyzePersonality(ctx context.Context, req PersonalityRequest) (*model.PersonalityAnalysisResult, error) {
	images := append(append([]string{}, req.ProfileImages...), req.ChatImages...)
	parts := buildParts(buildPersonalityPrompt(req), images)
	includeChild := req.Profile.ClientType == model.ClientTypeParent
	var result model.PersonalityAnalysisResult
	if err := g.complete(ctx, parts, "personality_analysis", personalitySchema(includeChild), 0.7, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateClassFeedback 生成课后反馈的多版本文案
func (g *GeminiClient) GenerateClassFeedback(ctx context.Context, req FeedbackRequest) (*model.FeedbackResult, error) {
	parts := buildParts(buildFeedbackPrompt(req), nil)
	var result model.FeedbackResult
	if err := g.complete(ctx, parts, "class_feedback", feedbackSchema(), 0.75, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateActivityPlan 生成活动策划方案
func (g *GeminiClient) GenerateActivityPlan(ctx context.Context, req ActivityPlanRequest) (*model.ActivityPlan, error) {
	parts := buildParts(buildActivityPrompt(req), nil)
	var result model.ActivityPlan
	if err := g.complete(ctx, parts, "activity_plan", activityPlanSchema(), 0.7, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *GeminiClient) complete(ctx context.Context, parts []openai.ChatMessagePart, name string, schema jsonschema.Definition, temperature float32, out any) error {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: parts,
			},
		},
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   name,
				Schema: &schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("调用模型失败: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ErrEmptyResponse
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(extractJSONPayload(content)), out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func buildParts(prompt string, images []string) []openai.ChatMessagePart {
	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: prompt},
	}
	for _, img := range images {
		if strings.TrimSpace(img) == "" {
			continue
		}
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: normalizeImageURL(img)},
		})
	}
	return parts
}

// normalizeImageURL 前端传来的可能是裸 base64，补成 data URL
func normalizeImageURL(img string) string {
	if strings.HasPrefix(img, "data:") || strings.HasPrefix(img, "http") {
		return img
	}
	return "data:image/jpeg;base64," + img
}
