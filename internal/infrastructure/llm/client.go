package llm

import (
	"context"

	"github.com/leon37/EduConsult/internal/model"
)

// Provider 定义了 AI 网关的通用行为：四种请求形状，各自对应一个固定的输出 schema。
// 每次调用独立、至多一次，失败不重试，由上层决定如何呈现错误。
type Provider interface {
	// AnalyzeInteraction 沟通分析：聊天截图+文字+档案快照+视角 -> 情绪/诉求/策略/回复建议
	AnalyzeInteraction(ctx context.Context, req InteractionRequest) (*model.AnalysisResult, error)
	// AnalyzePersonality 性格画像推断，家长档案会附带孩子相处指南
	AnalyzePersonality(ctx context.Context, req PersonalityRequest) (*model.PersonalityAnalysisResult, error)
	// GenerateClassFeedback 课后反馈：5 条风格变体 + 内容摘要
	GenerateClassFeedback(ctx context.Context, req FeedbackRequest) (*model.FeedbackResult, error)
	// GenerateActivityPlan 活动策划：主题方案 + 财务估算 + SOP + 话术模板
	GenerateActivityPlan(ctx context.Context, req ActivityPlanRequest) (*model.ActivityPlan, error)
}

// InteractionRequest 沟通分析的输入
type InteractionRequest struct {
	ChatImages  []string // base64 或 data URL
	Text        string
	Profile     model.ClientProfile
	Perspective model.InputPerspective
}

// PersonalityRequest 性格画像的输入素材
type PersonalityRequest struct {
	ProfileImages []string
	Notes         string
	ChatImages    []string
	ChatText      string
	Profile       model.ClientProfile
}

// FeedbackRequest 课后反馈生成的输入。
// Student* 字段是解析后的最终主体信息，覆盖逻辑在编排层完成。
type FeedbackRequest struct {
	Profile          model.ClientProfile
	Course           model.CourseType
	LearningContent  string
	Metrics          []model.PerformanceMetric
	Homework         string
	PreviousTemplate string
	StudentName      string
	StudentAge       int
	StudentGender    string
	TargetMode       model.TargetAudienceMode
}

// ActivityPlanRequest 活动策划的输入
type ActivityPlanRequest struct {
	Profiles     []model.ClientProfile
	ChatHistory  []model.ActivityChatMessage
	Instructions string
	CostConfig   model.ActivityCostConfig
}
