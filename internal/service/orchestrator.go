package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/leon37/EduConsult/internal/infrastructure/llm"
	"github.com/leon37/EduConsult/internal/model"
)

var (
	ErrSurfaceBusy           = errors.New("当前已有分析任务在进行中，请稍候")
	ErrEmptyChatInput        = errors.New("请至少输入文字或上传聊天截图")
	ErrEmptyPersonalityInput = errors.New("请至少输入文字、上传聊天截图或上传档案资料图")
	ErrEmptyLearningContent  = errors.New("请填写本节课学习内容")
	ErrEmptyInstructions     = errors.New("请输入活动策划要求")
	ErrInvalidMetricValue    = errors.New("表现评级取值不合法")
)

type surface int

const (
	surfaceChat surface = iota
	surfacePersonality
	surfaceFeedback
	surfaceActivity
	surfaceCount
)

// Orchestrator 串起档案库和 AI 网关：先校验，再调模型，成功后把结果合并回档案。
// 四类分析入口各自持一把进行中标记，同类请求不允许并发，不同类互不影响。
type Orchestrator struct {
	store    *ProfileStore
	provider llm.Provider

	mu       sync.Mutex
	inFlight [surfaceCount]bool
}

func NewOrchestrator(store *ProfileStore, provider llm.Provider) *Orchestrator {
	return &Orchestrator{store: store, provider: provider}
}

func (o *Orchestrator) acquire(s surface) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight[s] {
		return ErrSurfaceBusy
	}
	o.inFlight[s] = true
	return nil
}

func (o *Orchestrator) release(s surface) {
	o.mu.Lock()
	o.inFlight[s] = false
	o.mu.Unlock()
}

func historyDate() string {
	return time.Now().Format("2006/01/02")
}

// InteractionInput 沟通分析入参
type InteractionInput struct {
	ProfileID   string
	ChatImages  []string
	Text        string
	Perspective model.InputPerspective
}

// InteractionOutcome 分析结果和合并后的档案一起返回
type InteractionOutcome struct {
	Result  *model.AnalysisResult `json:"result"`
	Profile model.ClientProfile   `json:"profile"`
}

// AnalyzeInteraction 分析聊天互动。校验在调模型之前完成，输入为空直接拒绝，
// 不产生任何网络请求。成功后历史日志追加和标签合并作为同一次提交落库。
func (o *Orchestrator) AnalyzeInteraction(ctx context.Context, in InteractionInput) (*InteractionOutcome, error) {
	if strings.TrimSpace(in.Text) == "" && len(in.ChatImages) == 0 {
		return nil, ErrEmptyChatInput
	}
	profile, ok := o.store.Get(in.ProfileID)
	if !ok {
		return nil, ErrProfileNotFound
	}
	if err := o.acquire(surfaceChat); err != nil {
		return nil, err
	}
	defer o.release(surfaceChat)

	perspective := in.Perspective
	if perspective == "" {
		perspective = model.PerspectiveParent
	}
	result, err := o.provider.AnalyzeInteraction(ctx, llm.InteractionRequest{
		ChatImages:  in.ChatImages,
		Text:        in.Text,
		Profile:     profile,
		Perspective: perspective,
	})
	if err != nil {
		slog.Error("沟通分析失败", "profileId", in.ProfileID, "error", err)
		return nil, err
	}

	source := "家长消息"
	if perspective == model.PerspectiveTeacher {
		source = "顾问/老师主动"
	}
	line := fmt.Sprintf("[%s] (%s) %s", historyDate(), source, result.InteractionSummary)

	updated, err := o.store.Mutate(ctx, in.ProfileID, func(p *model.ClientProfile) {
		*p = model.AppendHistory(*p, line)
		if result.ProfileUpdateSuggestion != nil {
			*p = model.MergeSuggestedTags(*p, *result.ProfileUpdateSuggestion)
		}
	})
	if err != nil {
		return nil, err
	}
	return &InteractionOutcome{Result: result, Profile: updated}, nil
}

// PersonalityInput 性格画像入参
type PersonalityInput struct {
	ProfileID     string
	ProfileImages []string
	Notes         string
	ChatImages    []string
	ChatText      string
}

type PersonalityOutcome struct {
	Result  *model.PersonalityAnalysisResult `json:"result"`
	Profile model.ClientProfile              `json:"profile"`
}

// AnalyzePersonality 生成性格深度画像。结果整体覆盖档案上的旧画像，
// 备注文本和新上传的资料截图也一并存档，下次分析可以带上。
// 没有新截图时复用档案里已存的资料截图，只要素材凑得齐就能分析。
func (o *Orchestrator) AnalyzePersonality(ctx context.Context, in PersonalityInput) (*PersonalityOutcome, error) {
	profile, ok := o.store.Get(in.ProfileID)
	if !ok {
		return nil, ErrProfileNotFound
	}
	profileImages := in.ProfileImages
	if len(profileImages) == 0 {
		profileImages = profile.ProfileScreenshots
	}
	if strings.TrimSpace(in.Notes) == "" && strings.TrimSpace(in.ChatText) == "" &&
		len(profileImages) == 0 && len(in.ChatImages) == 0 {
		return nil, ErrEmptyPersonalityInput
	}
	if err := o.acquire(surfacePersonality); err != nil {
		return nil, err
	}
	defer o.release(surfacePersonality)

	result, err := o.provider.AnalyzePersonality(ctx, llm.PersonalityRequest{
		ProfileImages: profileImages,
		Notes:         in.Notes,
		ChatImages:    in.ChatImages,
		ChatText:      in.ChatText,
		Profile:       profile,
	})
	if err != nil {
		slog.Error("性格画像分析失败", "profileId", in.ProfileID, "error", err)
		return nil, err
	}

	updated, err := o.store.Mutate(ctx, in.ProfileID, func(p *model.ClientProfile) {
		p.PersonalityAnalysis = result
		if strings.TrimSpace(in.Notes) != "" {
			p.PersonalityNotes = in.Notes
		}
		if len(in.ProfileImages) > 0 {
			p.ProfileScreenshots = in.ProfileImages
		}
	})
	if err != nil {
		return nil, err
	}
	return &PersonalityOutcome{Result: result, Profile: updated}, nil
}

// FeedbackInput 课后反馈入参。StudentName 等覆盖项为空时按档案主体推断。
type FeedbackInput struct {
	ProfileID        string
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

// GenerateFeedback 生成课后反馈文案。只读档案，不写回任何字段，
// 追加历史由 SaveFeedbackVariant 在用户确认发送后执行。
func (o *Orchestrator) GenerateFeedback(ctx context.Context, in FeedbackInput) (*model.FeedbackResult, error) {
	if strings.TrimSpace(in.LearningContent) == "" {
		return nil, ErrEmptyLearningContent
	}
	for _, m := range in.Metrics {
		if !m.ValueAllowed() {
			return nil, fmt.Errorf("%w: %s=%s", ErrInvalidMetricValue, m.Name, m.Value)
		}
	}
	profile, ok := o.store.Get(in.ProfileID)
	if !ok {
		return nil, ErrProfileNotFound
	}
	if err := o.acquire(surfaceFeedback); err != nil {
		return nil, err
	}
	defer o.release(surfaceFeedback)

	req := llm.FeedbackRequest{
		Profile:          profile,
		Course:           in.Course,
		LearningContent:  in.LearningContent,
		Metrics:          in.Metrics,
		Homework:         in.Homework,
		PreviousTemplate: in.PreviousTemplate,
		StudentName:      in.StudentName,
		StudentAge:       in.StudentAge,
		StudentGender:    in.StudentGender,
		TargetMode:       in.TargetMode,
	}
	if req.Course == "" {
		req.Course = profile.Course
	}
	fillStudentDefaults(&req, profile)

	result, err := o.provider.GenerateClassFeedback(ctx, req)
	if err != nil {
		slog.Error("课后反馈生成失败", "profileId", in.ProfileID, "error", err)
		return nil, err
	}
	return result, nil
}

// fillStudentDefaults 反馈主体默认值：成人学员是客户本人，否则是孩子
func fillStudentDefaults(req *llm.FeedbackRequest, p model.ClientProfile) {
	adult := p.IsAdultSubject()
	if req.StudentName == "" {
		if adult {
			req.StudentName = p.Name
		} else {
			req.StudentName = p.ChildName
		}
	}
	if req.StudentAge == 0 {
		if adult && p.Age != nil {
			req.StudentAge = *p.Age
		} else if !adult && p.ChildAge != nil {
			req.StudentAge = *p.ChildAge
		}
	}
	if req.StudentGender == "" {
		if adult {
			req.StudentGender = p.Gender
		} else {
			req.StudentGender = p.ChildGender
		}
	}
	if req.TargetMode == "" {
		if adult {
			req.TargetMode = model.AudienceAdult
		} else {
			req.TargetMode = model.AudienceChild
		}
	}
}

// SaveFeedbackVariant 用户选定某版反馈并发送后，把全文记入历史日志
func (o *Orchestrator) SaveFeedbackVariant(ctx context.Context, profileID, content string) (model.ClientProfile, error) {
	if strings.TrimSpace(content) == "" {
		return model.ClientProfile{}, ErrEmptyLearningContent
	}
	line := fmt.Sprintf("[%s] 发送反馈: %s", historyDate(), content)
	return o.store.Mutate(ctx, profileID, func(p *model.ClientProfile) {
		*p = model.AppendHistory(*p, line)
	})
}

// ActivityPlanInput 活动策划入参
type ActivityPlanInput struct {
	Instructions string
	ChatHistory  []model.ActivityChatMessage
	CostConfig   *model.ActivityCostConfig
}

// GenerateActivityPlan 基于全量客户画像生成活动方案，不关联单个档案
func (o *Orchestrator) GenerateActivityPlan(ctx context.Context, in ActivityPlanInput) (*model.ActivityPlan, error) {
	if strings.TrimSpace(in.Instructions) == "" {
		return nil, ErrEmptyInstructions
	}
	if err := o.acquire(surfaceActivity); err != nil {
		return nil, err
	}
	defer o.release(surfaceActivity)

	cc := model.DefaultActivityCostConfig()
	if in.CostConfig != nil {
		cc = *in.CostConfig
	}
	result, err := o.provider.GenerateActivityPlan(ctx, llm.ActivityPlanRequest{
		Profiles:     o.store.List("", ""),
		ChatHistory:  in.ChatHistory,
		Instructions: in.Instructions,
		CostConfig:   cc,
	})
	if err != nil {
		slog.Error("活动策划生成失败", "error", err)
		return nil, err
	}
	return result, nil
}

// SaveActivityPlan 把活动方案摘要记入指定档案的历史日志
func (o *Orchestrator) SaveActivityPlan(ctx context.Context, profileID string, plan model.ActivityPlan) (model.ClientProfile, error) {
	line := fmt.Sprintf("[%s] 活动策划: %s (%s)", historyDate(), plan.Theme, plan.SmartStrategy)
	return o.store.Mutate(ctx, profileID, func(p *model.ClientProfile) {
		*p = model.AppendHistory(*p, line)
	})
}
