package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leon37/EduConsult/internal/infrastructure/llm"
	"github.com/leon37/EduConsult/internal/model"
	"github.com/leon37/EduConsult/internal/service"
)

// fakeProvider 可编程的模型桩，记录调用次数
type fakeProvider struct {
	mu               sync.Mutex
	interactionCalls int
	analysisResult   *model.AnalysisResult
	personality      *model.PersonalityAnalysisResult
	feedback         *model.FeedbackResult
	plan             *model.ActivityPlan
	err              error

	// 非空时在调用期间阻塞，用于并发占用测试
	block chan struct{}

	lastFeedbackReq llm.FeedbackRequest
}

func (f *fakeProvider) AnalyzeInteraction(_ context.Context, _ llm.InteractionRequest) (*model.AnalysisResult, error) {
	f.mu.Lock()
	f.interactionCalls++
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.analysisResult, nil
}

func (f *fakeProvider) AnalyzePersonality(_ context.Context, _ llm.PersonalityRequest) (*model.PersonalityAnalysisResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.personality, nil
}

func (f *fakeProvider) GenerateClassFeedback(_ context.Context, req llm.FeedbackRequest) (*model.FeedbackResult, error) {
	f.mu.Lock()
	f.lastFeedbackReq = req
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.feedback, nil
}

func (f *fakeProvider) GenerateActivityPlan(_ context.Context, _ llm.ActivityPlanRequest) (*model.ActivityPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plan, nil
}

func newOrchestrator(t *testing.T, p llm.Provider) (*service.Orchestrator, *service.ProfileStore) {
	t.Helper()
	store := newStore(t, newFakeKV())
	return service.NewOrchestrator(store, p), store
}

func TestAnalyzeInteractionAppendsHistoryAndMergesTags(t *testing.T) {
	t.Parallel()

	fake := &fakeProvider{
		analysisResult: &model.AnalysisResult{
			InteractionSummary: "家长询问考级安排",
			SuggestedPackage:   "优享包",
			ProfileUpdateSuggestion: &model.ProfileUpdateSuggestion{
				ParentFocus:   []string{"考级需求"},
				LearningState: []string{"瓶颈期"},
			},
		},
	}
	o, store := newOrchestrator(t, fake)

	// 种子第一位已带"瓶颈期"标签，合并后必须仍只出现一次
	target := store.List("", "")[0]
	if !contains(target.LearningState, "瓶颈期") {
		t.Fatalf("fixture should already carry the suggested tag")
	}
	linesBefore := historyLines(target.HistorySummary)

	out, err := o.AnalyzeInteraction(context.Background(), service.InteractionInput{
		ProfileID: target.ID,
		Text:      "老师，考级什么时候报名？",
	})
	if err != nil {
		t.Fatalf("AnalyzeInteraction() error = %v", err)
	}

	p := out.Profile
	if got := historyLines(p.HistorySummary); got != linesBefore+1 {
		t.Fatalf("history line count = %d, want %d", got, linesBefore+1)
	}
	if !strings.Contains(p.HistorySummary, "家长询问考级安排") {
		t.Fatalf("summary missing from history: %q", p.HistorySummary)
	}
	if !strings.Contains(p.HistorySummary, "(家长消息)") {
		t.Fatalf("default perspective label missing: %q", p.HistorySummary)
	}
	if !containsAll(p.ParentFocus, target.ParentFocus) || !contains(p.ParentFocus, "考级需求") {
		t.Fatalf("ParentFocus = %v", p.ParentFocus)
	}
	if got := count(p.LearningState, "瓶颈期"); got != 1 {
		t.Fatalf("瓶颈期 occurrences = %d, want exactly 1 (%v)", got, p.LearningState)
	}
	if !containsAll(p.LearningState, target.LearningState) {
		t.Fatalf("LearningState lost existing tags: %v", p.LearningState)
	}

	// 落库的是同一份
	stored, _ := store.Get(target.ID)
	if stored.HistorySummary != p.HistorySummary {
		t.Fatalf("returned profile differs from stored")
	}
}

func TestAnalyzeInteractionTeacherPerspectiveLabel(t *testing.T) {
	t.Parallel()

	fake := &fakeProvider{analysisResult: &model.AnalysisResult{InteractionSummary: "老师咨询教学方法"}}
	o, store := newOrchestrator(t, fake)
	target := store.List("", "")[0]

	out, err := o.AnalyzeInteraction(context.Background(), service.InteractionInput{
		ProfileID:   target.ID,
		Text:        "这个孩子上课坐不住怎么办",
		Perspective: model.PerspectiveTeacher,
	})
	if err != nil {
		t.Fatalf("AnalyzeInteraction() error = %v", err)
	}
	if !strings.Contains(out.Profile.HistorySummary, "(顾问/老师主动)") {
		t.Fatalf("teacher perspective label missing: %q", out.Profile.HistorySummary)
	}
}

func TestAnalyzeInteractionEmptyInputRejectedBeforeCall(t *testing.T) {
	t.Parallel()

	fake := &fakeProvider{}
	o, store := newOrchestrator(t, fake)
	target := store.List("", "")[0]

	_, err := o.AnalyzeInteraction(context.Background(), service.InteractionInput{
		ProfileID: target.ID,
		Text:      "   ",
	})
	if !errors.Is(err, service.ErrEmptyChatInput) {
		t.Fatalf("error = %v, want ErrEmptyChatInput", err)
	}
	if fake.interactionCalls != 0 {
		t.Fatalf("provider called %d times on invalid input", fake.interactionCalls)
	}
}

func TestAnalyzeInteractionFailureLeavesProfileUntouched(t *testing.T) {
	t.Parallel()

	fake := &fakeProvider{err: errors.New("upstream 500")}
	o, store := newOrchestrator(t, fake)
	target := store.List("", "")[0]

	_, err := o.AnalyzeInteraction(context.Background(), service.InteractionInput{
		ProfileID: target.ID,
		Text:      "在吗",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	after, _ := store.Get(target.ID)
	if after.HistorySummary != target.HistorySummary {
		t.Fatalf("failed call mutated history")
	}
}

func TestAnalyzeInteractionBusySurfaceRejected(t *testing.T) {
	t.Parallel()

	fake := &fakeProvider{
		analysisResult: &model.AnalysisResult{InteractionSummary: "ok"},
		block:          make(chan struct{}),
	}
	o, store := newOrchestrator(t, fake)
	target := store.List("", "")[0]

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = o.AnalyzeInteraction(context.Background(), service.InteractionInput{
			ProfileID: target.ID,
			Text:      "第一条",
		})
	}()

	// 等第一条进入模型调用
	for {
		fake.mu.Lock()
		n := fake.interactionCalls
		fake.mu.Unlock()
		if n == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	_, err := o.AnalyzeInteraction(context.Background(), service.InteractionInput{
		ProfileID: target.ID,
		Text:      "第二条",
	})
	if !errors.Is(err, service.ErrSurfaceBusy) {
		t.Fatalf("error = %v, want ErrSurfaceBusy", err)
	}

	close(fake.block)
	<-done

	// 释放后可以再次提交
	if _, err := o.AnalyzeInteraction(context.Background(), service.InteractionInput{
		ProfileID: target.ID,
		Text:      "第三条",
	}); err != nil {
		t.Fatalf("after release error = %v", err)
	}
}

func TestAnalyzePersonalityReplacesWholesale(t *testing.T) {
	t.Parallel()

	newResult := &model.PersonalityAnalysisResult{
		Summary: "新画像",
		MBTI:    &model.MBTIAnalysis{Type: "INTJ"},
	}
	fake := &fakeProvider{personality: newResult}
	o, store := newOrchestrator(t, fake)

	// 种子里第一位已有画像
	target := store.List("", "")[0]
	if target.PersonalityAnalysis == nil {
		t.Fatalf("fixture should carry an existing analysis")
	}

	out, err := o.AnalyzePersonality(context.Background(), service.PersonalityInput{
		ProfileID: target.ID,
		Notes:     "最近沟通风格变了",
	})
	if err != nil {
		t.Fatalf("AnalyzePersonality() error = %v", err)
	}
	if out.Profile.PersonalityAnalysis.Summary != "新画像" {
		t.Fatalf("analysis not replaced: %+v", out.Profile.PersonalityAnalysis)
	}
	if out.Profile.PersonalityAnalysis.MBTI.Type != "INTJ" {
		t.Fatalf("MBTI = %+v", out.Profile.PersonalityAnalysis.MBTI)
	}
	if out.Profile.PersonalityNotes != "最近沟通风格变了" {
		t.Fatalf("notes not stored: %q", out.Profile.PersonalityNotes)
	}
	// 画像生成不写历史日志
	if out.Profile.HistorySummary != target.HistorySummary {
		t.Fatalf("personality analysis touched history")
	}
}

func TestAnalyzePersonalityEmptyInputRejected(t *testing.T) {
	t.Parallel()

	o, store := newOrchestrator(t, &fakeProvider{})
	target := store.List("", "")[0]
	_, err := o.AnalyzePersonality(context.Background(), service.PersonalityInput{ProfileID: target.ID})
	if !errors.Is(err, service.ErrEmptyPersonalityInput) {
		t.Fatalf("error = %v, want ErrEmptyPersonalityInput", err)
	}
}

func TestAnalyzePersonalityReusesStoredScreenshots(t *testing.T) {
	t.Parallel()

	fake := &fakeProvider{personality: &model.PersonalityAnalysisResult{Summary: "画像"}}
	o, store := newOrchestrator(t, fake)
	target := store.List("", "")[0]

	// 先存一张资料截图，之后不带任何输入也能分析
	if _, err := store.Update(context.Background(), target.ID, model.ProfilePatch{
		ProfileScreenshots: &[]string{"data:image/png;base64,AAAA"},
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if _, err := o.AnalyzePersonality(context.Background(), service.PersonalityInput{
		ProfileID: target.ID,
	}); err != nil {
		t.Fatalf("AnalyzePersonality() error = %v", err)
	}
}

func TestGenerateFeedbackDoesNotTouchProfile(t *testing.T) {
	t.Parallel()

	fake := &fakeProvider{feedback: &model.FeedbackResult{
		LearningContentSummary: "哈农第5条",
		Variations:             []model.FeedbackVariation{{Style: "鼓励型", Content: "今天状态很棒"}},
	}}
	o, store := newOrchestrator(t, fake)
	target := store.List("", "")[0]

	result, err := o.GenerateFeedback(context.Background(), service.FeedbackInput{
		ProfileID:       target.ID,
		LearningContent: "哈农第5条，双手合练",
	})
	if err != nil {
		t.Fatalf("GenerateFeedback() error = %v", err)
	}
	if len(result.Variations) != 1 {
		t.Fatalf("variations = %+v", result.Variations)
	}
	after, _ := store.Get(target.ID)
	if after.HistorySummary != target.HistorySummary {
		t.Fatalf("generation must not append history")
	}
}

func TestGenerateFeedbackFillsStudentDefaults(t *testing.T) {
	t.Parallel()

	fake := &fakeProvider{feedback: &model.FeedbackResult{}}
	o, store := newOrchestrator(t, fake)

	// 种子第一位是家长，反馈主体应落到孩子身上
	target := store.List("", "")[0]
	if _, err := o.GenerateFeedback(context.Background(), service.FeedbackInput{
		ProfileID:       target.ID,
		LearningContent: "音阶练习",
	}); err != nil {
		t.Fatalf("GenerateFeedback() error = %v", err)
	}
	fake.mu.Lock()
	req := fake.lastFeedbackReq
	fake.mu.Unlock()
	if req.StudentName != target.ChildName {
		t.Fatalf("StudentName = %q, want child %q", req.StudentName, target.ChildName)
	}
	if req.TargetMode != model.AudienceChild {
		t.Fatalf("TargetMode = %q", req.TargetMode)
	}
	if req.Course != target.Course {
		t.Fatalf("Course = %q", req.Course)
	}
}

func TestGenerateFeedbackValidation(t *testing.T) {
	t.Parallel()

	o, store := newOrchestrator(t, &fakeProvider{feedback: &model.FeedbackResult{}})
	target := store.List("", "")[0]

	_, err := o.GenerateFeedback(context.Background(), service.FeedbackInput{ProfileID: target.ID})
	if !errors.Is(err, service.ErrEmptyLearningContent) {
		t.Fatalf("error = %v, want ErrEmptyLearningContent", err)
	}

	_, err = o.GenerateFeedback(context.Background(), service.FeedbackInput{
		ProfileID:       target.ID,
		LearningContent: "音阶",
		Metrics: []model.PerformanceMetric{
			{Name: "音准音高", Value: "随便写的", Options: model.RatingScales["INTONATION"]},
		},
	})
	if !errors.Is(err, service.ErrInvalidMetricValue) {
		t.Fatalf("error = %v, want ErrInvalidMetricValue", err)
	}
}

func TestSaveFeedbackVariantAppendsHistory(t *testing.T) {
	t.Parallel()

	o, store := newOrchestrator(t, &fakeProvider{})
	target := store.List("", "")[0]

	p, err := o.SaveFeedbackVariant(context.Background(), target.ID, "今天音阶弹得很稳，继续保持！")
	if err != nil {
		t.Fatalf("SaveFeedbackVariant() error = %v", err)
	}
	if !strings.Contains(p.HistorySummary, "发送反馈: 今天音阶弹得很稳") {
		t.Fatalf("history missing feedback line: %q", p.HistorySummary)
	}
}

func TestGenerateActivityPlanValidation(t *testing.T) {
	t.Parallel()

	o, _ := newOrchestrator(t, &fakeProvider{plan: &model.ActivityPlan{Theme: "圣诞音乐会"}})

	_, err := o.GenerateActivityPlan(context.Background(), service.ActivityPlanInput{Instructions: " "})
	if !errors.Is(err, service.ErrEmptyInstructions) {
		t.Fatalf("error = %v, want ErrEmptyInstructions", err)
	}

	plan, err := o.GenerateActivityPlan(context.Background(), service.ActivityPlanInput{
		Instructions: "策划一场圣诞主题音乐会",
	})
	if err != nil {
		t.Fatalf("GenerateActivityPlan() error = %v", err)
	}
	if plan.Theme != "圣诞音乐会" {
		t.Fatalf("plan = %+v", plan)
	}
}

func TestSaveActivityPlanAppendsHistory(t *testing.T) {
	t.Parallel()

	o, store := newOrchestrator(t, &fakeProvider{})
	target := store.List("", "")[0]

	p, err := o.SaveActivityPlan(context.Background(), target.ID, model.ActivityPlan{
		Theme:         "圣诞音乐会",
		SmartStrategy: "以汇演带动续费",
	})
	if err != nil {
		t.Fatalf("SaveActivityPlan() error = %v", err)
	}
	if !strings.Contains(p.HistorySummary, "活动策划: 圣诞音乐会") {
		t.Fatalf("history missing plan line: %q", p.HistorySummary)
	}
}

func historyLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

func count(list []string, v string) int {
	n := 0
	for _, s := range list {
		if s == v {
			n++
		}
	}
	return n
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsAll(list, want []string) bool {
	for _, w := range want {
		if !contains(list, w) {
			return false
		}
	}
	return true
}
