package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leon37/EduConsult/internal/api/response"
	"github.com/leon37/EduConsult/internal/model"
	"github.com/leon37/EduConsult/internal/service"
)

type AnalysisController struct {
	orchestrator *service.Orchestrator
}

// NewAnalysisController 构造函数
func NewAnalysisController(o *service.Orchestrator) *AnalysisController {
	return &AnalysisController{orchestrator: o}
}

// InteractionAnalyzeRequest 沟通分析请求。图片为 data URL 或裸 base64。
type InteractionAnalyzeRequest struct {
	ChatImages  []string               `json:"chatImages"`
	Text        string                 `json:"text"`
	Perspective model.InputPerspective `json:"perspective"`
}

// AnalyzeInteraction 分析聊天互动并回传合并后的档案
func (ctrl *AnalysisController) AnalyzeInteraction(c *gin.Context) {
	var req InteractionAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}
	slog.Info("收到沟通分析请求", "profileId", c.Param("id"), "images", len(req.ChatImages))
	out, err := ctrl.orchestrator.AnalyzeInteraction(c.Request.Context(), service.InteractionInput{
		ProfileID:   c.Param("id"),
		ChatImages:  req.ChatImages,
		Text:        req.Text,
		Perspective: req.Perspective,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, out)
}

// PersonalityAnalyzeRequest 性格画像请求
type PersonalityAnalyzeRequest struct {
	ProfileImages []string `json:"profileImages"`
	Notes         string   `json:"notes"`
	ChatImages    []string `json:"chatImages"`
	ChatText      string   `json:"chatText"`
}

// AnalyzePersonality 生成性格深度画像并写回档案
func (ctrl *AnalysisController) AnalyzePersonality(c *gin.Context) {
	var req PersonalityAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}
	slog.Info("收到性格画像请求", "profileId", c.Param("id"))
	out, err := ctrl.orchestrator.AnalyzePersonality(c.Request.Context(), service.PersonalityInput{
		ProfileID:     c.Param("id"),
		ProfileImages: req.ProfileImages,
		Notes:         req.Notes,
		ChatImages:    req.ChatImages,
		ChatText:      req.ChatText,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, out)
}

// FeedbackGenerateRequest 课后反馈生成请求
type FeedbackGenerateRequest struct {
	Course           model.CourseType          `json:"course"`
	LearningContent  string                    `json:"learningContent"`
	Metrics          []model.PerformanceMetric `json:"metrics"`
	Homework         string                    `json:"homework"`
	PreviousTemplate string                    `json:"previousTemplate"`
	StudentName      string                    `json:"studentName"`
	StudentAge       int                       `json:"studentAge"`
	StudentGender    string                    `json:"studentGender"`
	TargetMode       model.TargetAudienceMode  `json:"targetMode"`
}

// GenerateFeedback 生成课后反馈候选文案，不写回档案
func (ctrl *AnalysisController) GenerateFeedback(c *gin.Context) {
	var req FeedbackGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}
	result, err := ctrl.orchestrator.GenerateFeedback(c.Request.Context(), service.FeedbackInput{
		ProfileID:        c.Param("id"),
		Course:           req.Course,
		LearningContent:  req.LearningContent,
		Metrics:          req.Metrics,
		Homework:         req.Homework,
		PreviousTemplate: req.PreviousTemplate,
		StudentName:      req.StudentName,
		StudentAge:       req.StudentAge,
		StudentGender:    req.StudentGender,
		TargetMode:       req.TargetMode,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

type FeedbackSaveRequest struct {
	Content string `json:"content" binding:"required"`
}

// SaveFeedback 用户确认发送某版反馈后记入历史
func (ctrl *AnalysisController) SaveFeedback(c *gin.Context) {
	var req FeedbackSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}
	p, err := ctrl.orchestrator.SaveFeedbackVariant(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, p)
}

// ActivityPlanGenerateRequest 活动策划请求
type ActivityPlanGenerateRequest struct {
	Instructions string                      `json:"instructions"`
	ChatHistory  []model.ActivityChatMessage `json:"chatHistory"`
	CostConfig   *model.ActivityCostConfig   `json:"costConfig"`
}

// GenerateActivityPlan 基于全量客户画像生成活动方案
func (ctrl *AnalysisController) GenerateActivityPlan(c *gin.Context) {
	var req ActivityPlanGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}
	plan, err := ctrl.orchestrator.GenerateActivityPlan(c.Request.Context(), service.ActivityPlanInput{
		Instructions: req.Instructions,
		ChatHistory:  req.ChatHistory,
		CostConfig:   req.CostConfig,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, plan)
}

type ActivityPlanSaveRequest struct {
	Plan model.ActivityPlan `json:"plan" binding:"required"`
}

// SaveActivityPlan 把活动方案摘要记入指定档案历史
func (ctrl *AnalysisController) SaveActivityPlan(c *gin.Context) {
	var req ActivityPlanSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}
	p, err := ctrl.orchestrator.SaveActivityPlan(c.Request.Context(), c.Param("id"), req.Plan)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, p)
}
