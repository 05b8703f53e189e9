package controller

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leon37/EduConsult/internal/api/response"
	"github.com/leon37/EduConsult/internal/model"
	"github.com/leon37/EduConsult/internal/service"
)

type ProfileController struct {
	store *service.ProfileStore
}

// NewProfileController 构造函数
func NewProfileController(s *service.ProfileStore) *ProfileController {
	return &ProfileController{store: s}
}

// List 客户列表，支持状态页签和模糊搜索
func (ctrl *ProfileController) List(c *gin.Context) {
	status := model.ClientStatus(c.Query("status"))
	search := c.Query("search")
	response.Success(c, ctrl.store.List(status, search))
}

// Get 单个档案详情
func (ctrl *ProfileController) Get(c *gin.Context) {
	p, ok := ctrl.store.Get(c.Param("id"))
	if !ok {
		fail(c, service.ErrProfileNotFound)
		return
	}
	response.Success(c, p)
}

// Create 用默认模板新建档案
func (ctrl *ProfileController) Create(c *gin.Context) {
	p, err := ctrl.store.Create(c.Request.Context())
	if err != nil {
		slog.Error("新建档案失败", "error", err)
		fail(c, err)
		return
	}
	slog.Info("新建客户档案", "profileId", p.ID)
	response.Success(c, p)
}

// Update 局部更新档案。未知字段直接报错，防止前端字段名写错后静默丢数据。
func (ctrl *ProfileController) Update(c *gin.Context) {
	var patch model.ProfilePatch
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}
	p, err := ctrl.store.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, p)
}

// Delete 删除档案
func (ctrl *ProfileController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ctrl.store.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	slog.Info("删除客户档案", "profileId", id)
	response.Success(c, gin.H{"id": id})
}

// Save 显式保存当前档案列表
func (ctrl *ProfileController) Save(c *gin.Context) {
	if err := ctrl.store.Save(c.Request.Context()); err != nil {
		slog.Error("保存档案失败", "error", err)
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// Meta 前端表单需要的常量：课包价格表、标签词库、评级选项、节日和常规活动主题
func (ctrl *ProfileController) Meta(c *gin.Context) {
	response.Success(c, gin.H{
		"packages":        model.PackageData,
		"personalityTags": model.PersonalityTags,
		"learningTags":    model.LearningStateTags,
		"parentFocusTags": model.ParentFocusTags,
		"ratingScales":    model.RatingScales,
		"festivals":       model.Festivals,
		"routineThemes":   model.RoutineThemes,
		"statusOrder":     model.StatusOrder,
	})
}
