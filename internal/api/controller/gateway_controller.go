package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// GatewayController 把前端的模型请求原样转发给上游，API Key 只存在服务端。
// 这是给自定义调用留的直通口，不走统一响应结构，上游返回什么就透传什么。
type GatewayController struct {
	upstreamURL string
	apiKey      string
	client      *http.Client
}

func NewGatewayController(upstreamURL, apiKey string) *GatewayController {
	return &GatewayController{
		upstreamURL: strings.TrimSuffix(upstreamURL, "/"),
		apiKey:      apiKey,
		client:      &http.Client{Timeout: 120 * time.Second},
	}
}

type gatewayRequest struct {
	Model    string          `json:"model"`
	Contents json.RawMessage `json:"contents"`
	Config   json.RawMessage `json:"config"`
}

// Generate POST /gemini。请求体 {model, contents, config}，contents 和 config
// 不做任何改写，缺 model 返回 400，上游的状态码和响应体原样回传。
func (ctrl *GatewayController) Generate(c *gin.Context) {
	var req gatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}
	if req.Model == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 model 参数"})
		return
	}

	upstream := map[string]json.RawMessage{}
	if len(req.Contents) > 0 {
		upstream["contents"] = req.Contents
	}
	if len(req.Config) > 0 {
		upstream["generationConfig"] = req.Config
	}
	body, err := json.Marshal(upstream)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", ctrl.upstreamURL, req.Model)
	proxyReq, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	proxyReq.Header.Set("Content-Type", "application/json")
	proxyReq.Header.Set("x-goog-api-key", ctrl.apiKey)

	resp, err := ctrl.client.Do(proxyReq)
	if err != nil {
		slog.Error("上游请求失败", "model", req.Model, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "上游请求失败: " + err.Error()})
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "读取上游响应失败: " + err.Error()})
		return
	}
	c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), data)
}
