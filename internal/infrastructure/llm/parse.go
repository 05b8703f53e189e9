package llm

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyResponse 模型返回空内容
	ErrEmptyResponse = errors.New("模型返回空内容")
	// ErrInvalidResponse 模型返回内容无法解析为预期结构
	ErrInvalidResponse = errors.New("模型返回内容解析失败")
)

// extractJSONPayload 剥掉模型偶尔带出的 markdown 代码块围栏
func extractJSONPayload(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
