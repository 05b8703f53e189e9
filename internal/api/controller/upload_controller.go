package controller

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/leon37/EduConsult/internal/api/response"
)

type UploadController struct{}

func NewUploadController() *UploadController {
	return &UploadController{}
}

const maxUploadBytes = 10 << 20

// Upload 接收截图/资料文件，转成 data URL 给分析接口用。
// 只收图片和 PDF，其他类型静默跳过，不算失败。
func (ctrl *UploadController) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	var urls []string
	for _, fh := range form.File["files"] {
		contentType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") && contentType != "application/pdf" {
			slog.Warn("跳过不支持的文件类型", "name", fh.Filename, "contentType", contentType)
			continue
		}
		if fh.Size > maxUploadBytes {
			response.Error(c, http.StatusBadRequest, fmt.Sprintf("文件过大: %s", fh.Filename))
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "读取文件失败: "+err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "读取文件失败: "+err.Error())
			return
		}
		urls = append(urls, fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)))
	}
	response.Success(c, gin.H{"files": urls})
}
