package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/leon37/EduConsult/internal/api"
	"github.com/leon37/EduConsult/internal/api/controller"
	"github.com/leon37/EduConsult/internal/infrastructure/llm"
	"github.com/leon37/EduConsult/internal/model"
	"github.com/leon37/EduConsult/internal/service"
)

type memKV struct {
	data map[string]string
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

type stubProvider struct {
	analysis *model.AnalysisResult
	err      error
}

func (s *stubProvider) AnalyzeInteraction(context.Context, llm.InteractionRequest) (*model.AnalysisResult, error) {
	return s.analysis, s.err
}

func (s *stubProvider) AnalyzePersonality(context.Context, llm.PersonalityRequest) (*model.PersonalityAnalysisResult, error) {
	return &model.PersonalityAnalysisResult{Summary: "画像"}, s.err
}

func (s *stubProvider) GenerateClassFeedback(context.Context, llm.FeedbackRequest) (*model.FeedbackResult, error) {
	return &model.FeedbackResult{}, s.err
}

func (s *stubProvider) GenerateActivityPlan(context.Context, llm.ActivityPlanRequest) (*model.ActivityPlan, error) {
	return &model.ActivityPlan{Theme: "主题"}, s.err
}

func newTestRouter(t *testing.T, provider llm.Provider, upstreamURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := service.NewProfileStore(&memKV{data: map[string]string{}})
	store.Load(context.Background())
	orchestrator := service.NewOrchestrator(store, provider)

	r := gin.New()
	api.RegisterRoutes(r,
		controller.NewProfileController(store),
		controller.NewAnalysisController(orchestrator),
		controller.NewUploadController(),
		controller.NewGatewayController(upstreamURL, "test-key"),
	)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v, body=%s", err, rec.Body.String())
	}
	return env
}

func TestHealth(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &stubProvider{}, "http://unused")
	rec := doJSON(t, r, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestProfileCRUDFlow(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &stubProvider{}, "http://unused")

	// 新建
	rec := doJSON(t, r, http.MethodPost, "/api/v1/profiles", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var created model.ClientProfile
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" || created.Name != "新学员" {
		t.Fatalf("created = %+v", created)
	}

	// 局部更新
	rec = doJSON(t, r, http.MethodPatch, "/api/v1/profiles/"+created.ID, map[string]any{
		"name":   "王妈妈",
		"status": string(model.StatusTrial),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var updated model.ClientProfile
	_ = json.Unmarshal(decodeEnvelope(t, rec).Data, &updated)
	if updated.Name != "王妈妈" {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.TrialRemainingLessons != 1 {
		t.Fatalf("trial default not applied: %+v", updated)
	}

	// 未知字段直接 400
	rec = doJSON(t, r, http.MethodPatch, "/api/v1/profiles/"+created.ID, map[string]any{
		"nmae": "手滑",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field status = %d", rec.Code)
	}

	// 删除
	rec = doJSON(t, r, http.MethodDelete, "/api/v1/profiles/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodGet, "/api/v1/profiles/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}

func TestAnalyzeInteractionEndpoint(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{analysis: &model.AnalysisResult{InteractionSummary: "沟通顺利"}}
	r := newTestRouter(t, provider, "http://unused")

	rec := doJSON(t, r, http.MethodGet, "/api/v1/profiles?status="+string(model.StatusRegular), nil)
	var list []model.ClientProfile
	_ = json.Unmarshal(decodeEnvelope(t, rec).Data, &list)
	if len(list) == 0 {
		t.Fatalf("expected seeded regulars")
	}

	rec = doJSON(t, r, http.MethodPost, "/api/v1/profiles/"+list[0].ID+"/analysis/interaction", map[string]any{
		"text": "老师好",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze status = %d, body=%s", rec.Code, rec.Body.String())
	}

	// 空输入 400
	rec = doJSON(t, r, http.MethodPost, "/api/v1/profiles/"+list[0].ID+"/analysis/interaction", map[string]any{
		"text": "  ",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty input status = %d", rec.Code)
	}

	// 档案不存在 404
	rec = doJSON(t, r, http.MethodPost, "/api/v1/profiles/nope/analysis/interaction", map[string]any{
		"text": "老师好",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing profile status = %d", rec.Code)
	}
}

func TestUploadFiltersUnsupportedTypes(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &stubProvider{}, "http://unused")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	addPart := func(name, contentType string, data []byte) {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, name))
		h.Set("Content-Type", contentType)
		part, _ := w.CreatePart(h)
		_, _ = part.Write(data)
	}
	addPart("chat.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
	addPart("notes.txt", "text/plain", []byte("skip me"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var data struct {
		Files []string `json:"files"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.Files) != 1 {
		t.Fatalf("files = %v, want only the image kept", data.Files)
	}
	if !strings.HasPrefix(data.Files[0], "data:image/png;base64,") {
		t.Fatalf("file[0] = %q", data.Files[0])
	}
}

func TestGatewayProxyPassthrough(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "models/gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected upstream path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
	}))
	defer upstream.Close()

	r := newTestRouter(t, &stubProvider{}, upstream.URL)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/gemini", map[string]any{
		"model":    "gemini-2.5-flash",
		"contents": []map[string]any{{"parts": []map[string]any{{"text": "hi"}}}},
		"config":   map[string]any{"temperature": 0.7},
	})
	// 上游状态码和响应体原样透传
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want passthrough 418", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "quota exceeded") {
		t.Fatalf("body = %s", rec.Body.String())
	}

	// 缺 model 400
	rec = doJSON(t, r, http.MethodPost, "/api/v1/gemini", map[string]any{
		"contents": []any{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing model status = %d", rec.Code)
	}
}
