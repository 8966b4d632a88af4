package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/xpanvictor/vidquiz/internal/domains/quiz"
	"github.com/xpanvictor/vidquiz/internal/domains/transcript"
	"github.com/xpanvictor/vidquiz/internal/domains/video"
	"github.com/xpanvictor/vidquiz/internal/types"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
)

const knownID = "550e8400-e29b-41d4-a716-446655440000"

// stubService answers for knownID and reports not found for anything else.
type stubService struct {
	mu sync.Mutex

	uploaded    video.UploadRequest
	uploadBody  string
	uploadErr   error
	regenerate  *video.RegenerateRequest
	quizOpts    *quiz.Options
	statuses    []video.StatusResponse
	statusCalls int
	llm         video.LLMTestResponse
	failWith    error
}

func (s *stubService) check(id string) error {
	if s.failWith != nil {
		return s.failWith
	}
	if id != knownID {
		return video.ErrVideoNotFound
	}
	return nil
}

func (s *stubService) Upload(ctx context.Context, req video.UploadRequest) (*video.Video, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	body, _ := io.ReadAll(req.Content)
	s.uploaded = req
	s.uploadBody = string(body)
	return video.NewVideo(req.Title, req.Filename, req.Size), nil
}

func (s *stubService) Get(ctx context.Context, id string) (*video.Video, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	return video.NewVideo("lecture", "lecture.mp4", 10), nil
}

func (s *stubService) List(ctx context.Context, req video.ListVideosRequest) ([]video.VideoSummary, int64, error) {
	v := video.NewVideo("lecture", "lecture.mp4", 10)
	return []video.VideoSummary{v.ToSummary()}, 1, nil
}

func (s *stubService) Delete(ctx context.Context, id string) error { return s.check(id) }

func (s *stubService) Status(ctx context.Context, id string) (*video.StatusResponse, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.statuses) == 0 {
		return &video.StatusResponse{VideoID: id, Status: video.StatusPending}, nil
	}
	i := s.statusCalls
	if i >= len(s.statuses) {
		i = len(s.statuses) - 1
	}
	s.statusCalls++
	st := s.statuses[i]
	return &st, nil
}

func (s *stubService) Reprocess(ctx context.Context, id string) (*video.StatusResponse, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	return &video.StatusResponse{VideoID: id, Status: video.StatusPending}, nil
}

func (s *stubService) Cancel(ctx context.Context, id string) (*video.StatusResponse, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	return nil, types.Validationf("video %s has no running job", id)
}

func (s *stubService) Transcript(ctx context.Context, id string) (*video.TranscriptResponse, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	return &video.TranscriptResponse{VideoID: id, FullText: "hello", SegmentCount: 1}, nil
}

func (s *stubService) ExportTranscript(ctx context.Context, id string, format transcript.Format) (*video.TranscriptExport, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	return &video.TranscriptExport{
		Filename:    "lecture." + string(format),
		ContentType: format.ContentType(),
		Body:        "WEBVTT\n\n",
	}, nil
}

func (s *stubService) Questions(ctx context.Context, id string) (*video.QuestionsResponse, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	return &video.QuestionsResponse{VideoID: id, Status: video.StatusCompleted, Questions: []types.Question{}}, nil
}

func (s *stubService) RegenerateQuestions(ctx context.Context, id string, req video.RegenerateRequest) (*video.QuestionsResponse, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	s.regenerate = &req
	return &video.QuestionsResponse{VideoID: id}, nil
}

func (s *stubService) UpdateQuestion(ctx context.Context, id string, index int, req video.UpdateQuestionRequest) (*types.Question, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	if index != 0 {
		return nil, types.NotFoundf("question %d", index)
	}
	q := types.Question{ID: uuid.New(), Question: *req.Question, Options: []string{"a", "b", "c", "d"}}
	return &q, nil
}

func (s *stubService) DeleteQuestion(ctx context.Context, id string, index int) error {
	if err := s.check(id); err != nil {
		return err
	}
	if index != 0 {
		return types.NotFoundf("question %d", index)
	}
	return nil
}

func (s *stubService) AssembleQuiz(ctx context.Context, id string, opts quiz.Options) (*quiz.Quiz, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	s.quizOpts = &opts
	return &quiz.Quiz{QuizID: "q1", VideoID: id}, nil
}

func (s *stubService) GradeQuiz(ctx context.Context, id string, req video.SubmitQuizRequest) (*quiz.Result, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	return &quiz.Result{Score: 1, Total: len(req.Answers), Percentage: 100}, nil
}

func (s *stubService) TestLLM(ctx context.Context, backend string) (*video.LLMTestResponse, error) {
	if backend == "nope" {
		return nil, types.Validationf("llm backend %q is not configured", backend)
	}
	res := s.llm
	res.Backend = backend
	return &res, nil
}

func setupRouter(svc video.VideoService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	logger := Logger.NewNop()
	vh := NewVideoHandler(svc, logger)
	ss := NewStatusStream(svc, 10*time.Millisecond, logger)

	r.Use(ErrorHandlerMiddleware(logger))
	videos := r.Group("/api/videos")
	videos.POST("", vh.UploadVideo)
	videos.GET("", vh.ListVideos)
	videos.GET("/:id", vh.GetVideo)
	videos.DELETE("/:id", vh.DeleteVideo)
	videos.GET("/:id/status", vh.GetStatus)
	videos.GET("/:id/status/ws", ss.Handle)
	videos.POST("/:id/cancel", vh.Cancel)
	videos.GET("/:id/transcript/export", vh.ExportTranscript)
	videos.POST("/:id/questions/regenerate", vh.RegenerateQuestions)
	videos.PUT("/:id/questions/:index", vh.UpdateQuestion)
	videos.DELETE("/:id/questions/:index", vh.DeleteQuestion)
	videos.POST("/:id/quiz", vh.AssembleQuiz)
	videos.POST("/:id/quiz/submit", vh.SubmitQuiz)
	r.GET("/api/llm/test", vh.TestLLM)
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func do(r http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response is not an error envelope: %s", w.Body.String())
	}
	return resp
}

func TestUploadVideo(t *testing.T) {
	svc := &stubService{}
	r := setupRouter(svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", "Week 1")
	fw, _ := mw.CreateFormFile("video", "week1.mp4")
	fw.Write([]byte("media bytes"))
	mw.Close()

	w := do(r, http.MethodPost, "/api/videos", &buf, mw.FormDataContentType())
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d: %s", w.Code, w.Body.String())
	}

	var resp UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Video.Title != "Week 1" || resp.Video.OriginalName != "week1.mp4" {
		t.Errorf("Unexpected video %+v", resp.Video)
	}
	if svc.uploadBody != "media bytes" || svc.uploaded.Size != int64(len("media bytes")) {
		t.Errorf("Service got %q (%d bytes)", svc.uploadBody, svc.uploaded.Size)
	}
}

func TestUploadVideoErrors(t *testing.T) {
	r := setupRouter(&stubService{})
	w := do(r, http.MethodPost, "/api/videos", strings.NewReader("x"), "text/plain")
	if w.Code != http.StatusBadRequest || decodeError(t, w).Code != types.CodeValidation {
		t.Errorf("Expected validation error for missing file, got %d: %s", w.Code, w.Body.String())
	}

	svc := &stubService{uploadErr: types.Validationf("unsupported file type .exe")}
	r = setupRouter(svc)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("video", "virus.exe")
	fw.Write([]byte("x"))
	mw.Close()

	w = do(r, http.MethodPost, "/api/videos", &buf, mw.FormDataContentType())
	resp := decodeError(t, w)
	if w.Code != http.StatusBadRequest || !strings.Contains(resp.Error, ".exe") {
		t.Errorf("Expected 400 mentioning the extension, got %d: %+v", w.Code, resp)
	}
}

func TestUploadVideoTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubService{}
	vh := NewVideoHandler(svc, Logger.NewNop())
	vh.MaxUploadBytes = 1 << 10
	r := gin.New()
	r.POST("/api/videos", vh.UploadVideo)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("video", "huge.mp4")
	fw.Write(bytes.Repeat([]byte("x"), 2*multipartOverhead))
	mw.Close()

	w := do(r, http.MethodPost, "/api/videos", &buf, mw.FormDataContentType())
	if w.Code != http.StatusBadRequest || decodeError(t, w).Code != types.CodeValidation {
		t.Errorf("Expected validation error for oversized upload, got %d: %s", w.Code, w.Body.String())
	}
	if svc.uploadBody != "" {
		t.Error("Oversized upload reached the service")
	}
}

func TestErrorEnvelope(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   types.ErrorCode
		hidden bool
	}{
		{"not found", video.ErrVideoNotFound, http.StatusNotFound, types.CodeNotFound, false},
		{"validation", types.Validationf("bad"), http.StatusBadRequest, types.CodeValidation, false},
		{"external", types.ExternalTool("whisper", io.ErrUnexpectedEOF), http.StatusBadGateway, types.CodeExternalTool, false},
		{"internal", types.Internal("save video", io.ErrClosedPipe), http.StatusInternalServerError, types.CodeInternal, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouter(&stubService{failWith: tc.err})
			w := do(r, http.MethodGet, "/api/videos/"+knownID, nil, "")
			resp := decodeError(t, w)
			if w.Code != tc.status || resp.Code != tc.code {
				t.Errorf("Expected %d %s, got %d %+v", tc.status, tc.code, w.Code, resp)
			}
			if tc.hidden && strings.Contains(resp.Error, "closed pipe") {
				t.Errorf("Internal cause leaked: %q", resp.Error)
			}
		})
	}
}

func TestGetListDelete(t *testing.T) {
	r := setupRouter(&stubService{})

	if w := do(r, http.MethodGet, "/api/videos/"+knownID, nil, ""); w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/videos/unknown", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}

	w := do(r, http.MethodGet, "/api/videos?limit=5", nil, "")
	var list ListVideosResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if len(list.Videos) != 1 || list.Pagination.Total != 1 || list.Pagination.Limit != 5 {
		t.Errorf("Unexpected list %+v", list)
	}

	if w := do(r, http.MethodDelete, "/api/videos/"+knownID, nil, ""); w.Code != http.StatusOK {
		t.Errorf("Expected 200 on delete, got %d", w.Code)
	}
}

func TestCancelWithoutJob(t *testing.T) {
	r := setupRouter(&stubService{})
	w := do(r, http.MethodPost, "/api/videos/"+knownID+"/cancel", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestExportTranscript(t *testing.T) {
	r := setupRouter(&stubService{})

	w := do(r, http.MethodGet, "/api/videos/"+knownID+"/transcript/export?format=vtt", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="lecture.vtt"` {
		t.Errorf("Unexpected Content-Disposition %q", got)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/vtt") {
		t.Errorf("Unexpected Content-Type %q", w.Header().Get("Content-Type"))
	}
	if w.Body.String() != "WEBVTT\n\n" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/videos/"+knownID+"/transcript/export?format=docx", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for docx, got %d", w.Code)
	}
}

func TestRegenerateBodyIsOptional(t *testing.T) {
	svc := &stubService{}
	r := setupRouter(svc)

	w := do(r, http.MethodPost, "/api/videos/"+knownID+"/questions/regenerate", nil, "")
	if w.Code != http.StatusAccepted || svc.regenerate == nil || svc.regenerate.SegmentIndex != nil {
		t.Errorf("Expected queued regeneration of all, got %d %+v", w.Code, svc.regenerate)
	}

	w = do(r, http.MethodPost, "/api/videos/"+knownID+"/questions/regenerate",
		strings.NewReader(`{"segmentIndex":2}`), "application/json")
	if w.Code != http.StatusOK || svc.regenerate.SegmentIndex == nil || *svc.regenerate.SegmentIndex != 2 {
		t.Errorf("Expected segment 2 regeneration, got %d %+v", w.Code, svc.regenerate)
	}

	w = do(r, http.MethodPost, "/api/videos/"+knownID+"/questions/regenerate",
		strings.NewReader(`{"segmentIndex":`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", w.Code)
	}
}

func TestQuestionEditing(t *testing.T) {
	r := setupRouter(&stubService{})

	w := do(r, http.MethodPut, "/api/videos/"+knownID+"/questions/0",
		strings.NewReader(`{"question":"Edited?"}`), "application/json")
	var resp QuestionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp.Question.Question != "Edited?" {
		t.Errorf("Unexpected question %+v", resp.Question)
	}

	if w := do(r, http.MethodPut, "/api/videos/"+knownID+"/questions/first",
		strings.NewReader(`{}`), "application/json"); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-numeric index, got %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/videos/"+knownID+"/questions/9", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing question, got %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/videos/"+knownID+"/questions/0", nil, ""); w.Code != http.StatusOK {
		t.Errorf("Expected 200 on delete, got %d", w.Code)
	}
}

func TestQuizEndpoints(t *testing.T) {
	svc := &stubService{}
	r := setupRouter(svc)

	w := do(r, http.MethodPost, "/api/videos/"+knownID+"/quiz", nil, "")
	if w.Code != http.StatusOK || svc.quizOpts == nil || svc.quizOpts.TotalQuestions != nil {
		t.Errorf("Expected default quiz, got %d %+v", w.Code, svc.quizOpts)
	}

	w = do(r, http.MethodPost, "/api/videos/"+knownID+"/quiz",
		strings.NewReader(`{"totalQuestions":3,"shuffle":true}`), "application/json")
	if w.Code != http.StatusOK || *svc.quizOpts.TotalQuestions != 3 || !svc.quizOpts.Shuffle {
		t.Errorf("Options not passed through: %d %+v", w.Code, svc.quizOpts)
	}

	w = do(r, http.MethodPost, "/api/videos/"+knownID+"/quiz/submit",
		strings.NewReader(`{"quizId":"q1","answers":[{"questionIndex":0,"selectedAnswer":1}]}`), "application/json")
	var res quiz.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil || w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if res.Total != 1 {
		t.Errorf("Unexpected result %+v", res)
	}

	if w := do(r, http.MethodPost, "/api/videos/"+knownID+"/quiz/submit", nil, ""); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty submission, got %d", w.Code)
	}
}

func TestLLMDiagnostic(t *testing.T) {
	r := setupRouter(&stubService{llm: video.LLMTestResponse{Success: true, Response: "OK"}})
	if w := do(r, http.MethodGet, "/api/llm/test?backend=ollama", nil, ""); w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	r = setupRouter(&stubService{llm: video.LLMTestResponse{Error: "connection refused"}})
	w := do(r, http.MethodGet, "/api/llm/test", nil, "")
	if w.Code != http.StatusBadGateway || !strings.Contains(w.Body.String(), "connection refused") {
		t.Errorf("Expected 502 with error, got %d: %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/llm/test?backend=nope", nil, "")
	if w.Code != http.StatusBadRequest || decodeError(t, w).Code != types.CodeValidation {
		t.Errorf("Expected 400 validation error for unknown backend, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPanicRecovered(t *testing.T) {
	r := setupRouter(&stubService{})
	w := do(r, http.MethodGet, "/panic", nil, "")
	if w.Code != http.StatusInternalServerError || decodeError(t, w).Code != types.CodeInternal {
		t.Errorf("Expected internal error envelope, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodOptions, "/x", nil, "")
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Unexpected preflight response %d %v", w.Code, w.Header())
	}
}

func TestStatusStream(t *testing.T) {
	svc := &stubService{statuses: []video.StatusResponse{
		{VideoID: knownID, Status: video.StatusProcessing, TranscriptionStatus: video.StatusProcessing},
		{VideoID: knownID, Status: video.StatusProcessing, TranscriptionStatus: video.StatusProcessing},
		{VideoID: knownID, Status: video.StatusProcessing, TranscriptionStatus: video.StatusCompleted, SegmentCount: 2},
		{VideoID: knownID, Status: video.StatusCompleted, TranscriptionStatus: video.StatusCompleted,
			QuestionStatus: video.StatusCompleted, SegmentCount: 2, QuestionCount: 6},
	}}
	srv := httptest.NewServer(setupRouter(svc))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/videos/" + knownID + "/status/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var got []video.StatusResponse
	for {
		var st video.StatusResponse
		if err := conn.ReadJSON(&st); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				t.Fatalf("Expected normal close, got %v", err)
			}
			break
		}
		got = append(got, st)
	}

	// the repeated processing status is not pushed twice
	if len(got) != 3 {
		t.Fatalf("Expected 3 messages, got %d: %+v", len(got), got)
	}
	if got[2].Status != video.StatusCompleted || got[2].QuestionCount != 6 {
		t.Errorf("Unexpected final status %+v", got[2])
	}
}

func TestStatusStreamUnknownVideo(t *testing.T) {
	srv := httptest.NewServer(setupRouter(&stubService{}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/videos/nope/status/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("Expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 handshake response, got %v", resp)
	}
}
