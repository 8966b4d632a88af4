package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/vidquiz/internal/domains/quiz"
	"github.com/xpanvictor/vidquiz/internal/domains/transcript"
	"github.com/xpanvictor/vidquiz/internal/domains/video"
	"github.com/xpanvictor/vidquiz/internal/types"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
)

// multipartOverhead covers form headers and the title field on top of the file.
const multipartOverhead = 64 << 10

// VideoHandler handles video, transcript, question and quiz HTTP requests
type VideoHandler struct {
	// MaxUploadBytes caps the file part of an upload when positive.
	MaxUploadBytes int64

	videoService video.VideoService
	logger       *Logger.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(videoService video.VideoService, logger *Logger.Logger) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		logger:       logger.Named("http"),
	}
}

// UploadVideo handles media upload
// @Summary Upload a video or audio file
// @Description Store the file and queue transcription and question generation
// @Tags Videos
// @Accept multipart/form-data
// @Produce json
// @Param video formData file true "Video or audio file"
// @Param title formData string false "Display title, defaults to the file name"
// @Success 202 {object} UploadResponse "Upload accepted"
// @Failure 400 {object} ErrorResponse "Missing or unsupported file"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /videos [post]
func (h *VideoHandler) UploadVideo(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartOverhead)
	}

	fh, err := c.FormFile("video")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, h.logger, types.Validationf("upload exceeds the %d byte limit", h.MaxUploadBytes))
			return
		}
		respondBadRequest(c, "A file is required in the video field", err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondBadRequest(c, "Unable to read uploaded file", err)
		return
	}
	defer f.Close()

	v, err := h.videoService.Upload(c.Request.Context(), video.UploadRequest{
		Title:    c.PostForm("title"),
		Filename: fh.Filename,
		Size:     fh.Size,
		Content:  f,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusAccepted, UploadResponse{
		Message: "Video uploaded, processing started",
		Video:   *v,
	})
}

// ListVideos handles listing videos
// @Summary List videos
// @Description List uploaded videos, newest first
// @Tags Videos
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination" default(20)
// @Success 200 {object} ListVideosResponse "Videos"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	req := video.ListVideosRequest{Offset: offset, Limit: limit}
	videos, total, err := h.videoService.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ListVideosResponse{
		Videos: videos,
		Pagination: PaginationInfo{
			Total:  total,
			Offset: offset,
			Limit:  limit,
		},
	})
}

// GetVideo handles getting a specific video
// @Summary Get video by ID
// @Description Get a video with its transcript segments and questions
// @Tags Videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} VideoResponse "Video data"
// @Failure 404 {object} ErrorResponse "Video not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /videos/{id} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	v, err := h.videoService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, VideoResponse{Video: *v})
}

// DeleteVideo handles deleting a video
// @Summary Delete video
// @Description Cancel processing, then remove the stored file and the record
// @Tags Videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} SuccessResponse "Video deleted"
// @Failure 404 {object} ErrorResponse "Video not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /videos/{id} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	if err := h.videoService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Video deleted successfully"})
}

// GetStatus handles status polling
// @Summary Get processing status
// @Tags Videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} video.StatusResponse "Processing status"
// @Failure 404 {object} ErrorResponse "Video not found"
// @Router /videos/{id}/status [get]
func (h *VideoHandler) GetStatus(c *gin.Context) {
	status, err := h.videoService.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Reprocess handles rerunning the pipeline
// @Summary Reprocess video
// @Description Discard transcript and questions and run the whole pipeline again
// @Tags Videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 202 {object} video.StatusResponse "Reprocessing queued"
// @Failure 404 {object} ErrorResponse "Video not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /videos/{id}/reprocess [post]
func (h *VideoHandler) Reprocess(c *gin.Context) {
	status, err := h.videoService.Reprocess(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusAccepted, status)
}

// Cancel handles canceling the running job
// @Summary Cancel processing
// @Description Stop the queued or running job; the video ends failed
// @Tags Videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} video.StatusResponse "Job canceled"
// @Failure 400 {object} ErrorResponse "Nothing to cancel"
// @Failure 404 {object} ErrorResponse "Video or job not found"
// @Router /videos/{id}/cancel [post]
func (h *VideoHandler) Cancel(c *gin.Context) {
	status, err := h.videoService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetTranscript handles the JSON transcript view
// @Summary Get transcript
// @Tags Transcripts
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} video.TranscriptResponse "Transcript"
// @Failure 400 {object} ErrorResponse "Transcription not completed"
// @Failure 404 {object} ErrorResponse "Video not found"
// @Router /videos/{id}/transcript [get]
func (h *VideoHandler) GetTranscript(c *gin.Context) {
	t, err := h.videoService.Transcript(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// ExportTranscript handles transcript downloads
// @Summary Download transcript
// @Description Render the transcript as plain text, SubRip or WebVTT
// @Tags Transcripts
// @Produce plain
// @Param id path string true "Video ID"
// @Param format query string false "txt, srt or vtt" default(txt)
// @Success 200 {string} string "Transcript file"
// @Failure 400 {object} ErrorResponse "Unsupported format or transcription not completed"
// @Failure 404 {object} ErrorResponse "Video not found"
// @Router /videos/{id}/transcript/export [get]
func (h *VideoHandler) ExportTranscript(c *gin.Context) {
	format, err := transcript.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	export, err := h.videoService.ExportTranscript(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType, []byte(export.Body))
}

// GetQuestions handles listing the stored questions
// @Summary List questions
// @Tags Questions
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} video.QuestionsResponse "Stored questions"
// @Failure 404 {object} ErrorResponse "Video not found"
// @Router /videos/{id}/questions [get]
func (h *VideoHandler) GetQuestions(c *gin.Context) {
	qs, err := h.videoService.Questions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, qs)
}

// RegenerateQuestions handles question regeneration
// @Summary Regenerate questions
// @Description Regenerate one segment's questions synchronously, or queue regeneration of all
// @Tags Questions
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param request body video.RegenerateRequest false "Segment to regenerate, all when omitted"
// @Success 200 {object} video.QuestionsResponse "Segment regenerated"
// @Success 202 {object} video.QuestionsResponse "Regeneration of all questions queued"
// @Failure 400 {object} ErrorResponse "Invalid request or transcript not ready"
// @Failure 404 {object} ErrorResponse "Video or segment not found"
// @Router /videos/{id}/questions/regenerate [post]
func (h *VideoHandler) RegenerateQuestions(c *gin.Context) {
	var req video.RegenerateRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	qs, err := h.videoService.RegenerateQuestions(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	status := http.StatusOK
	if req.SegmentIndex == nil {
		status = http.StatusAccepted
	}
	c.JSON(status, qs)
}

// UpdateQuestion handles editing a stored question
// @Summary Edit question
// @Tags Questions
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param index path int true "Question position in the stored list"
// @Param request body video.UpdateQuestionRequest true "Fields to change"
// @Success 200 {object} QuestionResponse "Question updated"
// @Failure 400 {object} ErrorResponse "Invalid question"
// @Failure 404 {object} ErrorResponse "Video or question not found"
// @Router /videos/{id}/questions/{index} [put]
func (h *VideoHandler) UpdateQuestion(c *gin.Context) {
	index, ok := questionIndex(c)
	if !ok {
		return
	}

	var req video.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	q, err := h.videoService.UpdateQuestion(c.Request.Context(), c.Param("id"), index, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, QuestionResponse{
		Message:  "Question updated successfully",
		Question: *q,
	})
}

// DeleteQuestion handles removing a stored question
// @Summary Delete question
// @Tags Questions
// @Produce json
// @Param id path string true "Video ID"
// @Param index path int true "Question position in the stored list"
// @Success 200 {object} SuccessResponse "Question deleted"
// @Failure 404 {object} ErrorResponse "Video or question not found"
// @Router /videos/{id}/questions/{index} [delete]
func (h *VideoHandler) DeleteQuestion(c *gin.Context) {
	index, ok := questionIndex(c)
	if !ok {
		return
	}

	if err := h.videoService.DeleteQuestion(c.Request.Context(), c.Param("id"), index); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Question deleted successfully"})
}

// AssembleQuiz handles quiz creation
// @Summary Assemble quiz
// @Description Draw a random quiz from the stored questions. Without options the whole pool is used.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param request body quiz.Options false "Selection options"
// @Success 200 {object} quiz.Quiz "Assembled quiz"
// @Failure 400 {object} ErrorResponse "Invalid options"
// @Failure 404 {object} ErrorResponse "Video not found or no questions"
// @Router /videos/{id}/quiz [post]
func (h *VideoHandler) AssembleQuiz(c *gin.Context) {
	var opts quiz.Options
	if !bindOptionalJSON(c, &opts) {
		return
	}

	q, err := h.videoService.AssembleQuiz(c.Request.Context(), c.Param("id"), opts)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// SubmitQuiz handles grading
// @Summary Submit quiz answers
// @Description Grade answers. With a known quizId, questionIndex is a quiz position; otherwise a stored question position.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param request body video.SubmitQuizRequest true "Answers"
// @Success 200 {object} quiz.Result "Grading result"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 404 {object} ErrorResponse "Video not found or no questions"
// @Router /videos/{id}/quiz/submit [post]
func (h *VideoHandler) SubmitQuiz(c *gin.Context) {
	var req video.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	res, err := h.videoService.GradeQuiz(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// TestLLM handles the language model diagnostic
// @Summary Test LLM connectivity
// @Description Send a short prompt to the default or named backend
// @Tags Diagnostics
// @Produce json
// @Param backend query string false "Backend name, default when omitted"
// @Success 200 {object} video.LLMTestResponse "Backend reachable"
// @Failure 400 {object} ErrorResponse "Unknown backend"
// @Failure 502 {object} video.LLMTestResponse "Backend failed"
// @Router /llm/test [get]
func (h *VideoHandler) TestLLM(c *gin.Context) {
	res, err := h.videoService.TestLLM(c.Request.Context(), c.Query("backend"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, res)
}

func questionIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondBadRequest(c, "Question index must be an integer", err)
		return 0, false
	}
	return index, true
}

// bindOptionalJSON binds the body into obj when one is sent.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, "Invalid request data", err)
		return false
	}
	return true
}
