package video

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xpanvictor/vidquiz/internal/domains/questions"
	"github.com/xpanvictor/vidquiz/internal/domains/quiz"
	"github.com/xpanvictor/vidquiz/internal/domains/scheduler"
	"github.com/xpanvictor/vidquiz/internal/domains/transcript"
	"github.com/xpanvictor/vidquiz/internal/types"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
	"github.com/xpanvictor/vidquiz/pkg/assistant/router"
)

const llmTestPrompt = "Reply with the single word OK."

// VideoService defines the operations behind the HTTP API.
type VideoService interface {
	// Video management
	Upload(ctx context.Context, req UploadRequest) (*Video, error)
	Get(ctx context.Context, id string) (*Video, error)
	List(ctx context.Context, req ListVideosRequest) ([]VideoSummary, int64, error)
	Delete(ctx context.Context, id string) error

	// Processing
	Status(ctx context.Context, id string) (*StatusResponse, error)
	Reprocess(ctx context.Context, id string) (*StatusResponse, error)
	Cancel(ctx context.Context, id string) (*StatusResponse, error)

	// Transcript
	Transcript(ctx context.Context, id string) (*TranscriptResponse, error)
	ExportTranscript(ctx context.Context, id string, format transcript.Format) (*TranscriptExport, error)

	// Questions
	Questions(ctx context.Context, id string) (*QuestionsResponse, error)
	RegenerateQuestions(ctx context.Context, id string, req RegenerateRequest) (*QuestionsResponse, error)
	UpdateQuestion(ctx context.Context, id string, index int, req UpdateQuestionRequest) (*types.Question, error)
	DeleteQuestion(ctx context.Context, id string, index int) error

	// Quiz
	AssembleQuiz(ctx context.Context, id string, opts quiz.Options) (*quiz.Quiz, error)
	GradeQuiz(ctx context.Context, id string, req SubmitQuizRequest) (*quiz.Result, error)

	// Diagnostics
	TestLLM(ctx context.Context, backend string) (*LLMTestResponse, error)
}

// ServiceDeps collects the collaborators of the video service.
type ServiceDeps struct {
	Repository VideoRepository
	Files      *FileStore
	Queue      scheduler.Queue
	Generator  *questions.Generator
	Assembler  *quiz.Assembler
	Sessions   quiz.SessionStore
	LLM        *router.Mux
}

type videoService struct {
	repository VideoRepository
	files      *FileStore
	queue      scheduler.Queue
	generator  *questions.Generator
	assembler  *quiz.Assembler
	sessions   quiz.SessionStore
	llm        *router.Mux
	logger     *Logger.Logger
}

func NewVideoService(deps ServiceDeps, logger *Logger.Logger) VideoService {
	return &videoService{
		repository: deps.Repository,
		files:      deps.Files,
		queue:      deps.Queue,
		generator:  deps.Generator,
		assembler:  deps.Assembler,
		sessions:   deps.Sessions,
		llm:        deps.LLM,
		logger:     logger.Named("video"),
	}
}

// Upload implements VideoService
func (s *videoService) Upload(ctx context.Context, req UploadRequest) (*Video, error) {
	if err := s.files.Validate(req.Filename, req.Size); err != nil {
		return nil, err
	}

	v := NewVideo(req.Title, req.Filename, req.Size)
	path, err := s.files.Save(v.ID.String(), req.Filename, req.Content)
	if err != nil {
		return nil, err
	}
	v.FilePath = path

	if err := s.repository.Create(ctx, v); err != nil {
		s.logger.Errorf("error creating video: %v", err)
		s.files.Remove(path)
		return nil, types.Internal("create video", err)
	}

	if err := s.enqueue(ctx, v, scheduler.JobTypeProcessVideo); err != nil {
		return nil, err
	}

	s.logger.Infof("video uploaded: %s (%s, %d bytes)", v.ID, v.OriginalName, v.Size)
	return v, nil
}

// enqueue records a new job id on v, then submits the job. The record is
// saved before the job can start so the worker never sees a stale one. A
// refused job fails the video so the record does not sit in pending.
func (s *videoService) enqueue(ctx context.Context, v *Video, t scheduler.JobType) error {
	v.JobID = uuid.NewString()
	if err := s.repository.Save(ctx, v); err != nil {
		return types.Internal("save video", err)
	}

	if _, err := s.queue.Enqueue(ctx, scheduler.Job{ID: v.JobID, Type: t, VideoID: v.ID.String()}); err != nil {
		s.logger.Errorf("error enqueueing %s for %s: %v", t, v.ID, err)
		v.Fail(ctx, fmt.Sprintf("could not schedule processing: %v", err))
		if serr := s.repository.Save(ctx, v); serr != nil {
			s.logger.Errorf("error saving video %s: %v", v.ID, serr)
		}
		return types.Internal("enqueue job", err)
	}
	return nil
}

// Get implements VideoService
func (s *videoService) Get(ctx context.Context, id string) (*Video, error) {
	v, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
		s.logger.Errorf("error getting video: %v", err)
		return nil, types.Internal("get video", err)
	}
	return v, nil
}

// List implements VideoService
func (s *videoService) List(ctx context.Context, req ListVideosRequest) ([]VideoSummary, int64, error) {
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	videos, total, err := s.repository.List(ctx, req.Offset, req.Limit)
	if err != nil {
		s.logger.Errorf("error listing videos: %v", err)
		return nil, 0, types.Internal("list videos", err)
	}

	out := make([]VideoSummary, len(videos))
	for i := range videos {
		out[i] = videos[i].ToSummary()
	}
	return out, total, nil
}

// Delete implements VideoService
func (s *videoService) Delete(ctx context.Context, id string) error {
	v, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.cancelJob(ctx, v)
	if err := s.files.Remove(v.FilePath); err != nil {
		s.logger.Warnf("error removing media for %s: %v", v.ID, err)
	}
	if err := s.repository.Delete(ctx, id); err != nil {
		s.logger.Errorf("error deleting video: %v", err)
		return types.Internal("delete video", err)
	}

	s.logger.Infof("video deleted: %s", id)
	return nil
}

// cancelJob stops v's job if it is still queued or running.
func (s *videoService) cancelJob(ctx context.Context, v *Video) bool {
	if v.JobID == "" {
		return false
	}
	state, err := s.queue.State(ctx, v.JobID)
	if err != nil || state.Terminal() {
		return false
	}
	if err := s.queue.Cancel(ctx, v.JobID); err != nil {
		s.logger.Warnf("error canceling job %s: %v", v.JobID, err)
		return false
	}
	return true
}

// Status implements VideoService
func (s *videoService) Status(ctx context.Context, id string) (*StatusResponse, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.statusOf(ctx, v), nil
}

func (s *videoService) statusOf(ctx context.Context, v *Video) *StatusResponse {
	resp := &StatusResponse{
		VideoID:             v.ID.String(),
		Status:              v.Status,
		TranscriptionStatus: v.TranscriptionStatus,
		QuestionStatus:      v.QuestionStatus,
		ErrorMessage:        v.ErrorMessage,
		JobID:               v.JobID,
		SegmentCount:        len(v.Segments),
		QuestionCount:       len(v.Questions),
		UpdatedAt:           v.UpdatedAt,
	}
	if v.JobID != "" {
		if state, err := s.queue.State(ctx, v.JobID); err == nil {
			resp.JobState = state
		}
	}
	return resp
}

// Reprocess implements VideoService
func (s *videoService) Reprocess(ctx context.Context, id string) (*StatusResponse, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cancelJob(ctx, v)
	v.Reset(ctx)
	if err := s.enqueue(ctx, v, scheduler.JobTypeProcessVideo); err != nil {
		return nil, err
	}

	s.logger.Infof("video %s queued for reprocessing", v.ID)
	return s.statusOf(ctx, v), nil
}

// Cancel implements VideoService
func (s *videoService) Cancel(ctx context.Context, id string) (*StatusResponse, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Status.Terminal() || v.JobID == "" {
		return nil, types.Validationf("video %s has no running job", id)
	}

	if err := s.queue.Cancel(ctx, v.JobID); err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			return nil, types.NotFoundf("job %s", v.JobID)
		}
		return nil, types.Internal("cancel job", err)
	}

	v.Fail(ctx, "processing canceled")
	if err := s.repository.Save(ctx, v); err != nil {
		return nil, types.Internal("save video", err)
	}

	s.logger.Infof("job %s for video %s canceled", v.JobID, v.ID)
	return s.statusOf(ctx, v), nil
}

// Transcript implements VideoService
func (s *videoService) Transcript(ctx context.Context, id string) (*TranscriptResponse, error) {
	v, err := s.transcribed(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TranscriptResponse{
		VideoID:      v.ID.String(),
		Title:        v.Title,
		Segments:     v.Segments,
		FullText:     transcript.FullText(v.Segments),
		SegmentCount: len(v.Segments),
	}, nil
}

// ExportTranscript implements VideoService
func (s *videoService) ExportTranscript(ctx context.Context, id string, format transcript.Format) (*TranscriptExport, error) {
	v, err := s.transcribed(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.Map(func(r rune) rune {
		if r == '"' || r == '/' || r == '\\' || r < ' ' {
			return '_'
		}
		return r
	}, v.Title)
	if name == "" {
		name = v.ID.String()
	}

	return &TranscriptExport{
		Filename:    fmt.Sprintf("%s.%s", name, format),
		ContentType: format.ContentType(),
		Body:        transcript.Render(format, v.Segments),
	}, nil
}

func (s *videoService) transcribed(ctx context.Context, id string) (*Video, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.TranscriptionStatus != StatusCompleted {
		return nil, types.Validationf("transcript not available, transcription is %s", v.TranscriptionStatus)
	}
	return v, nil
}

// Questions implements VideoService
func (s *videoService) Questions(ctx context.Context, id string) (*QuestionsResponse, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return questionsOf(v), nil
}

func questionsOf(v *Video) *QuestionsResponse {
	return &QuestionsResponse{
		VideoID:   v.ID.String(),
		Status:    v.QuestionStatus,
		Questions: v.Questions,
		Total:     len(v.Questions),
	}
}

// RegenerateQuestions implements VideoService. Regenerating every segment
// is queued; a single segment is regenerated inline.
func (s *videoService) RegenerateQuestions(ctx context.Context, id string, req RegenerateRequest) (*QuestionsResponse, error) {
	v, err := s.transcribed(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.QuestionStatus == StatusProcessing {
		return nil, types.Validationf("questions for video %s are already being generated", id)
	}
	if len(v.Segments) == 0 {
		return nil, types.Validationf("video %s has no transcript segments", id)
	}

	if req.SegmentIndex == nil {
		v.ResetQuestions(ctx)
		if err := s.enqueue(ctx, v, scheduler.JobTypeGenerateQuestions); err != nil {
			return nil, err
		}
		s.logger.Infof("question regeneration queued for video %s", v.ID)
		return questionsOf(v), nil
	}

	idx := *req.SegmentIndex
	var seg *types.Segment
	for i := range v.Segments {
		if v.Segments[i].SegmentIndex == idx {
			seg = &v.Segments[i]
			break
		}
	}
	if seg == nil {
		return nil, types.NotFoundf("segment %d", idx)
	}

	fresh := s.generator.ForSegment(ctx, *seg)

	// reload so the replacement applies to the latest pool
	v, err = s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Questions = replaceSegment(v.Questions, idx, fresh)
	if err := s.repository.Save(ctx, v); err != nil {
		return nil, types.Internal("save video", err)
	}

	s.logger.Infof("regenerated %d questions for segment %d of video %s", len(fresh), idx, v.ID)
	return questionsOf(v), nil
}

// replaceSegment swaps the questions of segment for fresh, placing them
// before the first question of a later segment.
func replaceSegment(pool []types.Question, segment int, fresh []types.Question) []types.Question {
	kept := make([]types.Question, 0, len(pool))
	for _, q := range pool {
		if q.SegmentIndex != segment {
			kept = append(kept, q)
		}
	}

	at := len(kept)
	for i, q := range kept {
		if q.SegmentIndex > segment {
			at = i
			break
		}
	}

	out := make([]types.Question, 0, len(kept)+len(fresh))
	out = append(out, kept[:at]...)
	out = append(out, fresh...)
	return append(out, kept[at:]...)
}

// UpdateQuestion implements VideoService
func (s *videoService) UpdateQuestion(ctx context.Context, id string, index int, req UpdateQuestionRequest) (*types.Question, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(v.Questions) {
		return nil, types.NotFoundf("question %d", index)
	}

	q := v.Questions[index]
	if req.Question != nil {
		q.Question = strings.TrimSpace(*req.Question)
	}
	if req.Options != nil {
		q.Options = append([]string(nil), (*req.Options)...)
	}
	if req.CorrectAnswer != nil {
		q.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Explanation != nil {
		q.Explanation = strings.TrimSpace(*req.Explanation)
	}
	if !q.Valid() {
		return nil, types.Validationf("question needs text, %d options and a correct answer between 0 and %d",
			types.OptionCount, types.OptionCount-1)
	}

	v.Questions[index] = q
	if err := s.repository.Save(ctx, v); err != nil {
		return nil, types.Internal("save video", err)
	}

	s.logger.Infof("question %d of video %s updated", index, id)
	return &q, nil
}

// DeleteQuestion implements VideoService
func (s *videoService) DeleteQuestion(ctx context.Context, id string, index int) error {
	v, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(v.Questions) {
		return types.NotFoundf("question %d", index)
	}

	v.Questions = append(v.Questions[:index], v.Questions[index+1:]...)
	if err := s.repository.Save(ctx, v); err != nil {
		return types.Internal("save video", err)
	}

	s.logger.Infof("question %d of video %s deleted", index, id)
	return nil
}

// AssembleQuiz implements VideoService
func (s *videoService) AssembleQuiz(ctx context.Context, id string, opts quiz.Options) (*quiz.Quiz, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	q, err := s.assembler.Assemble(v.ID.String(), v.Questions, opts)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, quiz.NewSession(q)); err != nil {
		s.logger.Warnf("quiz %s will be graded by stored offsets: %v", q.QuizID, err)
	}
	return q, nil
}

// GradeQuiz implements VideoService
func (s *videoService) GradeQuiz(ctx context.Context, id string, req SubmitQuizRequest) (*quiz.Result, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(v.Questions) == 0 {
		return nil, types.NotFoundf("no questions available for video %s", id)
	}

	var offsets []int
	if req.QuizID != "" {
		session, err := s.sessions.Get(ctx, req.QuizID)
		switch {
		case err == nil:
			if session.VideoID != v.ID.String() {
				return nil, types.Validationf("quiz %s belongs to another video", req.QuizID)
			}
			offsets = quiz.ResolveOffsets(v.Questions, session.QuestionIDs)
		case errors.Is(err, quiz.ErrSessionNotFound):
			s.logger.Infof("quiz %s not found, grading by stored offsets", req.QuizID)
		default:
			s.logger.Warnf("quiz %s lookup failed, grading by stored offsets: %v", req.QuizID, err)
		}
	}

	res := quiz.Grade(v.Questions, req.Answers, offsets)
	return &res, nil
}

// TestLLM implements VideoService. An unconfigured backend name is a
// validation error; a failing backend is reported in the response.
func (s *videoService) TestLLM(ctx context.Context, backend string) (*LLMTestResponse, error) {
	resp := &LLMTestResponse{Backend: backend, Backends: s.llm.Backends()}

	c, err := s.llm.Select(backend)
	if err != nil {
		return nil, types.Validationf("%v (configured: %s)", err, strings.Join(resp.Backends, ", "))
	}
	resp.Backend = c.Name()
	resp.Model = c.Model()

	start := time.Now()
	out, err := c.Complete(ctx, llmTestPrompt)
	resp.LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		resp.Error = err.Error()
		return resp, nil
	}

	resp.Success = true
	resp.Response = strings.TrimSpace(out)
	return resp, nil
}
