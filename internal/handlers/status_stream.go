package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/xpanvictor/vidquiz/internal/domains/video"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // dev-only
}

// StatusStream pushes status changes of one video over a websocket until
// processing ends or the client goes away.
type StatusStream struct {
	videoService video.VideoService
	interval     time.Duration
	logger       *Logger.Logger
}

func NewStatusStream(videoService video.VideoService, interval time.Duration, logger *Logger.Logger) *StatusStream {
	if interval <= 0 {
		interval = time.Second
	}
	return &StatusStream{
		videoService: videoService,
		interval:     interval,
		logger:       logger.Named("ws"),
	}
}

// Handle serves the stream
// @Summary Stream processing status
// @Description Upgrade to a websocket that receives a status message on every change and closes once the video is completed or failed
// @Tags Videos
// @Param id path string true "Video ID"
// @Success 101 {object} video.StatusResponse "Status messages"
// @Failure 404 {object} ErrorResponse "Video not found"
// @Router /videos/{id}/status/ws [get]
func (s *StatusStream) Handle(c *gin.Context) {
	id := c.Param("id")

	// unknown ids are refused before the upgrade
	status, err := s.videoService.Status(c.Request.Context(), id)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Errorf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go s.drain(conn, cancel)

	s.stream(ctx, conn, id, status)
}

// drain reads until the client closes, which gorilla needs to process
// control frames.
func (s *StatusStream) drain(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (s *StatusStream) stream(ctx context.Context, conn *websocket.Conn, id string, status *video.StatusResponse) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var last *video.StatusResponse
	for {
		if last == nil || changed(last, status) {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(status); err != nil {
				s.logger.Debugf("status stream for %s closed: %v", id, err)
				return
			}
			last = status
		}

		if status.Status.Terminal() {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(status.Status))
			conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		next, err := s.videoService.Status(ctx, id)
		if err != nil {
			// deleted while watching
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, err.Error())
			conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		}
		status = next
	}
}

func changed(a, b *video.StatusResponse) bool {
	return a.Status != b.Status ||
		a.TranscriptionStatus != b.TranscriptionStatus ||
		a.QuestionStatus != b.QuestionStatus ||
		a.ErrorMessage != b.ErrorMessage ||
		a.JobID != b.JobID ||
		a.JobState != b.JobState ||
		a.SegmentCount != b.SegmentCount ||
		a.QuestionCount != b.QuestionCount
}
