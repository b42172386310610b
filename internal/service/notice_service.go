package service

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"jeoparty/internal/models"
	"jeoparty/internal/utils"
)

// noticeTTL matches the toast timing of the board UI.
const noticeTTL = 3200 * time.Millisecond

// NoticeService owns the single-slot, auto-dismissing host notice. Publishing
// a notice cancels any pending dismissal and replaces the current one.
type NoticeService struct {
	mu      sync.Mutex
	logger  *zap.Logger
	ttl     time.Duration
	current *models.Notice
	timer   *time.Timer
}

// NewNoticeService creates a new notice service
func NewNoticeService(logger *zap.Logger) *NoticeService {
	return &NoticeService{
		logger: logger,
		ttl:    noticeTTL,
	}
}

// Publish replaces the current notice and schedules its dismissal
func (s *NoticeService) Publish(tone, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}

	notice := &models.Notice{
		ID:      utils.GenerateID(),
		Tone:    tone,
		Message: message,
	}
	s.current = notice
	s.timer = time.AfterFunc(s.ttl, func() {
		s.dismiss(notice.ID)
	})

	s.logger.Info("notice published",
		zap.String("notice_id", notice.ID),
		zap.String("tone", tone),
		zap.String("message", message))
}

// Current returns the visible notice, or nil once it has been dismissed
func (s *NoticeService) Current() *models.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	notice := *s.current
	return &notice
}

// dismiss clears the notice only if it is still the one that scheduled the
// timer; a newer notice keeps its own dismissal.
func (s *NoticeService) dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
}
