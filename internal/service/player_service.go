package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edupress/courseplayer/internal/content"
	"github.com/edupress/courseplayer/internal/model"
	"github.com/edupress/courseplayer/internal/upstream"
)

// SnapshotCache is the read-through store for upstream snapshots. Implemented
// by cache.Snapshots; faked in tests.
type SnapshotCache interface {
	GetContent(ctx context.Context, enrollmentID string) (*model.EnrollmentContent, error)
	PutContent(ctx context.Context, content *model.EnrollmentContent) error
	DropContent(ctx context.Context, enrollmentID string) error
	GetQuiz(ctx context.Context, enrollmentID, quizID string) (*model.Quiz, error)
	PutQuiz(ctx context.Context, enrollmentID string, quiz *model.Quiz) error
}

// PlayerService serves the course-player surface: enrollment content with
// the computed outline, lesson navigation, and lesson marking.
type PlayerService struct {
	api   *upstream.Client
	snaps SnapshotCache
	log   zerolog.Logger
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(api *upstream.Client, snaps SnapshotCache, log zerolog.Logger) *PlayerService {
	return &PlayerService{api: api, snaps: snaps, log: log}
}

// LessonView is a lesson enriched with its outline position and unlock state.
type LessonView struct {
	model.Lesson
	Position int  `json:"position"`
	Unlocked bool `json:"unlocked"`
}

// SectionView is an ordered section with enriched lessons.
type SectionView struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	OrderIndex int          `json:"orderIndex"`
	Lessons    []LessonView `json:"lessons"`
	Quizzes    []model.Quiz `json:"quizzes,omitempty"`
}

// ContentView is the player payload: the raw snapshot plus the ordered
// outline and the completed-lesson boundary derived from it.
type ContentView struct {
	Course            model.Course     `json:"course"`
	Enrollment        model.Enrollment `json:"enrollment"`
	Outline           []SectionView    `json:"outline"`
	CompletedBoundary int              `json:"completedBoundary"`
}

// Content returns the enrollment content through the snapshot cache and
// computes the outline-derived view on top of it. The computation is pure
// and redone on every call from whichever snapshot is current.
func (s *PlayerService) Content(ctx context.Context, token, enrollmentID string) (*ContentView, error) {
	snapshot, err := s.fetchContent(ctx, token, enrollmentID)
	if err != nil {
		return nil, err
	}

	outline := content.NewOutline(&snapshot.Course)
	boundary := outline.CompletedBoundary(snapshot.Enrollment.LessonProgresses)

	view := &ContentView{
		Course:            snapshot.Course,
		Enrollment:        snapshot.Enrollment,
		CompletedBoundary: boundary,
	}
	for _, sec := range outline.Sections() {
		sv := SectionView{
			ID:         sec.ID,
			Title:      sec.Title,
			OrderIndex: sec.OrderIndex,
			Quizzes:    sec.Quizzes,
		}
		for _, l := range sec.Lessons {
			pos, _ := outline.Position(l.ID)
			sv.Lessons = append(sv.Lessons, LessonView{
				Lesson:   l,
				Position: pos,
				Unlocked: content.IsUnlocked(pos, boundary),
			})
		}
		view.Outline = append(view.Outline, sv)
	}
	return view, nil
}

// NavigationView carries the resolved neighbors of a lesson. Nil means no
// neighbor in that direction.
type NavigationView struct {
	LessonID string  `json:"lessonId"`
	Prev     *string `json:"prev"`
	Next     *string `json:"next"`
}

// Navigation resolves previous/next lesson ids for a lesson, either over the
// canonical course outline or, when byProgress is set, over the enrollment's
// lessonProgresses ordering.
func (s *PlayerService) Navigation(ctx context.Context, token, enrollmentID, lessonID string, byProgress bool) (*NavigationView, error) {
	snapshot, err := s.fetchContent(ctx, token, enrollmentID)
	if err != nil {
		return nil, err
	}

	var prev, next string
	if byProgress {
		prev, next = content.ProgressNeighbors(snapshot.Enrollment.LessonProgresses, lessonID)
	} else {
		prev, next = content.NewOutline(&snapshot.Course).Neighbors(lessonID)
	}

	return &NavigationView{LessonID: lessonID, Prev: optional(prev), Next: optional(next)}, nil
}

// MarkLesson marks a lesson and invalidates the snapshot so the next read
// refetches the authoritative state.
func (s *PlayerService) MarkLesson(ctx context.Context, token, enrollmentID string, req *model.MarkLessonRequest) (*model.Enrollment, error) {
	enrollment, err := s.api.MarkLesson(ctx, token, enrollmentID, req)
	if err != nil {
		return nil, err
	}
	if err := s.snaps.DropContent(ctx, enrollmentID); err != nil {
		s.log.Warn().Err(err).Str("enrollment_id", enrollmentID).Msg("Snapshot invalidation failed")
	}
	return enrollment, nil
}

// fetchContent is the read-through path: cached snapshot if present,
// otherwise upstream fetch followed by a wholesale cache replace. Cache
// errors degrade to upstream fetches rather than failing the request.
func (s *PlayerService) fetchContent(ctx context.Context, token, enrollmentID string) (*model.EnrollmentContent, error) {
	cached, err := s.snaps.GetContent(ctx, enrollmentID)
	if err != nil {
		s.log.Warn().Err(err).Str("enrollment_id", enrollmentID).Msg("Snapshot read failed")
	}
	if cached != nil {
		return cached, nil
	}

	fetched, err := s.api.EnrollmentContent(ctx, token, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("fetch enrollment content: %w", err)
	}
	if err := s.snaps.PutContent(ctx, fetched); err != nil {
		s.log.Warn().Err(err).Str("enrollment_id", enrollmentID).Msg("Snapshot write failed")
	}
	return fetched, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
