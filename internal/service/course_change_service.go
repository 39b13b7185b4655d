package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edupress/courseplayer/internal/coursechange"
	"github.com/edupress/courseplayer/internal/upstream"
)

// CourseChangeService performs course swaps and reconciles the backend's
// pricing decision into a follow-up step.
type CourseChangeService struct {
	api   *upstream.Client
	snaps SnapshotCache
	log   zerolog.Logger
}

// NewCourseChangeService creates a new CourseChangeService.
func NewCourseChangeService(api *upstream.Client, snaps SnapshotCache, log zerolog.Logger) *CourseChangeService {
	return &CourseChangeService{api: api, snaps: snaps, log: log}
}

// Change requests the swap upstream and reconciles the response. The cached
// snapshot is dropped only on an accepted outcome; on rejection the original
// enrollment stays authoritative and untouched.
func (s *CourseChangeService) Change(ctx context.Context, token, enrollmentID, courseID string) (*coursechange.Outcome, error) {
	resp, err := s.api.ChangeCourse(ctx, token, enrollmentID, courseID)
	if err != nil {
		return nil, err
	}

	outcome, err := coursechange.Reconcile(resp)
	if err != nil {
		return nil, err
	}

	if err := s.snaps.DropContent(ctx, enrollmentID); err != nil {
		s.log.Warn().Err(err).Str("enrollment_id", enrollmentID).Msg("Snapshot invalidation failed")
	}

	s.log.Info().
		Str("enrollment_id", enrollmentID).
		Str("course_id", courseID).
		Str("step", string(outcome.Step)).
		Msg("Course change accepted")

	return outcome, nil
}
