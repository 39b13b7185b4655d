package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/edupress/courseplayer/internal/config"
	"github.com/edupress/courseplayer/internal/model"
	"github.com/edupress/courseplayer/internal/upstream"
)

// memCache is an in-memory SnapshotCache for tests.
type memCache struct {
	contents map[string]*model.EnrollmentContent
	quizzes  map[string]*model.Quiz
	drops    int
}

func newMemCache() *memCache {
	return &memCache{
		contents: make(map[string]*model.EnrollmentContent),
		quizzes:  make(map[string]*model.Quiz),
	}
}

func (m *memCache) GetContent(_ context.Context, id string) (*model.EnrollmentContent, error) {
	return m.contents[id], nil
}

func (m *memCache) PutContent(_ context.Context, c *model.EnrollmentContent) error {
	m.contents[c.Enrollment.ID] = c
	return nil
}

func (m *memCache) DropContent(_ context.Context, id string) error {
	delete(m.contents, id)
	m.drops++
	return nil
}

func (m *memCache) GetQuiz(_ context.Context, enrollmentID, quizID string) (*model.Quiz, error) {
	return m.quizzes[enrollmentID+"/"+quizID], nil
}

func (m *memCache) PutQuiz(_ context.Context, enrollmentID string, q *model.Quiz) error {
	m.quizzes[enrollmentID+"/"+q.ID] = q
	return nil
}

func upstreamClient(t *testing.T, handler http.Handler) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return upstream.New(&config.Config{
		UpstreamBaseURL: srv.URL,
		UpstreamTimeout: 5 * time.Second,
	}, zerolog.Nop())
}

func playerFixture() model.EnrollmentContent {
	return model.EnrollmentContent{
		Course: model.Course{
			ID: "c1",
			Sections: []model.Section{
				{ID: "s1", OrderIndex: 0, Lessons: []model.Lesson{
					{ID: "l1", OrderIndex: 0},
					{ID: "l2", OrderIndex: 1},
				}},
				{ID: "s2", OrderIndex: 1, Lessons: []model.Lesson{
					{ID: "l3", OrderIndex: 0},
				}},
			},
		},
		Enrollment: model.Enrollment{
			ID:       "e1",
			CourseID: "c1",
			LessonProgresses: []model.LessonProgress{
				{LessonID: "l1", Completed: true},
				{LessonID: "l2"},
				{LessonID: "l3"},
			},
		},
	}
}

func TestContentReadThrough(t *testing.T) {
	var fetches int64
	api := upstreamClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&fetches, 1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(playerFixture())
	}))
	snaps := newMemCache()
	svc := NewPlayerService(api, snaps, zerolog.Nop())

	ctx := context.Background()
	view, err := svc.Content(ctx, "tok", "e1")
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	if _, err := svc.Content(ctx, "tok", "e1"); err != nil {
		t.Fatalf("Content (cached): %v", err)
	}
	if fetches != 1 {
		t.Fatalf("upstream fetches = %d, want 1 (second read served from cache)", fetches)
	}

	// l1 done; boundary is l2 at position 1; l3 at position 2 stays locked.
	if view.CompletedBoundary != 1 {
		t.Fatalf("boundary = %d, want 1", view.CompletedBoundary)
	}
	var byID = map[string]LessonView{}
	for _, sec := range view.Outline {
		for _, l := range sec.Lessons {
			byID[l.ID] = l
		}
	}
	if !byID["l1"].Unlocked || !byID["l2"].Unlocked || byID["l3"].Unlocked {
		t.Fatalf("unlock flags: %+v", byID)
	}
}

func TestNavigationCanonicalAndProgress(t *testing.T) {
	fixture := playerFixture()
	// A personalized ordering that differs from the canonical outline.
	fixture.Enrollment.LessonProgresses = []model.LessonProgress{
		{LessonID: "l3"}, {LessonID: "l1"}, {LessonID: "l2"},
	}
	api := upstreamClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(fixture)
	}))
	svc := NewPlayerService(api, newMemCache(), zerolog.Nop())
	ctx := context.Background()

	nav, err := svc.Navigation(ctx, "tok", "e1", "l2", false)
	if err != nil {
		t.Fatalf("Navigation: %v", err)
	}
	if nav.Prev == nil || *nav.Prev != "l1" || nav.Next == nil || *nav.Next != "l3" {
		t.Fatalf("canonical nav = %+v", nav)
	}

	last, err := svc.Navigation(ctx, "tok", "e1", "l3", false)
	if err != nil {
		t.Fatalf("Navigation: %v", err)
	}
	if last.Next != nil {
		t.Fatalf("next of last lesson = %v, want nil", *last.Next)
	}

	prog, err := svc.Navigation(ctx, "tok", "e1", "l1", true)
	if err != nil {
		t.Fatalf("Navigation by progress: %v", err)
	}
	if prog.Prev == nil || *prog.Prev != "l3" || prog.Next == nil || *prog.Next != "l2" {
		t.Fatalf("progress nav = %+v", prog)
	}
}

func TestMarkLessonInvalidatesSnapshot(t *testing.T) {
	api := upstreamClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.Enrollment{ID: "e1"})
	}))
	snaps := newMemCache()
	fixture := playerFixture()
	snaps.PutContent(context.Background(), &fixture)

	svc := NewPlayerService(api, snaps, zerolog.Nop())
	_, err := svc.MarkLesson(context.Background(), "tok", "e1", &model.MarkLessonRequest{
		Mark:     model.LessonMarkCompleted,
		CourseID: "c1",
		LessonID: "l2",
	})
	if err != nil {
		t.Fatalf("MarkLesson: %v", err)
	}
	if snaps.drops != 1 {
		t.Fatalf("snapshot drops = %d, want 1", snaps.drops)
	}
	if got, _ := snaps.GetContent(context.Background(), "e1"); got != nil {
		t.Fatal("snapshot still cached after mark")
	}
}
