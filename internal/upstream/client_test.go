package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/edupress/courseplayer/internal/config"
	"github.com/edupress/courseplayer/internal/model"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.Config{
		UpstreamBaseURL: srv.URL,
		UpstreamTimeout: 5 * time.Second,
	}
	return New(cfg, zerolog.Nop())
}

func TestEnrollmentContent(t *testing.T) {
	var gotPath, gotAuth string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.EnrollmentContent{
			Course:     model.Course{ID: "c1"},
			Enrollment: model.Enrollment{ID: "e1", CourseID: "c1"},
		})
	}))

	content, err := client.EnrollmentContent(context.Background(), "tok-123", "e1")
	if err != nil {
		t.Fatalf("EnrollmentContent: %v", err)
	}
	if gotPath != "/enrollments/e1/content" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if content.Course.ID != "c1" || content.Enrollment.ID != "e1" {
		t.Fatalf("content = %+v", content)
	}
}

func TestMarkLessonWirePayload(t *testing.T) {
	var body map[string]interface{}
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/enrollments/e1/mark-lesson" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.Enrollment{ID: "e1"})
	}))

	_, err := client.MarkLesson(context.Background(), "tok", "e1", &model.MarkLessonRequest{
		Mark:     model.LessonMarkCompleted,
		CourseID: "c1",
		LessonID: "l1",
	})
	if err != nil {
		t.Fatalf("MarkLesson: %v", err)
	}
	if body["mark"] != "COMPLETED" || body["courseId"] != "c1" || body["lessonId"] != "l1" {
		t.Fatalf("wire body = %v", body)
	}
}

func TestChangeCourseQueryParam(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("courseId") != "c2" {
			t.Errorf("courseId query = %q", r.URL.Query().Get("courseId"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.ChangeCourseResponse{
			Type:   model.ChangeCourseBasic,
			Status: model.ChangeCourseSuccess,
		})
	}))

	change, err := client.ChangeCourse(context.Background(), "tok", "e1", "c2")
	if err != nil {
		t.Fatalf("ChangeCourse: %v", err)
	}
	if change.Type != model.ChangeCourseBasic || change.Status != model.ChangeCourseSuccess {
		t.Fatalf("change = %+v", change)
	}
}

func TestErrorMapping(t *testing.T) {
	status := http.StatusUnauthorized
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"message": "nope"})
	}))

	_, err := client.Quiz(context.Background(), "tok", "e1", "qz1")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("401 mapped to %v", err)
	}

	status = http.StatusNotFound
	_, err = client.Discount(context.Background(), "tok", "SAVE10", "VND100.00")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("404 mapped to %v", err)
	}

	status = http.StatusBadGateway
	_, err = client.Submission(context.Background(), "tok", "e1", "s1")
	var ue *Error
	if !errors.As(err, &ue) || ue.Status != http.StatusBadGateway || ue.Message != "nope" {
		t.Fatalf("502 mapped to %v", err)
	}
}

func TestContextCancellationAbortsFetch(t *testing.T) {
	started := make(chan struct{})
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.EnrollmentContent(ctx, "tok", "e1")
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
}
