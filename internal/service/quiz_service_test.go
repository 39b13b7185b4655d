package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/edupress/courseplayer/internal/model"
	"github.com/edupress/courseplayer/internal/quizform"
)

func quizFixture() model.Quiz {
	return model.Quiz{
		ID:                  "qz1",
		AfterLessonID:       "l1",
		PassScorePercentage: 70,
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionTypeMultipleChoice, Options: []model.AnswerOption{
				{ID: "o1"}, {ID: "o2"}, {ID: "o3"},
			}},
			{ID: "q2", Type: model.QuestionTypeSingleChoice, Options: []model.AnswerOption{
				{ID: "a"}, {ID: "b"},
			}},
			{ID: "q3", Type: model.QuestionTypeTrueFalse},
		},
	}
}

func TestQuizViewBlankState(t *testing.T) {
	api := upstreamClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(quizFixture())
	}))
	svc := NewQuizService(api, newMemCache(), zerolog.Nop())

	view, err := svc.Quiz(context.Background(), "tok", "e1", "qz1")
	if err != nil {
		t.Fatalf("Quiz: %v", err)
	}
	if len(view.Questions) != 3 {
		t.Fatalf("questions = %d", len(view.Questions))
	}
	mc := view.Questions[0]
	if len(mc.Checked) != 3 || mc.Checked[0] || mc.Checked[1] || mc.Checked[2] {
		t.Fatalf("blank MC state = %v", mc.Checked)
	}
	if view.Questions[1].Checked != nil || view.Questions[2].Checked != nil {
		t.Fatal("non-MC questions must not carry a selection vector")
	}
}

func TestSubmitEncodesAndInvalidates(t *testing.T) {
	var submitted map[string]interface{}
	api := upstreamClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/enrollments/e1/submit-quiz" {
			json.NewDecoder(r.Body).Decode(&submitted)
			json.NewEncoder(w).Encode(map[string]string{"id": "sub-1"})
			return
		}
		json.NewEncoder(w).Encode(quizFixture())
	}))
	snaps := newMemCache()
	fixture := playerFixture()
	snaps.PutContent(context.Background(), &fixture)
	svc := NewQuizService(api, snaps, zerolog.Nop())

	truthy := true
	id, err := svc.Submit(context.Background(), "tok", "e1", "qz1", &SubmitRequest{
		Answers: []AnswerInput{
			{QuestionID: "q1", Type: "MULTIPLE_CHOICE", Checked: []bool{true, false, true}},
			{QuestionID: "q2", Type: "SINGLE_CHOICE", OptionID: "b"},
			{QuestionID: "q3", Type: "TRUE_FALSE", Value: &truthy},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if id != "sub-1" {
		t.Fatalf("submission id = %q", id)
	}
	if snaps.drops != 1 {
		t.Fatalf("snapshot drops = %d, want 1", snaps.drops)
	}

	answers, ok := submitted["answers"].([]interface{})
	if !ok || len(answers) != 3 {
		t.Fatalf("wire answers = %v", submitted["answers"])
	}
	first := answers[0].(map[string]interface{})
	ids, _ := first["selectedOptionIds"].([]interface{})
	if len(ids) != 2 || ids[0] != "o1" || ids[1] != "o3" {
		t.Fatalf("MC wire answer = %v", first)
	}
	if _, present := first["value"]; present {
		t.Fatalf("MC wire answer carries TRUE_FALSE field: %v", first)
	}
}

func TestSubmitValidationBlocksNetwork(t *testing.T) {
	submitCalls := 0
	api := upstreamClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/enrollments/e1/submit-quiz" {
			submitCalls++
			json.NewEncoder(w).Encode(map[string]string{"id": "sub-1"})
			return
		}
		json.NewEncoder(w).Encode(quizFixture())
	}))
	svc := NewQuizService(api, newMemCache(), zerolog.Nop())

	// Missing answer for q3.
	_, err := svc.Submit(context.Background(), "tok", "e1", "qz1", &SubmitRequest{
		Answers: []AnswerInput{
			{QuestionID: "q1", Type: "MULTIPLE_CHOICE", Checked: []bool{true, false, false}},
			{QuestionID: "q2", Type: "SINGLE_CHOICE", OptionID: "a"},
		},
	})
	var ve *quizform.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if submitCalls != 0 {
		t.Fatalf("submit reached upstream %d times despite local validation failure", submitCalls)
	}
}

func TestSubmitRejectsMissingTrueFalseValue(t *testing.T) {
	submitCalls := 0
	api := upstreamClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/enrollments/e1/submit-quiz" {
			submitCalls++
			json.NewEncoder(w).Encode(map[string]string{"id": "sub-1"})
			return
		}
		json.NewEncoder(w).Encode(quizFixture())
	}))
	svc := NewQuizService(api, newMemCache(), zerolog.Nop())

	// q3 declares TRUE_FALSE but omits the value entirely.
	_, err := svc.Submit(context.Background(), "tok", "e1", "qz1", &SubmitRequest{
		Answers: []AnswerInput{
			{QuestionID: "q1", Type: "MULTIPLE_CHOICE", Checked: []bool{false, false, false}},
			{QuestionID: "q2", Type: "SINGLE_CHOICE", OptionID: "a"},
			{QuestionID: "q3", Type: "TRUE_FALSE"},
		},
	})
	var ve *quizform.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.QuestionID != "q3" {
		t.Fatalf("ValidationError for %q, want q3", ve.QuestionID)
	}
	if submitCalls != 0 {
		t.Fatalf("submit reached upstream %d times despite missing value", submitCalls)
	}
}

func TestSubmissionDecodesSelections(t *testing.T) {
	stored := model.QuizSubmission{
		ID:     "sub-1",
		QuizID: "qz1",
		Score:  80,
		Passed: true,
		Answers: []json.RawMessage{
			json.RawMessage(`{"questionId":"q1","type":"MULTIPLE_CHOICE","selectedOptionIds":["o2"]}`),
			json.RawMessage(`{"questionId":"q2","type":"SINGLE_CHOICE","selectedOptionId":"a"}`),
			json.RawMessage(`{"questionId":"q3","type":"TRUE_FALSE","value":false}`),
		},
	}
	api := upstreamClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/enrollments/e1/quizzes/sub-1/submission" {
			json.NewEncoder(w).Encode(stored)
			return
		}
		json.NewEncoder(w).Encode(quizFixture())
	}))
	svc := NewQuizService(api, newMemCache(), zerolog.Nop())

	view, err := svc.Submission(context.Background(), "tok", "e1", "sub-1")
	if err != nil {
		t.Fatalf("Submission: %v", err)
	}
	if view.Score != 80 || !view.Passed {
		t.Fatalf("display fields = %+v", view.QuizSubmission)
	}
	if len(view.Selections) != 3 {
		t.Fatalf("selections = %+v", view.Selections)
	}
	mc := view.Selections[0]
	if len(mc.Checked) != 3 || mc.Checked[0] || !mc.Checked[1] || mc.Checked[2] {
		t.Fatalf("decoded MC vector = %v", mc.Checked)
	}
	if view.Selections[1].OptionID != "a" {
		t.Fatalf("decoded single choice = %+v", view.Selections[1])
	}
	if view.Selections[2].Value == nil || *view.Selections[2].Value {
		t.Fatalf("decoded true/false = %+v", view.Selections[2])
	}
}
