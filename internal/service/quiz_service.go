package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edupress/courseplayer/internal/model"
	"github.com/edupress/courseplayer/internal/quizform"
	"github.com/edupress/courseplayer/internal/upstream"
)

// QuizService serves quiz rendering, submission and submission review.
type QuizService struct {
	api   *upstream.Client
	snaps SnapshotCache
	log   zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(api *upstream.Client, snaps SnapshotCache, log zerolog.Logger) *QuizService {
	return &QuizService{api: api, snaps: snaps, log: log}
}

// QuestionView is a question plus its blank selection state, ready for the
// player to render.
type QuestionView struct {
	model.Question
	// Checked is the parallel selection vector for MULTIPLE_CHOICE
	// questions, all false initially; nil for other types.
	Checked []bool `json:"checked,omitempty"`
}

// QuizView is the rendering payload for a quiz.
type QuizView struct {
	ID                  string         `json:"id"`
	Title               string         `json:"title,omitempty"`
	AfterLessonID       string         `json:"afterLessonId"`
	PassScorePercentage int            `json:"passScorePercentage"`
	Questions           []QuestionView `json:"questions"`
}

// Quiz returns a quiz's schema with blank selection state, through the
// snapshot cache.
func (s *QuizService) Quiz(ctx context.Context, token, enrollmentID, quizID string) (*QuizView, error) {
	quiz, err := s.fetchQuiz(ctx, token, enrollmentID, quizID)
	if err != nil {
		return nil, err
	}

	view := &QuizView{
		ID:                  quiz.ID,
		Title:               quiz.Title,
		AfterLessonID:       quiz.AfterLessonID,
		PassScorePercentage: quiz.PassScorePercentage,
	}
	for _, q := range quiz.Questions {
		qv := QuestionView{Question: q}
		if q.Type == model.QuestionTypeMultipleChoice {
			qv.Checked = make([]bool, len(q.Options))
		}
		view.Questions = append(view.Questions, qv)
	}
	return view, nil
}

// AnswerInput is one question's selection state as sent by the player UI.
// Exactly the field matching the declared type must be set.
type AnswerInput struct {
	QuestionID string `json:"questionId" binding:"required"`
	Type       string `json:"type" binding:"required,oneof=SINGLE_CHOICE MULTIPLE_CHOICE TRUE_FALSE"`
	// Checked is the parallel option vector for MULTIPLE_CHOICE.
	Checked []bool `json:"checked,omitempty"`
	// OptionID is the selected option for SINGLE_CHOICE.
	OptionID string `json:"optionId,omitempty"`
	// Value is the TRUE_FALSE answer.
	Value *bool `json:"value,omitempty"`
}

// SubmitRequest is the gateway-side submission payload.
type SubmitRequest struct {
	Answers []AnswerInput `json:"answers" binding:"required,dive"`
}

// Submit validates and encodes a submission against the quiz schema, posts
// it upstream and invalidates the enrollment snapshot. Validation failures
// are resolved locally; nothing reaches the network.
func (s *QuizService) Submit(ctx context.Context, token, enrollmentID, quizID string, req *SubmitRequest) (string, error) {
	quiz, err := s.fetchQuiz(ctx, token, enrollmentID, quizID)
	if err != nil {
		return "", err
	}

	questions := make(map[string]model.Question, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions[q.ID] = q
	}

	answers := make([]quizform.Answer, 0, len(req.Answers))
	for _, in := range req.Answers {
		answer, err := encodeInput(questions, in)
		if err != nil {
			return "", err
		}
		answers = append(answers, answer)
	}

	if err := quizform.ValidateSubmission(quiz, answers); err != nil {
		return "", err
	}

	wire := &upstream.SubmitQuizRequest{QuizID: quiz.ID}
	for _, a := range answers {
		data, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("encode answer: %w", err)
		}
		wire.Answers = append(wire.Answers, data)
	}

	submissionID, err := s.api.SubmitQuiz(ctx, token, enrollmentID, wire)
	if err != nil {
		return "", err
	}

	if err := s.snaps.DropContent(ctx, enrollmentID); err != nil {
		s.log.Warn().Err(err).Str("enrollment_id", enrollmentID).Msg("Snapshot invalidation failed")
	}
	return submissionID, nil
}

// SubmissionView is a stored submission decoded back into selection state
// for review rendering. Score, passed and bonus are upstream-computed and
// display-only.
type SubmissionView struct {
	model.QuizSubmission
	Selections []QuestionSelection `json:"selections"`
}

// QuestionSelection is one question's decoded answer state.
type QuestionSelection struct {
	QuestionID string             `json:"questionId"`
	Type       model.QuestionType `json:"type"`
	Checked    []bool             `json:"checked,omitempty"`
	OptionID   string             `json:"optionId,omitempty"`
	Value      *bool              `json:"value,omitempty"`
}

// Submission fetches a stored submission and decodes its answers against the
// quiz schema.
func (s *QuizService) Submission(ctx context.Context, token, enrollmentID, submissionID string) (*SubmissionView, error) {
	sub, err := s.api.Submission(ctx, token, enrollmentID, submissionID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.fetchQuiz(ctx, token, enrollmentID, sub.QuizID)
	if err != nil {
		return nil, err
	}
	questions := make(map[string]model.Question, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions[q.ID] = q
	}

	view := &SubmissionView{QuizSubmission: *sub}
	for _, raw := range sub.Answers {
		var answer quizform.Answer
		if err := json.Unmarshal(raw, &answer); err != nil {
			return nil, fmt.Errorf("decode stored answer: %w", err)
		}

		sel := QuestionSelection{QuestionID: answer.QuestionID(), Type: answer.Type()}
		switch answer.Type() {
		case model.QuestionTypeMultipleChoice:
			sel.Checked = quizform.DecodeMultipleChoice(questions[answer.QuestionID()], answer)
		case model.QuestionTypeSingleChoice:
			sel.OptionID = answer.OptionID()
		case model.QuestionTypeTrueFalse:
			v := answer.BoolValue()
			sel.Value = &v
		}
		view.Selections = append(view.Selections, sel)
	}
	return view, nil
}

// encodeInput converts UI selection state into a tagged answer. Unknown
// questions are passed through to ValidateSubmission for a uniform error.
func encodeInput(questions map[string]model.Question, in AnswerInput) (quizform.Answer, error) {
	switch model.QuestionType(in.Type) {
	case model.QuestionTypeMultipleChoice:
		q, ok := questions[in.QuestionID]
		if !ok {
			return quizform.MultipleChoice(in.QuestionID, nil), nil
		}
		return quizform.EncodeMultipleChoice(q, in.Checked)
	case model.QuestionTypeSingleChoice:
		return quizform.SingleChoice(in.QuestionID, in.OptionID), nil
	default:
		if in.Value == nil {
			return quizform.Answer{}, &quizform.ValidationError{QuestionID: in.QuestionID, Reason: "no true/false value given"}
		}
		return quizform.TrueFalse(in.QuestionID, *in.Value), nil
	}
}

func (s *QuizService) fetchQuiz(ctx context.Context, token, enrollmentID, quizID string) (*model.Quiz, error) {
	cached, err := s.snaps.GetQuiz(ctx, enrollmentID, quizID)
	if err != nil {
		s.log.Warn().Err(err).Str("quiz_id", quizID).Msg("Quiz cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	quiz, err := s.api.Quiz(ctx, token, enrollmentID, quizID)
	if err != nil {
		return nil, fmt.Errorf("fetch quiz: %w", err)
	}
	if err := s.snaps.PutQuiz(ctx, enrollmentID, quiz); err != nil {
		s.log.Warn().Err(err).Str("quiz_id", quizID).Msg("Quiz cache write failed")
	}
	return quiz, nil
}
