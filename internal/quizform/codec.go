package quizform

import (
	"fmt"

	"github.com/edupress/courseplayer/internal/model"
)

// ValidationError is a field-scoped pre-submission failure. It blocks the
// submission locally; nothing is sent upstream.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %s: %s", e.QuestionID, e.Reason)
}

// EncodeMultipleChoice turns a parallel selection vector over the question's
// options into a MULTIPLE_CHOICE answer, emitting the ids of checked options
// in option order and omitting unchecked ones.
func EncodeMultipleChoice(q model.Question, checked []bool) (Answer, error) {
	if q.Type != model.QuestionTypeMultipleChoice {
		return Answer{}, &ValidationError{QuestionID: q.ID, Reason: "not a multiple-choice question"}
	}
	if len(checked) != len(q.Options) {
		return Answer{}, &ValidationError{
			QuestionID: q.ID,
			Reason:     fmt.Sprintf("selection vector has %d entries for %d options", len(checked), len(q.Options)),
		}
	}
	var ids []string
	for i, on := range checked {
		if on {
			ids = append(ids, q.Options[i].ID)
		}
	}
	return MultipleChoice(q.ID, ids), nil
}

// DecodeMultipleChoice reconstructs the selection vector of a stored
// MULTIPLE_CHOICE answer by testing each option id's membership in the
// answer's id list.
func DecodeMultipleChoice(q model.Question, a Answer) []bool {
	selected := make(map[string]bool, len(a.optionIDs))
	for _, id := range a.optionIDs {
		selected[id] = true
	}
	checked := make([]bool, len(q.Options))
	for i, opt := range q.Options {
		checked[i] = selected[opt.ID]
	}
	return checked
}

// ValidateSubmission checks a complete answer set against the quiz schema
// before it is sent: every question must receive exactly one answer of the
// matching type, and MULTIPLE_CHOICE option ids must belong to the question.
func ValidateSubmission(quiz *model.Quiz, answers []Answer) error {
	byQuestion := make(map[string]*Answer, len(answers))
	for i := range answers {
		a := &answers[i]
		if _, dup := byQuestion[a.questionID]; dup {
			return &ValidationError{QuestionID: a.questionID, Reason: "answered more than once"}
		}
		byQuestion[a.questionID] = a
	}

	for _, q := range quiz.Questions {
		a, ok := byQuestion[q.ID]
		if !ok {
			return &ValidationError{QuestionID: q.ID, Reason: "no answer given"}
		}
		delete(byQuestion, q.ID)

		if a.kind != q.Type {
			return &ValidationError{
				QuestionID: q.ID,
				Reason:     fmt.Sprintf("answer type %s does not match question type %s", a.kind, q.Type),
			}
		}

		switch q.Type {
		case model.QuestionTypeMultipleChoice:
			valid := make(map[string]bool, len(q.Options))
			for _, opt := range q.Options {
				valid[opt.ID] = true
			}
			for _, id := range a.optionIDs {
				if !valid[id] {
					return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("option %s does not belong to this question", id)}
				}
			}
		case model.QuestionTypeSingleChoice:
			found := false
			for _, opt := range q.Options {
				if opt.ID == a.optionID {
					found = true
					break
				}
			}
			if !found {
				return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("option %s does not belong to this question", a.optionID)}
			}
		}
	}

	for id := range byQuestion {
		return &ValidationError{QuestionID: id, Reason: "question is not part of this quiz"}
	}
	return nil
}
