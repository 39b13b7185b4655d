// Package quizform translates between a quiz's question schema and the flat
// answer payload of the submission endpoint, per question type, in both
// directions. Answers are a tagged union: each variant carries exactly the
// fields valid for its question type, enforced by the constructors.
package quizform

import (
	"encoding/json"
	"fmt"

	"github.com/edupress/courseplayer/internal/model"
)

// Answer is one question's answer in a submission. Construct via
// MultipleChoice, SingleChoice or TrueFalse; the zero value is invalid.
type Answer struct {
	questionID string
	kind       model.QuestionType
	optionIDs  []string // MULTIPLE_CHOICE only
	optionID   string   // SINGLE_CHOICE only
	boolValue  bool     // TRUE_FALSE only
}

// MultipleChoice builds a MULTIPLE_CHOICE answer from the selected option
// ids, preserving the given order.
func MultipleChoice(questionID string, optionIDs []string) Answer {
	ids := make([]string, len(optionIDs))
	copy(ids, optionIDs)
	return Answer{questionID: questionID, kind: model.QuestionTypeMultipleChoice, optionIDs: ids}
}

// SingleChoice builds a SINGLE_CHOICE answer for one selected option.
func SingleChoice(questionID, optionID string) Answer {
	return Answer{questionID: questionID, kind: model.QuestionTypeSingleChoice, optionID: optionID}
}

// TrueFalse builds a TRUE_FALSE answer.
func TrueFalse(questionID string, value bool) Answer {
	return Answer{questionID: questionID, kind: model.QuestionTypeTrueFalse, boolValue: value}
}

// QuestionID returns the id of the question this answer belongs to.
func (a Answer) QuestionID() string { return a.questionID }

// Type returns the question type tag of this answer.
func (a Answer) Type() model.QuestionType { return a.kind }

// OptionIDs returns the selected option ids of a MULTIPLE_CHOICE answer.
func (a Answer) OptionIDs() []string { return a.optionIDs }

// OptionID returns the selected option id of a SINGLE_CHOICE answer.
func (a Answer) OptionID() string { return a.optionID }

// BoolValue returns the value of a TRUE_FALSE answer.
func (a Answer) BoolValue() bool { return a.boolValue }

// wireAnswer is the flat JSON shape of the submission endpoint. Only the
// field valid for the type is present; absent never means empty-collection.
type wireAnswer struct {
	QuestionID        string             `json:"questionId"`
	Type              model.QuestionType `json:"type"`
	SelectedOptionIDs *[]string          `json:"selectedOptionIds,omitempty"`
	SelectedOptionID  string             `json:"selectedOptionId,omitempty"`
	Value             *bool              `json:"value,omitempty"`
}

// MarshalJSON emits the wire shape carrying exactly the fields valid for the
// answer's type.
func (a Answer) MarshalJSON() ([]byte, error) {
	w := wireAnswer{QuestionID: a.questionID, Type: a.kind}
	switch a.kind {
	case model.QuestionTypeMultipleChoice:
		// Pointer keeps the field present (possibly []) for MULTIPLE_CHOICE
		// and absent for every other type.
		ids := a.optionIDs
		if ids == nil {
			ids = []string{}
		}
		w.SelectedOptionIDs = &ids
	case model.QuestionTypeSingleChoice:
		w.SelectedOptionID = a.optionID
	case model.QuestionTypeTrueFalse:
		v := a.boolValue
		w.Value = &v
	default:
		return nil, fmt.Errorf("quizform: answer for %q has unknown type %q", a.questionID, a.kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses a stored wire answer back into the tagged union.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var w wireAnswer
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case model.QuestionTypeMultipleChoice:
		var ids []string
		if w.SelectedOptionIDs != nil {
			ids = *w.SelectedOptionIDs
		}
		*a = MultipleChoice(w.QuestionID, ids)
	case model.QuestionTypeSingleChoice:
		*a = SingleChoice(w.QuestionID, w.SelectedOptionID)
	case model.QuestionTypeTrueFalse:
		value := false
		if w.Value != nil {
			value = *w.Value
		}
		*a = TrueFalse(w.QuestionID, value)
	default:
		return fmt.Errorf("quizform: answer for %q has unknown type %q", w.QuestionID, w.Type)
	}
	return nil
}
