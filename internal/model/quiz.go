package model

// QuestionType enumerates the supported question kinds.
type QuestionType string

const (
	QuestionTypeSingleChoice   QuestionType = "SINGLE_CHOICE"
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      QuestionType = "TRUE_FALSE"
)

// Quiz is a graded question set anchored to a lesson. The detail endpoint
// returns it without correct-answer markers; scoring happens upstream.
type Quiz struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title,omitempty"`
	AfterLessonID       string     `json:"afterLessonId"`
	PassScorePercentage int        `json:"passScorePercentage"`
	Questions           []Question `json:"questions"`
}

// Question is a single quiz question. Options is populated for choice
// types and empty for TRUE_FALSE.
type Question struct {
	ID      string         `json:"id"`
	Content string         `json:"content"`
	Type    QuestionType   `json:"type"`
	Options []AnswerOption `json:"options,omitempty"`
	Score   int            `json:"score"`
}

// AnswerOption is one selectable choice of a question.
type AnswerOption struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}
