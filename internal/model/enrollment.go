package model

import (
	"encoding/json"
	"time"
)

// LessonMark enumerates the mark-lesson actions.
type LessonMark string

const (
	LessonMarkCompleted  LessonMark = "COMPLETED"
	LessonMarkIncomplete LessonMark = "INCOMPLETE"
)

// Enrollment is a student's registration in a course, including their
// per-lesson and per-quiz progress. Owned by the upstream backend; this
// service only holds cached snapshots replaced wholesale on fetch.
type Enrollment struct {
	ID               string           `json:"id"`
	StudentID        string           `json:"studentId"`
	CourseID         string           `json:"courseId"`
	LessonProgresses []LessonProgress `json:"lessonProgresses"`
	QuizSubmissions  []QuizSubmission `json:"quizSubmissions,omitempty"`
	Progress         Progress         `json:"progress"`
}

// LessonProgress is the per-lesson completion state for one enrollment.
type LessonProgress struct {
	LessonID      string `json:"lessonId"`
	Completed     bool   `json:"completed"`
	InProgress    bool   `json:"inProgress"`
	BonusEligible bool   `json:"bonusEligible"`
}

// QuizSubmission is a scored answer set for one quiz attempt. Score, passed
// and bonusEligible are computed upstream and display-only here.
type QuizSubmission struct {
	ID            string            `json:"id"`
	QuizID        string            `json:"quizId"`
	AfterLessonID string            `json:"afterLessonId,omitempty"`
	Answers       []json.RawMessage `json:"answers"`
	Score         int               `json:"score"`
	Passed        bool              `json:"passed"`
	BonusEligible bool              `json:"bonusEligible"`
	CreatedAt     *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time        `json:"updatedAt,omitempty"`
}

// Progress is the derived, read-only progress snapshot computed upstream.
type Progress struct {
	TotalLessons       int `json:"totalLessons"`
	CompletedLessons   int `json:"completedLessons"`
	TotalQuizzes       int `json:"totalQuizzes"`
	PassedQuizzes      int `json:"passedQuizzes"`
	BonusLessons       int `json:"bonusLessons,omitempty"`
	BonusQuizzes       int `json:"bonusQuizzes,omitempty"`
	ProgressPercentage int `json:"progressPercentage"`
}

// EnrollmentContent is the combined payload of the enrollment content
// endpoint: the course structure plus the student's enrollment state.
type EnrollmentContent struct {
	Course     Course     `json:"course"`
	Enrollment Enrollment `json:"enrollment"`
}

// MarkLessonRequest is the payload for marking a lesson complete/incomplete.
type MarkLessonRequest struct {
	Mark     LessonMark `json:"mark" binding:"required,oneof=COMPLETED INCOMPLETE"`
	CourseID string     `json:"courseId" binding:"required"`
	LessonID string     `json:"lessonId" binding:"required"`
}
