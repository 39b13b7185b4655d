package model

// Course is the authoritative course structure as returned by the learning
// platform. It is read-only to this service; ordering of sections and lessons
// is normalized locally (see internal/content).
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price,omitempty"`
	Sections    []Section `json:"sections"`
}

// Section groups lessons and their anchored quizzes within a course.
type Section struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	OrderIndex int      `json:"orderIndex"`
	Lessons    []Lesson `json:"lessons"`
	Quizzes    []Quiz   `json:"quizzes,omitempty"`
}

// Lesson is a single content unit within a section.
type Lesson struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Link       string `json:"link,omitempty"`
	OrderIndex int    `json:"orderIndex"`
}
