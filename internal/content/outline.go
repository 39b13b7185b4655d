// Package content normalizes a course's section/lesson structure into a
// deterministic linear ordering and answers navigation and unlock queries
// against it. Everything here is pure: an Outline is built once per fetched
// snapshot and never mutated.
package content

import (
	"sort"

	"github.com/edupress/courseplayer/internal/model"
)

// Outline is the ordered view of a course: sections ascending by orderIndex,
// lessons ascending by orderIndex within each section.
type Outline struct {
	sections []model.Section
	flat     []model.Lesson
	position map[string]int
}

// NewOutline builds the ordered outline for a course. Duplicate order
// indexes are tolerated: sorting is stable, so the server's relative order
// is preserved rather than erroring.
func NewOutline(course *model.Course) *Outline {
	sections := make([]model.Section, len(course.Sections))
	copy(sections, course.Sections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].OrderIndex < sections[j].OrderIndex
	})

	o := &Outline{
		sections: sections,
		position: make(map[string]int),
	}
	for si := range sections {
		lessons := make([]model.Lesson, len(sections[si].Lessons))
		copy(lessons, sections[si].Lessons)
		sort.SliceStable(lessons, func(i, j int) bool {
			return lessons[i].OrderIndex < lessons[j].OrderIndex
		})
		sections[si].Lessons = lessons

		for _, l := range lessons {
			if _, seen := o.position[l.ID]; !seen {
				o.position[l.ID] = len(o.flat)
			}
			o.flat = append(o.flat, l)
		}
	}
	return o
}

// Sections returns the ordered sections with their ordered lessons.
func (o *Outline) Sections() []model.Section { return o.sections }

// Lessons returns the flattened lesson sequence across all sections.
func (o *Outline) Lessons() []model.Lesson { return o.flat }

// Position returns the index of a lesson in the flattened sequence.
func (o *Outline) Position(lessonID string) (int, bool) {
	pos, ok := o.position[lessonID]
	return pos, ok
}

// Neighbors returns the ids of the lessons before and after lessonID in the
// flattened sequence. Section boundaries are transparent. An empty string
// means no neighbor: the first lesson has no previous, the last no next,
// and an unknown lesson id yields neither.
func (o *Outline) Neighbors(lessonID string) (prev, next string) {
	pos, ok := o.position[lessonID]
	if !ok {
		return "", ""
	}
	if pos > 0 {
		prev = o.flat[pos-1].ID
	}
	if pos < len(o.flat)-1 {
		next = o.flat[pos+1].ID
	}
	return prev, next
}

// CompletedBoundary returns the index (in outline order) of the first lesson
// not yet completed in the given progress set, or len(Lessons()) when every
// lesson is complete. Lessons at or before this index are reviewable.
func (o *Outline) CompletedBoundary(progresses []model.LessonProgress) int {
	done := make(map[string]bool, len(progresses))
	for _, p := range progresses {
		if p.Completed {
			done[p.LessonID] = true
		}
	}
	for i, l := range o.flat {
		if !done[l.ID] {
			return i
		}
	}
	return len(o.flat)
}

// IsUnlocked reports whether the lesson at lessonIndex may be opened given
// the completed-lesson boundary: everything up to and including the first
// not-yet-completed lesson is accessible.
func IsUnlocked(lessonIndex, completedIndex int) bool {
	return lessonIndex <= completedIndex
}

// ProgressNeighbors resolves previous/next lesson ids over an enrollment's
// lessonProgresses list, in the order the server returned it. Used when
// navigation must follow the student's personalized ordering instead of the
// canonical outline. Empty string means no neighbor, as with Neighbors.
func ProgressNeighbors(progresses []model.LessonProgress, lessonID string) (prev, next string) {
	for i, p := range progresses {
		if p.LessonID != lessonID {
			continue
		}
		if i > 0 {
			prev = progresses[i-1].LessonID
		}
		if i < len(progresses)-1 {
			next = progresses[i+1].LessonID
		}
		return prev, next
	}
	return "", ""
}
