package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// EnrollmentContentKey returns the cache key for an enrollment's content
// snapshot (course structure + enrollment state + progress).
func (r *CacheKeyStruct) EnrollmentContentKey(enrollmentID string) string {
	return fmt.Sprintf("enrollment:%s:content", enrollmentID)
}

// QuizKey returns the cache key for a quiz detail fetched for an enrollment.
func (r *CacheKeyStruct) QuizKey(enrollmentID, quizID string) string {
	return fmt.Sprintf("enrollment:%s:quiz:%s", enrollmentID, quizID)
}

var CacheKey = NewCacheKeyStruct()
