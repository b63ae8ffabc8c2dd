package domain

import "strings"

// KeyPrefix namespaces every key this service writes.
const KeyPrefix = "coursearch:"

// Backend object names shared by the index writer and the search executor.
const (
	// CourseKeyPrefix prefixes per-course hash keys.
	CourseKeyPrefix = KeyPrefix + "course:"
	// CourseIndexName is the FT index over course hashes.
	CourseIndexName = KeyPrefix + "courses:idx"
	// SuggestDictionary is the completion dictionary fed from course names.
	SuggestDictionary = KeyPrefix + "courses:sug"
	// VectorField is the embedding field name in the index schema.
	VectorField = "embedding"
)

// CourseKey returns the hash key for a course document.
func CourseKey(id string) string {
	return CourseKeyPrefix + id
}

// CourseIDFromKey recovers the document identifier from a hash key.
func CourseIDFromKey(key string) string {
	return strings.TrimPrefix(key, CourseKeyPrefix)
}
