package services

import "strings"

// courseListSeparator joins course names in the denormalized users.courses
// projection.
const courseListSeparator = ", "

// NormalizeCourseList canonicalizes a comma-separated bag of course names:
// tokens are trimmed, empty tokens dropped, duplicates removed keeping the
// first occurrence, and the survivors joined with ", ". Pure and
// idempotent: normalizing an already-normalized string is a no-op.
func NormalizeCourseList(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	seen := make(map[string]bool)
	var names []string
	for _, token := range strings.Split(raw, ",") {
		name := strings.Join(strings.Fields(token), " ")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	return strings.Join(names, courseListSeparator)
}

// addCourseToList appends a course name to the list unless already present
func addCourseToList(list, name string) string {
	names := splitCourseList(list)
	for _, existing := range names {
		if existing == name {
			return NormalizeCourseList(list)
		}
	}
	return NormalizeCourseList(list + courseListSeparator + name)
}

// removeCourseFromList removes every token equal to the course name
func removeCourseFromList(list, name string) string {
	var kept []string
	for _, existing := range splitCourseList(list) {
		if existing != name {
			kept = append(kept, existing)
		}
	}
	return strings.Join(kept, courseListSeparator)
}

func splitCourseList(list string) []string {
	normalized := NormalizeCourseList(list)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, courseListSeparator)
}
