package catalog

import (
	"strings"

	"resourceshub/model"
)

// Filter keeps courses in the given category and, when a category is set,
// sub-category. Empty values and "All" disable a filter.
func Filter(courses []model.Course, category, subcategory string) []model.Course {
	category = normalizeFilter(category)
	if category == "" {
		return courses
	}
	subcategory = normalizeFilter(subcategory)

	out := make([]model.Course, 0, len(courses)/4)
	for _, course := range courses {
		if !strings.EqualFold(course.Category, category) && !strings.EqualFold(course.MainCategory, category) {
			continue
		}
		if subcategory != "" && !strings.EqualFold(course.SubCategory, subcategory) {
			continue
		}
		out = append(out, course)
	}
	return out
}

// Search returns the courses whose title, description, instructors,
// category, sub-category or tags contain query, ignoring case.
func Search(courses []model.Course, query string) []model.Course {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return []model.Course{}
	}

	out := make([]model.Course, 0)
	for _, course := range courses {
		if matches(course, term) {
			out = append(out, course)
		}
	}
	return out
}

func matches(course model.Course, term string) bool {
	if containsFold(course.Title, term) ||
		containsFold(course.Description, term) ||
		containsFold(course.Category, term) ||
		containsFold(course.SubCategory, term) {
		return true
	}
	for _, instructor := range course.Instructors {
		if containsFold(instructor, term) {
			return true
		}
	}
	for _, tag := range course.Tags {
		if containsFold(tag, term) {
			return true
		}
	}
	return false
}

// term must already be lower case.
func containsFold(s, term string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), term)
}

func normalizeFilter(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
