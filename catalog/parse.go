package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"resourceshub/model"
)

const (
	defaultImageURL     = "/placeholder-course.jpg"
	defaultProvider     = "Coursera"
	defaultResourceType = "Course"
	defaultLanguage     = "English"
	defaultMainCategory = "Miscellaneous"
)

// ParseCourses reads a catalog CSV with a header row. Rows whose field count
// does not match the header are skipped.
func ParseCourses(r io.Reader) ([]model.Course, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []model.Course{}, nil
		}
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		columns[h] = i
	}

	courses := make([]model.Course, 0, 1024)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, fmt.Errorf("reading catalog row: %w", err)
		}
		if len(record) != len(header) || blankRecord(record) {
			continue
		}

		row := rowReader{columns: columns, record: record}
		course := courseFromRow(row)
		course.ID = strconv.Itoa(len(courses) + 1)
		courses = append(courses, course)
	}
	return courses, nil
}

func courseFromRow(row rowReader) model.Course {
	category := row.get("Category")
	return model.Course{
		Title:        row.get("Title"),
		Description:  row.get("Short Intro"),
		URL:          row.get("URL"),
		ImageURL:     orDefault(row.get("imageUrl"), defaultImageURL),
		Category:     category,
		MainCategory: MainCategoryOf(category),
		SubCategory:  row.get("Sub-Category"),
		Tags:         SplitList(row.get("Skills")),
		Provider:     orDefault(row.get("Site"), defaultProvider),
		Difficulty:   row.get("Level"),
		ResourceType: orDefault(row.get("Course Type"), defaultResourceType),
		Language:     orDefault(row.get("Language"), defaultLanguage),
		Instructors:  SplitList(row.get("Instructors")),
		Rating:       ParseRating(row.get("Rating")),
		Reviews:      ParseCount(row.get("Number of viewers")),
		Duration:     row.get("Duration"),
		Subtitles:    row.get("Subtitle Languages"),
	}
}

type rowReader struct {
	columns map[string]int
	record  []string
}

func (r rowReader) get(name string) string {
	idx, ok := r.columns[name]
	if !ok || idx >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[idx])
}

// MainCategoryOf returns the first comma separated segment of a category.
func MainCategoryOf(category string) string {
	first, _, _ := strings.Cut(category, ",")
	if first = strings.TrimSpace(first); first != "" {
		return first
	}
	return defaultMainCategory
}

// SplitList splits a comma separated cell, trimming entries and dropping blanks.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseRating returns nil for blank or non-numeric ratings.
func ParseRating(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseCount parses counts such as "1,234,567".
func ParseCount(s string) *int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func blankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
