package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Title,URL,Short Intro,Category,Sub-Category,Course Type,Language,Subtitle Languages,Skills,Instructors,Rating,Number of viewers,Duration,Site,Level
Machine Learning,https://example.com/ml,"Learn models, fast",Data Science,Machine Learning,Course,English,"Arabic, French","Python, Statistics ,",Andrew Ng,4.9,"4,521,000",60 hours,Coursera,Beginner
Intro to Cooking,https://example.com/cook,Basics,"Arts and Humanities, Food",Cooking,,,,,,not-rated,,,,
Broken Row,https://example.com/broken
,,,,,,,,,,,,,,
`

func TestParseCoursesMapsColumnsAndDefaults(t *testing.T) {
	courses, err := ParseCourses(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, courses, 2)

	ml := courses[0]
	assert.Equal(t, "1", ml.ID)
	assert.Equal(t, "Machine Learning", ml.Title)
	assert.Equal(t, "Learn models, fast", ml.Description)
	assert.Equal(t, "Data Science", ml.MainCategory)
	assert.Equal(t, []string{"Python", "Statistics"}, ml.Tags)
	assert.Equal(t, []string{"Andrew Ng"}, ml.Instructors)
	require.NotNil(t, ml.Rating)
	assert.InDelta(t, 4.9, *ml.Rating, 0.0001)
	require.NotNil(t, ml.Reviews)
	assert.Equal(t, 4521000, *ml.Reviews)
	assert.Equal(t, "/placeholder-course.jpg", ml.ImageURL)

	cooking := courses[1]
	assert.Equal(t, "2", cooking.ID)
	assert.Equal(t, "Arts and Humanities", cooking.MainCategory)
	assert.Equal(t, "Coursera", cooking.Provider)
	assert.Equal(t, "Course", cooking.ResourceType)
	assert.Equal(t, "English", cooking.Language)
	assert.Nil(t, cooking.Rating)
	assert.Nil(t, cooking.Reviews)
	assert.Empty(t, cooking.Tags)
}

func TestParseCoursesEmptyInput(t *testing.T) {
	courses, err := ParseCourses(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestMainCategoryOf(t *testing.T) {
	assert.Equal(t, "Business", MainCategoryOf(" Business , Finance"))
	assert.Equal(t, "Miscellaneous", MainCategoryOf(""))
	assert.Equal(t, "Miscellaneous", MainCategoryOf(" ,x"))
}

func TestParseCount(t *testing.T) {
	require.NotNil(t, ParseCount("1,234"))
	assert.Equal(t, 1234, *ParseCount("1,234"))
	assert.Nil(t, ParseCount("many"))
	assert.Nil(t, ParseCount(""))
}
