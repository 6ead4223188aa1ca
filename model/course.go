package model

// Course is one row of the course catalog CSV after defaults are applied.
type Course struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	ImageURL     string   `json:"imageUrl"`
	Category     string   `json:"category"`
	MainCategory string   `json:"mainCategory"`
	SubCategory  string   `json:"subCategory"`
	Tags         []string `json:"tags"`
	Provider     string   `json:"provider"`
	Difficulty   string   `json:"difficulty"`
	ResourceType string   `json:"resourceType"`
	Language     string   `json:"language"`
	Instructors  []string `json:"instructors"`
	Rating       *float64 `json:"rating"`
	Reviews      *int     `json:"reviews"`
	Duration     string   `json:"duration"`
	Subtitles    string   `json:"subtitles"`
}

// Categories groups catalog sub-categories under their main category.
type Categories struct {
	MainCategories []string            `json:"mainCategories"`
	SubCategories  map[string][]string `json:"subCategories"`
}
