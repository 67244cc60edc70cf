package models

// Course is one row of the catalog artifact. ID is the row index and must
// line up with the same row of the similarity matrix.
type Course struct {
	ID   int    `json:"id"`
	Name string `json:"course_name"`
}

type CourseRecommendation struct {
	CourseName string  `json:"course_name"`
	Score      float64 `json:"score"`
	Rank       int     `json:"rank,omitempty"`
}
