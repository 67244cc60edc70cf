package repository

import (
	"encoding/csv"
	"encoding/gob"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/HassanAli010/UserPref-CRS/internal/models"
)

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrCourseNotFound     = errors.New("course not found")
)

// CatalogRepository serves the immutable course table and the precomputed
// course-to-course similarity matrix. Everything is loaded once at startup and
// never mutated, so it is safe to share across requests without locking.
type CatalogRepository interface {
	GetCourseByName(name string) (*models.Course, error)
	CourseNameByIndex(index int) (string, error)
	GetAllCourseNames() []string
	SimilarityRow(index int) ([]float64, error)
	CourseCount() int
}

type catalogRepo struct {
	courses    []models.Course
	similarity [][]float64
	byName     map[string]int // course name -> first matching row index
}

// NewCatalogRepository reads the two catalog artifacts:
//   - coursesPath: CSV with header course_id,course_name (row order is the matrix order)
//   - similarityPath: gob-encoded [][]float64, square, dimension == course count
func NewCatalogRepository(coursesPath, similarityPath string) (CatalogRepository, error) {
	courses, err := loadCourses(coursesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	similarity, err := loadSimilarity(similarityPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	if len(similarity) != len(courses) {
		return nil, fmt.Errorf("%w: similarity matrix has %d rows for %d courses",
			ErrCatalogUnavailable, len(similarity), len(courses))
	}
	for i, row := range similarity {
		if len(row) != len(courses) {
			return nil, fmt.Errorf("%w: similarity row %d has %d columns for %d courses",
				ErrCatalogUnavailable, i, len(row), len(courses))
		}
	}

	// Duplicate course names resolve to the first matching row, silently.
	byName := make(map[string]int, len(courses))
	for i, course := range courses {
		if _, exists := byName[course.Name]; !exists {
			byName[course.Name] = i
		}
	}

	log.Printf("✅ Catalog loaded: %d courses, %dx%d similarity matrix",
		len(courses), len(similarity), len(similarity))

	return &catalogRepo{
		courses:    courses,
		similarity: similarity,
		byName:     byName,
	}, nil
}

func loadCourses(path string) ([]models.Course, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open courses artifact: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse courses artifact: %v", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("courses artifact %s is empty", path)
	}

	// Skip header row. The id column is informational only: identity for
	// matrix alignment is the row index, so ID is always assigned from it.
	courses := make([]models.Course, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 2 {
			return nil, fmt.Errorf("courses artifact row %d has %d columns", i+1, len(record))
		}
		courses = append(courses, models.Course{ID: i, Name: record[1]})
	}

	return courses, nil
}

func loadSimilarity(path string) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open similarity artifact: %v", err)
	}
	defer file.Close()

	var matrix [][]float64
	if err := gob.NewDecoder(file).Decode(&matrix); err != nil {
		return nil, fmt.Errorf("decode similarity artifact: %v", err)
	}

	return matrix, nil
}

func (r *catalogRepo) GetCourseByName(name string) (*models.Course, error) {
	index, ok := r.byName[name]
	if !ok {
		return nil, ErrCourseNotFound
	}
	course := r.courses[index]
	return &course, nil
}

func (r *catalogRepo) CourseNameByIndex(index int) (string, error) {
	if index < 0 || index >= len(r.courses) {
		return "", ErrCourseNotFound
	}
	return r.courses[index].Name, nil
}

func (r *catalogRepo) GetAllCourseNames() []string {
	names := make([]string, len(r.courses))
	for i, course := range r.courses {
		names[i] = course.Name
	}
	return names
}

func (r *catalogRepo) SimilarityRow(index int) ([]float64, error) {
	if index < 0 || index >= len(r.similarity) {
		return nil, ErrCourseNotFound
	}
	return r.similarity[index], nil
}

func (r *catalogRepo) CourseCount() int {
	return len(r.courses)
}
