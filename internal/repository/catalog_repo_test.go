package repository

import (
	"encoding/gob"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func writeCatalogArtifacts(t *testing.T, names []string, matrix [][]float64) (string, string) {
	t.Helper()
	dir := t.TempDir()

	coursesPath := filepath.Join(dir, "courses.csv")
	csv := "course_id,course_name\n"
	for i, name := range names {
		csv += strconv.Itoa(i) + "," + name + "\n"
	}
	if err := os.WriteFile(coursesPath, []byte(csv), 0o644); err != nil {
		t.Fatalf("write courses: %v", err)
	}

	similarityPath := filepath.Join(dir, "similarity.gob")
	file, err := os.Create(similarityPath)
	if err != nil {
		t.Fatalf("create similarity: %v", err)
	}
	if err := gob.NewEncoder(file).Encode(matrix); err != nil {
		t.Fatalf("encode similarity: %v", err)
	}
	file.Close()

	return coursesPath, similarityPath
}

func TestCatalogLoadsAndLooksUp(t *testing.T) {
	names := []string{"Go Basics", "Advanced Go", "Rust Basics"}
	matrix := [][]float64{
		{1.0, 0.8, 0.2},
		{0.8, 1.0, 0.3},
		{0.2, 0.3, 1.0},
	}
	coursesPath, similarityPath := writeCatalogArtifacts(t, names, matrix)

	repo, err := NewCatalogRepository(coursesPath, similarityPath)
	if err != nil {
		t.Fatalf("NewCatalogRepository: %v", err)
	}

	if repo.CourseCount() != 3 {
		t.Fatalf("expected 3 courses, got %d", repo.CourseCount())
	}

	course, err := repo.GetCourseByName("Advanced Go")
	if err != nil {
		t.Fatalf("GetCourseByName: %v", err)
	}
	if course.ID != 1 {
		t.Fatalf("expected row index 1, got %d", course.ID)
	}

	row, err := repo.SimilarityRow(1)
	if err != nil {
		t.Fatalf("SimilarityRow: %v", err)
	}
	if row[0] != 0.8 {
		t.Fatalf("expected row[0]=0.8, got %v", row[0])
	}

	if _, err := repo.GetCourseByName("Nonexistent"); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCatalogDuplicateNamesResolveToFirstRow(t *testing.T) {
	names := []string{"Twin", "Twin", "Other"}
	matrix := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	coursesPath, similarityPath := writeCatalogArtifacts(t, names, matrix)

	repo, err := NewCatalogRepository(coursesPath, similarityPath)
	if err != nil {
		t.Fatalf("NewCatalogRepository: %v", err)
	}

	course, err := repo.GetCourseByName("Twin")
	if err != nil {
		t.Fatalf("GetCourseByName: %v", err)
	}
	if course.ID != 0 {
		t.Fatalf("duplicate name should resolve to first row, got %d", course.ID)
	}
}

func TestCatalogMissingArtifacts(t *testing.T) {
	dir := t.TempDir()

	_, err := NewCatalogRepository(filepath.Join(dir, "missing.csv"), filepath.Join(dir, "missing.gob"))
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestCatalogDimensionMismatch(t *testing.T) {
	names := []string{"A", "B", "C"}
	matrix := [][]float64{
		{1.0, 0.5},
		{0.5, 1.0},
	}
	coursesPath, similarityPath := writeCatalogArtifacts(t, names, matrix)

	_, err := NewCatalogRepository(coursesPath, similarityPath)
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable on dimension mismatch, got %v", err)
	}
}

func TestCatalogRaggedMatrix(t *testing.T) {
	names := []string{"A", "B"}
	matrix := [][]float64{
		{1.0, 0.5},
		{0.5},
	}
	coursesPath, similarityPath := writeCatalogArtifacts(t, names, matrix)

	_, err := NewCatalogRepository(coursesPath, similarityPath)
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable on ragged matrix, got %v", err)
	}
}
