package services

import (
	"sort"

	"github.com/HassanAli010/UserPref-CRS/internal/config"
	"github.com/HassanAli010/UserPref-CRS/internal/models"
	"github.com/HassanAli010/UserPref-CRS/internal/repository"
)

type ContentBasedService interface {
	GetContentBasedRecommendations(courseName string, limit int) ([]models.CourseRecommendation, error)
}

type contentBasedService struct {
	catalogRepo repository.CatalogRepository
	config      *config.Config
}

func NewContentBasedService(catalogRepo repository.CatalogRepository) ContentBasedService {
	if config.GlobalConfig == nil {
		_ = config.LoadConfig()
	}
	return &contentBasedService{
		catalogRepo: catalogRepo,
		config:      config.GlobalConfig,
	}
}

// GetContentBasedRecommendations looks the course up by exact name, ranks the
// precomputed similarity row and returns the top entries.
//
// The sort is stable over the row enumeration order, so equal scores keep
// catalog order. The first sorted entry is dropped: that is the course itself,
// self-similarity being maximal in the exported matrix.
func (s *contentBasedService) GetContentBasedRecommendations(courseName string, limit int) ([]models.CourseRecommendation, error) {
	if limit <= 0 {
		limit = s.config.DefaultRecommendations
	}

	course, err := s.catalogRepo.GetCourseByName(courseName)
	if err != nil {
		return nil, err
	}

	row, err := s.catalogRepo.SimilarityRow(course.ID)
	if err != nil {
		return nil, err
	}

	type indexedScore struct {
		index int
		score float64
	}

	scores := make([]indexedScore, len(row))
	for i, score := range row {
		scores[i] = indexedScore{index: i, score: score}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	// Skip the self entry, take the next limit entries.
	end := 1 + limit
	if end > len(scores) {
		end = len(scores)
	}
	if len(scores) <= 1 {
		return []models.CourseRecommendation{}, nil
	}

	recommendations := make([]models.CourseRecommendation, 0, end-1)
	for rank, entry := range scores[1:end] {
		name, err := s.catalogRepo.CourseNameByIndex(entry.index)
		if err != nil {
			return nil, err
		}
		recommendations = append(recommendations, models.CourseRecommendation{
			CourseName: name,
			Score:      entry.score,
			Rank:       rank + 1,
		})
	}

	return recommendations, nil
}
