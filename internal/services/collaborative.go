package services

import (
	"math"
	"sort"

	"github.com/HassanAli010/UserPref-CRS/internal/config"
	"github.com/HassanAli010/UserPref-CRS/internal/models"
	"github.com/HassanAli010/UserPref-CRS/internal/repository"
)

type CollaborativeService interface {
	GetCollaborativeRecommendations(username string) ([]string, error)
}

type collaborativeService struct {
	catalogRepo repository.CatalogRepository
	userRepo    repository.UserRepository
	config      *config.Config
}

func NewCollaborativeService(userRepo repository.UserRepository, catalogRepo repository.CatalogRepository) CollaborativeService {
	if config.GlobalConfig == nil {
		_ = config.LoadConfig()
	}
	return &collaborativeService{
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
		config:      config.GlobalConfig,
	}
}

// GetCollaborativeRecommendations builds a binary user×course interaction
// matrix over all known users, ranks the other users by cosine similarity to
// the target, and unions the top peers' histories minus courses the target
// has already seen.
//
// An empty target history is "no signal", not an error: the result is empty.
func (s *collaborativeService) GetCollaborativeRecommendations(username string) ([]string, error) {
	users, err := s.userRepo.ListUsers()
	if err != nil {
		return nil, err
	}

	var target *models.User
	targetRow := -1
	for i, user := range users {
		if user.Username == username {
			target = user
			targetRow = i
			break
		}
	}
	if target == nil || len(target.History) == 0 {
		return []string{}, nil
	}

	// History entries referencing courses no longer in the catalog are
	// dropped from the matrix, but still count as "already seen" below.
	courseNames := s.catalogRepo.GetAllCourseNames()
	columns := make(map[string]int, len(courseNames))
	for i, name := range courseNames {
		columns[name] = i
	}

	matrix := make([][]float64, len(users))
	for i, user := range users {
		row := make([]float64, len(courseNames))
		for _, course := range user.History {
			if col, ok := columns[course]; ok {
				row[col] = 1
			}
		}
		matrix[i] = row
	}

	// Rank the other users by similarity, stable on load order for ties.
	type userScore struct {
		row   int
		score float64
	}

	scores := make([]userScore, 0, len(users)-1)
	for i := range users {
		if i == targetRow {
			continue
		}
		scores = append(scores, userScore{
			row:   i,
			score: cosineSimilarity(matrix[targetRow], matrix[i]),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	peerCount := s.config.SimilarUserCount
	if peerCount > len(scores) {
		peerCount = len(scores)
	}

	seen := make(map[string]bool, len(target.History))
	for _, course := range target.History {
		seen[course] = true
	}

	// Union of the peers' histories, excluding courses already seen.
	// Deduplicated, insertion order preserved so results are deterministic.
	recommended := []string{}
	added := make(map[string]bool)
	for _, peer := range scores[:peerCount] {
		for _, course := range users[peer.row].History {
			if seen[course] || added[course] {
				continue
			}
			added[course] = true
			recommended = append(recommended, course)
		}
	}

	return recommended, nil
}

// cosineSimilarity over two equal-length vectors. A zero vector on either
// side yields 0, not NaN.
func cosineSimilarity(a, b []float64) float64 {
	var dotProduct, normA, normB float64

	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
