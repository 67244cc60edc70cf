package services

import (
	"github.com/HassanAli010/UserPref-CRS/internal/models"
	"github.com/HassanAli010/UserPref-CRS/internal/repository"
)

// RecommenderService is the facade the handlers talk to. It hides catalog
// caching and store selection behind three operations.
type RecommenderService interface {
	GetContentBased(courseName string, limit int) ([]models.CourseRecommendation, error)
	GetCollaborative(username string) ([]string, error)
	RecordInteraction(username, courseName string) error
}

type recommenderService struct {
	contentService       ContentBasedService
	collaborativeService CollaborativeService
	userRepo             repository.UserRepository
}

func NewRecommenderService(
	content ContentBasedService,
	collaborative CollaborativeService,
	userRepo repository.UserRepository,
) RecommenderService {
	return &recommenderService{
		contentService:       content,
		collaborativeService: collaborative,
		userRepo:             userRepo,
	}
}

func (s *recommenderService) GetContentBased(courseName string, limit int) ([]models.CourseRecommendation, error) {
	return s.contentService.GetContentBasedRecommendations(courseName, limit)
}

func (s *recommenderService) GetCollaborative(username string) ([]string, error) {
	return s.collaborativeService.GetCollaborativeRecommendations(username)
}

func (s *recommenderService) RecordInteraction(username, courseName string) error {
	return s.userRepo.AppendHistory(username, courseName)
}
