package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/HassanAli010/UserPref-CRS/internal/models"
	"github.com/HassanAli010/UserPref-CRS/internal/repository"
)

// stubRecommender lets handler tests script the facade.
type stubRecommender struct {
	contentRecs []models.CourseRecommendation
	contentErr  error
	collabRecs  []string
	collabErr   error
	recorded    []string
	recordErr   error
}

func (s *stubRecommender) GetContentBased(courseName string, limit int) ([]models.CourseRecommendation, error) {
	if s.contentErr != nil {
		return nil, s.contentErr
	}
	if limit < len(s.contentRecs) {
		return s.contentRecs[:limit], nil
	}
	return s.contentRecs, nil
}

func (s *stubRecommender) GetCollaborative(username string) ([]string, error) {
	return s.collabRecs, s.collabErr
}

func (s *stubRecommender) RecordInteraction(username, courseName string) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.recorded = append(s.recorded, username+":"+courseName)
	return nil
}

func setupRecommendationRouter(stub *stubRecommender, username, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewRecommendationHandler(stub)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if username != "" {
			c.Set("username", username)
			c.Set("role", role)
		}
		c.Next()
	})
	router.GET("/recommendations/content", handler.GetContentBasedRecommendations)
	router.GET("/recommendations/collaborative", handler.GetCollaborativeRecommendations)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(recorder, req)

	var body map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", recorder.Body.String(), err)
	}
	return recorder, body
}

func TestContentEndpointRequiresCourse(t *testing.T) {
	router := setupRecommendationRouter(&stubRecommender{}, "alice", "user")

	recorder, body := doRequest(t, router, "/recommendations/content")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if body["status"] != "error" {
		t.Fatalf("expected error envelope, got %v", body)
	}
}

func TestContentEndpointUnknownCourseIs404(t *testing.T) {
	stub := &stubRecommender{contentErr: repository.ErrCourseNotFound}
	router := setupRecommendationRouter(stub, "alice", "user")

	recorder, _ := doRequest(t, router, "/recommendations/content?course=Nope")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	if len(stub.recorded) != 0 {
		t.Fatalf("failed lookup must not record history, got %v", stub.recorded)
	}
}

func TestContentEndpointRecordsInteractionForUsers(t *testing.T) {
	stub := &stubRecommender{
		contentRecs: []models.CourseRecommendation{
			{CourseName: "B", Score: 0.9, Rank: 1},
			{CourseName: "C", Score: 0.9, Rank: 2},
		},
	}
	router := setupRecommendationRouter(stub, "alice", "user")

	recorder, body := doRequest(t, router, "/recommendations/content?course=A&limit=2")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", recorder.Code, body)
	}

	data := body["data"].(map[string]interface{})
	if data["history_updated"] != true {
		t.Fatalf("expected history_updated=true, got %v", data)
	}
	if len(stub.recorded) != 1 || stub.recorded[0] != "alice:A" {
		t.Fatalf("expected the chosen course to be recorded, got %v", stub.recorded)
	}
}

func TestContentEndpointDoesNotRecordForAdmins(t *testing.T) {
	stub := &stubRecommender{
		contentRecs: []models.CourseRecommendation{{CourseName: "B", Score: 0.9, Rank: 1}},
	}
	router := setupRecommendationRouter(stub, "root", "admin")

	recorder, body := doRequest(t, router, "/recommendations/content?course=A")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	data := body["data"].(map[string]interface{})
	if data["history_updated"] != false {
		t.Fatalf("admin requests must not update history, got %v", data)
	}
	if len(stub.recorded) != 0 {
		t.Fatalf("admin interaction was recorded: %v", stub.recorded)
	}
}

func TestCollaborativeEndpoint(t *testing.T) {
	stub := &stubRecommender{collabRecs: []string{"Z"}}
	router := setupRecommendationRouter(stub, "alice", "user")

	recorder, body := doRequest(t, router, "/recommendations/collaborative")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	data := body["data"].(map[string]interface{})
	recs := data["recommendations"].([]interface{})
	if len(recs) != 1 || recs[0] != "Z" {
		t.Fatalf("expected [Z], got %v", recs)
	}
}

func TestCollaborativeEndpointRequiresAuth(t *testing.T) {
	router := setupRecommendationRouter(&stubRecommender{}, "", "")

	recorder, _ := doRequest(t, router, "/recommendations/collaborative")
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}
