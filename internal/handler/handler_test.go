package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
	"github.com/yourusername/fitbot-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		var bodyBytes []byte
		if raw, ok := body.(string); ok {
			bodyBytes = []byte(raw)
		} else {
			bodyBytes, _ = json.Marshal(body)
		}
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// ============================================================================
// Моки сервисов
// ============================================================================

type MockQuestionnaireService struct {
	mock.Mock
}

func (m *MockQuestionnaireService) GetForm() (*entity.Form, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Form), args.Error(1)
}

func (m *MockQuestionnaireService) GetStatus(userID uuid.UUID) (*service.RunStatus, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RunStatus), args.Error(1)
}

func (m *MockQuestionnaireService) GetExistingRun(userID uuid.UUID) (*entity.Run, []entity.Answer, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.Run), args.Get(1).([]entity.Answer), args.Error(2)
}

func (m *MockQuestionnaireService) StartRun(userID uuid.UUID) (*entity.Run, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Run), args.Error(1)
}

func (m *MockQuestionnaireService) SaveAnswers(runID uuid.UUID, answers []entity.Answer, status string) (*service.SaveResult, error) {
	args := m.Called(runID, answers, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SaveResult), args.Error(1)
}

func (m *MockQuestionnaireService) DebugScores(userID uuid.UUID) (*service.DebugReport, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DebugReport), args.Error(1)
}

type MockFormProvider struct {
	mock.Mock
}

func (m *MockFormProvider) GetForm(slug string) (*entity.Form, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Form), args.Error(1)
}

type MockAdvisor struct {
	mock.Mock
}

func (m *MockAdvisor) Advise(ctx context.Context, req service.AdviceRequest) (*service.Advice, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Advice), args.Error(1)
}

type MockHistoryProvider struct {
	mock.Mock
}

func (m *MockHistoryProvider) ListHistory(userID uuid.UUID, limit int) (*entity.User, []entity.FitnessHistory, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.User), args.Get(1).([]entity.FitnessHistory), args.Error(2)
}
