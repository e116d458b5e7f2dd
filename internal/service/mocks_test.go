package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
	"github.com/yourusername/fitbot-api/pkg/openai"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

type MockFormRepository struct {
	mock.Mock
}

func (m *MockFormRepository) GetBySlug(slug string) (*entity.Form, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Form), args.Error(1)
}

func (m *MockFormRepository) Create(form *entity.Form) error {
	args := m.Called(form)
	return args.Error(0)
}

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetByIDs(ids []uuid.UUID) ([]entity.Question, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByFormID(formID uuid.UUID) ([]entity.Question, error) {
	args := m.Called(formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Create(run *entity.Run) error {
	args := m.Called(run)
	return args.Error(0)
}

func (m *MockRunRepository) GetByID(id uuid.UUID) (*entity.Run, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Run), args.Error(1)
}

func (m *MockRunRepository) GetLatest(userID, formID uuid.UUID) (*entity.Run, error) {
	args := m.Called(userID, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Run), args.Error(1)
}

func (m *MockRunRepository) GetForUpdate(tx *gorm.DB, id uuid.UUID) (*entity.Run, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Run), args.Error(1)
}

func (m *MockRunRepository) Update(tx *gorm.DB, run *entity.Run) error {
	args := m.Called(tx, run)
	return args.Error(0)
}

type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) GetByRunID(tx *gorm.DB, runID uuid.UUID) ([]entity.Answer, error) {
	args := m.Called(tx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Answer), args.Error(1)
}

func (m *MockAnswerRepository) ReplaceForRun(tx *gorm.DB, runID uuid.UUID, answers []entity.Answer) error {
	args := m.Called(tx, runID, answers)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(id uuid.UUID) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateFitnessMetrics(tx *gorm.DB, userID uuid.UUID, fitnessLevel int, riskFactor string, at time.Time) error {
	args := m.Called(tx, userID, fitnessLevel, riskFactor, at)
	return args.Error(0)
}

type MockFitnessHistoryRepository struct {
	mock.Mock
}

func (m *MockFitnessHistoryRepository) Create(tx *gorm.DB, entry *entity.FitnessHistory) error {
	args := m.Called(tx, entry)
	return args.Error(0)
}

func (m *MockFitnessHistoryRepository) ListByUser(userID uuid.UUID, limit int) ([]entity.FitnessHistory, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FitnessHistory), args.Error(1)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// fakeTx выполняет функцию без реальной транзакции
type fakeTx struct {
	calls int
}

func (f *fakeTx) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	f.calls++
	return fc(nil)
}

// ============================================================================
// Мок клиента модели
// ============================================================================

type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockCompletionClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openai.ChatCompletionResponse), args.Error(1)
}
