package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/repository/specification"
	"support-routing-be/internal/repository/unitofwork"
	"support-routing-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.SessionRepository())
	assert.NotNil(t, uow.TicketRepository())
	assert.NotNil(t, uow.PatternRecordRepository())
	assert.NotNil(t, uow.KnowledgeChunkRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Ticket Repository", func(t *testing.T) {
		count, err := uow.TicketRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Ticket count: %d", count)
	})

	t.Run("Check Pattern Record Repository", func(t *testing.T) {
		count, err := uow.PatternRecordRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("PatternRecord count: %d", count)
	})

	t.Run("Session Round Trip", func(t *testing.T) {
		ctx := context.Background()

		customer := &entity.Customer{
			Id:        uuid.New(),
			Name:      "Integration Test Customer",
			Email:     "test-integration-" + uuid.New().String() + "@example.com",
			CreatedAt: time.Now(),
		}
		err := uow.CustomerRepository().Create(ctx, customer)
		assert.NoError(t, err)

		session := &entity.Session{
			Id:              uuid.New(),
			CustomerId:      customer.Id,
			EscalationState: entity.EscalationNone,
			CreatedAt:       time.Now(),
			LastActivityAt:  time.Now(),
		}
		err = uow.SessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		found, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: session.Id})
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, entity.EscalationNone, found.EscalationState)
		}

		// Cleanup (customers have no delete; test rows are identifiable by email)
		assert.NoError(t, uow.SessionRepository().Delete(ctx, session.Id))
	})

	t.Run("Knowledge Similarity Scores", func(t *testing.T) {
		ctx := context.Background()
		topic := "integration-" + uuid.New().String()

		// Unit vectors in the 768-dim space: vec(0) matches the query exactly,
		// vec(1) sits at 45 degrees from it.
		vec := func(second float32) []float32 {
			v := make([]float32, 768)
			v[0] = 1
			v[1] = second
			return v
		}

		chunks := []*entity.KnowledgeChunk{
			{Id: uuid.New(), Domain: "cards", Topic: topic, Document: "documento exato", EmbeddingValue: vec(0), CreatedAt: time.Now()},
			{Id: uuid.New(), Domain: "cards", Topic: topic, Document: "documento distante", EmbeddingValue: vec(1), CreatedAt: time.Now()},
		}
		assert.NoError(t, uow.KnowledgeChunkRepository().CreateBulk(ctx, chunks))

		found, err := uow.KnowledgeChunkRepository().SearchSimilar(ctx, "cards", []string{topic}, vec(0), 5)
		assert.NoError(t, err)
		if assert.Len(t, found, 2) {
			assert.InDelta(t, 1.0, found[0].Score, 1e-4)
			assert.Greater(t, found[0].Score, found[1].Score)
			assert.Positive(t, found[1].Score)
		}

		assert.NoError(t, gormDB.Exec("DELETE FROM knowledge_chunks WHERE topic = ?", topic).Error)
	})
}
