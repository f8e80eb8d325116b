//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	adoptionEvents "github.com/Kilat-Pet-Delivery/service-adoption/internal/events"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/database"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/metrics"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/repository"
)

// adoptionStack holds wired-up services over PostgreSQL.
type adoptionStack struct {
	Adoptions *application.AdoptionService
	Catalog   *application.CatalogService
	Users     *application.UserService
}

// setupPostgres starts a PostgreSQL container, applies the SQL migrations
// and returns a connected GORM DB.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("test_adoption"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(dsn, "migrations", zap.NewNop()), "failed to apply migrations")

	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	return db
}

// setupKafka starts a Kafka container and pre-creates topics.
func setupKafka(t *testing.T, topics ...string) []string {
	t.Helper()
	ctx := context.Background()

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")
	t.Cleanup(func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
	})

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, brokers, topics...)
	return brokers
}

// setupAdoptionStack wires the services over db, publishing through publisher.
func setupAdoptionStack(t *testing.T, db *gorm.DB, publisher application.TransitionPublisher) *adoptionStack {
	t.Helper()
	logger := zap.NewNop()
	m := metrics.NewNop()
	hasher := auth.NewBcryptHasher(4)

	return &adoptionStack{
		Adoptions: application.NewAdoptionService(
			repository.NewGormTransactor(db),
			repository.NewGormAdoptionRequestRepository(db),
			publisher, m, logger,
		),
		Catalog: application.NewCatalogService(repository.NewGormPetRepository(db), m, logger),
		Users:   application.NewUserService(repository.NewGormUserRepository(db, hasher), hasher, 0, logger),
	}
}

// truncateAll empties every table between subtests.
func truncateAll(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Exec("TRUNCATE liked_pets, pets, adoption_requests, users").Error)
}

// collectTransitions consumes the adoption topic into a channel.
func collectTransitions(t *testing.T, brokers []string, topic string) <-chan application.TransitionEvent {
	t.Helper()
	out := make(chan application.TransitionEvent, 16)
	groupID := fmt.Sprintf("test-adoption-%s", uuid.New().String()[:8])

	consumer := adoptionEvents.NewTransitionConsumer(brokers, groupID, topic,
		func(_ context.Context, evt application.TransitionEvent) error {
			out <- evt
			return nil
		},
		zap.NewNop(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = consumer.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		_ = consumer.Close()
	})
	return out
}

// newPublisher creates a Kafka-backed transition publisher.
func newPublisher(t *testing.T, brokers []string, topic string) application.TransitionPublisher {
	t.Helper()
	producer := kafka.NewProducer(brokers, zap.NewNop())
	t.Cleanup(func() { _ = producer.Close() })
	return adoptionEvents.NewKafkaTransitionPublisher(producer, topic)
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	require.NoError(t, controllerConn.CreateTopics(topicConfigs...), "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
