package postgres_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TickLockerIntegrationTestSuite verifies that advisory locks serialize
// concurrent ticks and release when the holder finishes.
type TickLockerIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	locker    *postgres.GormTickLocker
}

func (suite *TickLockerIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.locker = postgres.NewGormTickLocker(db)
}

func (suite *TickLockerIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TickLockerIntegrationTestSuite) TestWithLock_RunsFunctionWhileHoldingLock() {
	ctx := context.Background()
	ran := false

	err := suite.locker.WithLock(ctx, 100, func(_ context.Context) error {
		ran = true
		return nil
	})

	suite.Require().NoError(err)
	suite.True(ran)
}

func (suite *TickLockerIntegrationTestSuite) TestWithLock_SecondHolderIsRejected() {
	ctx := context.Background()
	holding := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- suite.locker.WithLock(ctx, 200, func(_ context.Context) error {
			close(holding)
			<-release
			return nil
		})
	}()

	<-holding
	err := suite.locker.WithLock(ctx, 200, func(_ context.Context) error {
		suite.Fail("second holder must not run")
		return nil
	})
	suite.ErrorIs(err, ports.ErrLockNotAcquired)

	close(release)
	suite.Require().NoError(<-done)
}

func (suite *TickLockerIntegrationTestSuite) TestWithLock_DifferentKeysDoNotContend() {
	ctx := context.Background()
	holding := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- suite.locker.WithLock(ctx, 300, func(_ context.Context) error {
			close(holding)
			<-release
			return nil
		})
	}()

	<-holding
	ran := false
	err := suite.locker.WithLock(ctx, 301, func(_ context.Context) error {
		ran = true
		return nil
	})
	suite.Require().NoError(err)
	suite.True(ran)

	close(release)
	suite.Require().NoError(<-done)
}

func (suite *TickLockerIntegrationTestSuite) TestWithLock_ReleasedAfterCompletion() {
	ctx := context.Background()

	suite.Require().NoError(suite.locker.WithLock(ctx, 400, func(_ context.Context) error {
		return nil
	}))

	ran := false
	suite.Require().NoError(suite.locker.WithLock(ctx, 400, func(_ context.Context) error {
		ran = true
		return nil
	}))
	suite.True(ran)
}

func TestTickLockerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TickLockerIntegrationTestSuite))
}
