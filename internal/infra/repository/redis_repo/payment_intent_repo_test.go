package redis_repo

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const (
	testRedisAddr     = "localhost:6379"
	testRedisPassword = "password"
)

type PaymentIntentRepoTestSuite struct {
	suite.Suite
	intentRepo *PaymentIntentRepo
}

func setupTestRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     testRedisAddr,
		Password: testRedisPassword,
		DB:       1, // 用測試DB
	})
}

func (suite *PaymentIntentRepoTestSuite) SetupTest() {
	rdb := setupTestRedis()
	rdb.FlushDB(context.Background())
	suite.intentRepo = NewPaymentIntentRepo(rdb, time.Hour)
}

func TestPaymentIntentRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentIntentRepoTestSuite))
}

func (suite *PaymentIntentRepoTestSuite) TestSetAndGet() {
	ctx := context.Background()
	record := &PaymentIntentRecord{IntentID: "pi_123", ClientSecret: "pi_123_secret"}

	err := suite.intentRepo.Set(ctx, "session-1", record)
	assert.NoError(suite.T(), err)

	got, err := suite.intentRepo.Get(ctx, "session-1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), record, got)
}

func (suite *PaymentIntentRepoTestSuite) TestGet_NotFound() {
	_, err := suite.intentRepo.Get(context.Background(), "no-such-session")
	assert.ErrorIs(suite.T(), err, ErrIntentNotFound)
}

func (suite *PaymentIntentRepoTestSuite) TestSet_Overwrites() {
	ctx := context.Background()
	suite.intentRepo.Set(ctx, "session-1", &PaymentIntentRecord{IntentID: "pi_old", ClientSecret: "old_secret"})

	// 一個 session 只會有一筆，重寫要整筆覆蓋
	err := suite.intentRepo.Set(ctx, "session-1", &PaymentIntentRecord{IntentID: "pi_new", ClientSecret: "new_secret"})
	assert.NoError(suite.T(), err)

	got, err := suite.intentRepo.Get(ctx, "session-1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "pi_new", got.IntentID)
	assert.Equal(suite.T(), "new_secret", got.ClientSecret)
}

func (suite *PaymentIntentRepoTestSuite) TestDelete() {
	ctx := context.Background()
	suite.intentRepo.Set(ctx, "session-1", &PaymentIntentRecord{IntentID: "pi_123", ClientSecret: "secret"})

	err := suite.intentRepo.Delete(ctx, "session-1")
	assert.NoError(suite.T(), err)

	_, err = suite.intentRepo.Get(ctx, "session-1")
	assert.ErrorIs(suite.T(), err, ErrIntentNotFound)
}

func (suite *PaymentIntentRepoTestSuite) TestSessionsAreIsolated() {
	ctx := context.Background()
	suite.intentRepo.Set(ctx, "session-1", &PaymentIntentRecord{IntentID: "pi_1", ClientSecret: "s1"})
	suite.intentRepo.Set(ctx, "session-2", &PaymentIntentRecord{IntentID: "pi_2", ClientSecret: "s2"})

	got, err := suite.intentRepo.Get(ctx, "session-1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "pi_1", got.IntentID)
}
