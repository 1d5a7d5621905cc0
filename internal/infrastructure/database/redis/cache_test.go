package redis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
)

type CacheTestSuite struct {
	suite.Suite
	client *Client
	mock   redismock.ClientMock
	cache  Cache
}

func (s *CacheTestSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock
	s.client = &Client{
		rdb:    db,
		config: &Config{},
		logger: logging.NewNopLogger(),
	}
	s.cache = NewCache(s.client, logging.NewNopLogger(), WithPrefix("test:"))
}

func (s *CacheTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

type cachedDoc struct {
	StructureKey string `json:"structure_key"`
	Formula      string `json:"formula"`
}

func (s *CacheTestSuite) TestGet_CacheHit() {
	val := cachedDoc{StructureKey: "LFQSCWFLJHTTHZ", Formula: "C2H6O"}
	data, _ := json.Marshal(val)

	s.mock.ExpectGet("test:doc1").SetVal(string(data))

	var dest cachedDoc
	err := s.cache.Get(context.Background(), "doc1", &dest)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), val, dest)
}

func (s *CacheTestSuite) TestGet_CacheMiss() {
	s.mock.ExpectGet("test:doc1").RedisNil()

	var dest cachedDoc
	err := s.cache.Get(context.Background(), "doc1", &dest)
	assert.Equal(s.T(), ErrCacheMiss, err)
}

func (s *CacheTestSuite) TestGet_NullCacheMarker() {
	s.mock.ExpectGet("test:doc1").SetVal(nullSentinel)

	var dest cachedDoc
	err := s.cache.Get(context.Background(), "doc1", &dest)
	assert.Equal(s.T(), ErrCacheMiss, err)
}

func (s *CacheTestSuite) TestDelete() {
	s.mock.ExpectDel("test:k1", "test:k2").SetVal(2)

	err := s.cache.Delete(context.Background(), "k1", "k2")
	assert.NoError(s.T(), err)
}

func (s *CacheTestSuite) TestExists() {
	s.mock.ExpectExists("test:k1").SetVal(1)

	exists, err := s.cache.Exists(context.Background(), "k1")
	assert.NoError(s.T(), err)
	assert.True(s.T(), exists)
}

func (s *CacheTestSuite) TestGetOrSet_HitSkipsLoader() {
	val := cachedDoc{StructureKey: "ABCD", Formula: "C6H6"}
	data, _ := json.Marshal(val)

	s.mock.ExpectGet("test:doc2").SetVal(string(data))

	loaderCalled := false
	var dest cachedDoc
	err := s.cache.GetOrSet(context.Background(), "doc2", &dest, 0,
		func(ctx context.Context) (interface{}, error) {
			loaderCalled = true
			return nil, nil
		})
	assert.NoError(s.T(), err)
	assert.False(s.T(), loaderCalled)
	assert.Equal(s.T(), val, dest)
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

//Personal.AI order the ending
