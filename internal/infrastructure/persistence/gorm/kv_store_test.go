package gorm_test

import (
	"context"
	"sync"
	"testing"

	gormstore "github.com/chefaid/chefaid/internal/infrastructure/persistence/gorm"
	"github.com/chefaid/chefaid/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm/logger"
)

// KVStoreTestSuite runs the GORM store against in-memory SQLite
type KVStoreTestSuite struct {
	suite.Suite
	store *gormstore.KVStore
	ctx   context.Context
}

func (suite *KVStoreTestSuite) SetupTest() {
	db, err := sqlite.SetupDatabase(":memory:", logger.Silent)
	require.NoError(suite.T(), err)
	suite.store = gormstore.NewKVStore(db)
	suite.ctx = context.Background()
}

func (suite *KVStoreTestSuite) TestGet_Missing() {
	value, ok, err := suite.store.Get(suite.ctx, "chef_aid_api_key")

	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
	assert.Empty(suite.T(), value)
}

func (suite *KVStoreTestSuite) TestSet_ThenOverwrite() {
	// Arrange
	require.NoError(suite.T(), suite.store.Set(suite.ctx, "chef_aid_num_people", "4"))

	// Act
	require.NoError(suite.T(), suite.store.Set(suite.ctx, "chef_aid_num_people", "6"))
	value, ok, err := suite.store.Get(suite.ctx, "chef_aid_num_people")

	// Assert
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "6", value)
}

func (suite *KVStoreTestSuite) TestSet_EmptyValueIsStored() {
	require.NoError(suite.T(), suite.store.Set(suite.ctx, "chef_aid_api_key", ""))

	value, ok, err := suite.store.Get(suite.ctx, "chef_aid_api_key")

	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "", value)
}

func (suite *KVStoreTestSuite) TestKeysAreIndependent() {
	require.NoError(suite.T(), suite.store.Set(suite.ctx, "a", "1"))
	require.NoError(suite.T(), suite.store.Set(suite.ctx, "b", "2"))
	require.NoError(suite.T(), suite.store.Delete(suite.ctx, "a"))

	_, okA, _ := suite.store.Get(suite.ctx, "a")
	valueB, okB, _ := suite.store.Get(suite.ctx, "b")

	assert.False(suite.T(), okA)
	assert.True(suite.T(), okB)
	assert.Equal(suite.T(), "2", valueB)
	assert.NoError(suite.T(), suite.store.Delete(suite.ctx, "missing"))
}

func (suite *KVStoreTestSuite) TestConcurrentWrites() {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(suite.T(), suite.store.Set(suite.ctx, "chef_aid_num_people", "3"))
		}()
	}
	wg.Wait()

	value, ok, err := suite.store.Get(suite.ctx, "chef_aid_num_people")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "3", value)
}

func (suite *KVStoreTestSuite) TestPing() {
	assert.NoError(suite.T(), suite.store.Ping(suite.ctx))
}

func TestKVStoreTestSuite(t *testing.T) {
	suite.Run(t, new(KVStoreTestSuite))
}
