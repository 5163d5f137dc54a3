package database

import (
	"database/sql"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutURLReturnsNil(t *testing.T) {
	pool, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.Nil(t, pool, "empty URL means run on the in-memory store")
}

func TestDefaultConfigStaysSmall(t *testing.T) {
	cfg := DefaultConfig()
	assert.LessOrEqual(t, cfg.MaxIdleConns, cfg.MaxOpenConns)
	assert.Positive(t, cfg.ConnMaxLifetime)
	assert.Positive(t, cfg.ConnMaxIdleTime)
}

func TestRecordPoolStatsExportsGauges(t *testing.T) {
	recordPoolStats(sql.DBStats{
		OpenConnections: 7,
		InUse:           2,
		Idle:            5,
		WaitCount:       3,
	})

	assert.Equal(t, 7.0, testutil.ToFloat64(dbPoolOpenConns))
	assert.Equal(t, 2.0, testutil.ToFloat64(dbPoolInUseConns))
	assert.Equal(t, 5.0, testutil.ToFloat64(dbPoolIdleConns))
	assert.Equal(t, 3.0, testutil.ToFloat64(dbPoolWaitCount))
}
