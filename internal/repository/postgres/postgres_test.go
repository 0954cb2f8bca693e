package postgres

import (
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/database"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func f64(v float64) *float64 { return &v }

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
