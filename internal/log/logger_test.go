package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDebugLevels(t *testing.T) {
	defer ClearDebugLevel(DebugLevelApi | DebugLevelSql)

	SetDebugLevelStrs("sql, bogus")
	require.Equal(t, DebugLevelSql, GetDebugLevel())

	SetDebugLevelStrs("api")
	require.Equal(t, DebugLevelApi|DebugLevelSql, GetDebugLevel())

	ClearDebugLevel(DebugLevelSql)
	require.Equal(t, DebugLevelApi, GetDebugLevel())
}
