package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"workshop-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWithOptionalTimeout(t *testing.T) {
	ctx, cancel := withOptionalTimeout(context.Background(), 0)
	defer cancel()
	_, hasDeadline := ctx.Deadline()
	assert.False(t, hasDeadline, "zero timeout must not expire immediately")
	assert.NoError(t, ctx.Err())

	ctx, cancel = withOptionalTimeout(context.Background(), -time.Second)
	defer cancel()
	assert.NoError(t, ctx.Err())

	ctx, cancel = withOptionalTimeout(context.Background(), time.Minute)
	defer cancel()
	deadline, hasDeadline := ctx.Deadline()
	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestGormLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")
	log := logger.NewLoggerWithOptions(logger.Options{Level: "info", File: path, MaxSizeMB: 1})
	gl := NewGormLogger(log)

	query := func() (string, int64) { return `SELECT * FROM "job_cards" WHERE drive_id = 'N'`, 0 }
	gl.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	gl.Trace(context.Background(), time.Now(), query, errors.New("relation \"job_cards\" does not exist"))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(out), `does not exist`)
	assert.Contains(t, string(out), `"component":"gorm"`)
	assert.NotContains(t, string(out), "record not found")
}
