package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileSink_SaveCalendar(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink := NewFileSink(dir, zap.NewNop())

	t.Run("creates directory and writes file", func(t *testing.T) {
		path, err := sink.SaveCalendar(context.Background(), "meal_plan.ics", []byte("BEGIN:VCALENDAR\r\n"))

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "meal_plan.ics"), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "BEGIN:VCALENDAR\r\n", string(data))
	})

	t.Run("overwrites previous export", func(t *testing.T) {
		path, err := sink.SaveCalendar(context.Background(), "meal_plan.ics", []byte("second"))

		require.NoError(t, err)
		data, _ := os.ReadFile(path)
		assert.Equal(t, "second", string(data))

		entries, _ := os.ReadDir(dir)
		assert.Len(t, entries, 1, "temp files must not be left behind")
	})

	t.Run("rejects paths", func(t *testing.T) {
		_, err := sink.SaveCalendar(context.Background(), "../escape.ics", []byte("x"))

		assert.Error(t, err)
	})

	t.Run("honours cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := sink.SaveCalendar(ctx, "meal_plan.ics", []byte("x"))

		assert.ErrorIs(t, err, context.Canceled)
	})
}
