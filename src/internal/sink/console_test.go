// FILE: vislog/src/internal/sink/console_test.go
package sink

import (
	"bytes"
	"errors"
	"testing"

	"vislog/src/internal/core"
	"vislog/src/internal/format"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingFormatter struct{}

func (failingFormatter) Format(core.Record) ([]byte, error) { return nil, errors.New("boom") }
func (failingFormatter) Name() string                      { return "failing" }

func TestConsoleSink(t *testing.T) {
	logger := log.NewLogger()

	t.Run("BuffersUntilFlush", func(t *testing.T) {
		formatter, err := format.NewRawFormatter(logger)
		require.NoError(t, err)

		var out bytes.Buffer
		s := NewConsoleSink(&out, formatter, logger)

		require.NoError(t, s.Write(core.Record{Message: "first"}))
		require.NoError(t, s.Write(core.Record{Message: "second"}))
		assert.Empty(t, out.String())

		require.NoError(t, s.Flush())
		assert.Equal(t, "first\nsecond\n", out.String())

		stats := s.GetStats()
		assert.Equal(t, "console", stats.Type)
		assert.Equal(t, uint64(2), stats.TotalProcessed)
		assert.Equal(t, uint64(len("first\nsecond\n")), stats.TotalBytes)
		assert.Equal(t, "raw", stats.Details["formatter"])
	})

	t.Run("FormatterError", func(t *testing.T) {
		var out bytes.Buffer
		s := NewConsoleSink(&out, failingFormatter{}, logger)

		err := s.Write(core.Record{Message: "x"})
		assert.EqualError(t, err, "boom")
		assert.Equal(t, uint64(0), s.GetStats().TotalProcessed)
	})
}
