package format

import (
	"errors"
	"testing"

	"vislog/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextFormatter(t *testing.T) {
	logger := newTestLogger()
	t.Run("InvalidTemplate", func(t *testing.T) {
		_, err := NewTextFormatter("{{ .Time | InvalidFunc }}", isoFormat, logger)
		require.Error(t, err)
		var ce *core.ConfigurationError
		assert.True(t, errors.As(err, &ce))
		assert.Contains(t, err.Error(), "invalid template")
	})
}

func TestTextFormatter_Format(t *testing.T) {
	logger := newTestLogger()
	rec := testRecord()

	t.Run("CustomTemplate", func(t *testing.T) {
		f, err := NewTextFormatter("{{.Level}}:{{.Component}}:{{.Message}}", isoFormat, logger)
		require.NoError(t, err)

		out, err := f.Format(rec)
		require.NoError(t, err)
		assert.Equal(t, "WARN:server:rate limit exceeded\n", string(out))
	})

	t.Run("Helpers", func(t *testing.T) {
		f, err := NewTextFormatter("[{{.Time | FmtTime}}] {{.Level | ToLower}} {{.Logger | ToUpper}} {{.PID}}", isoFormat, logger)
		require.NoError(t, err)

		out, err := f.Format(rec)
		require.NoError(t, err)
		assert.Equal(t, "[2024-07-09 09:09:27] warn DEFAULT 1\n", string(out))
	})

	t.Run("MissingKey", func(t *testing.T) {
		f, err := NewTextFormatter("{{.Host}}", isoFormat, logger)
		require.NoError(t, err)

		_, err = f.Format(rec)
		assert.Error(t, err)
	})
}
