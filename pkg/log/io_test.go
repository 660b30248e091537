package log

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggedReadWriter(t *testing.T) {
	t.Run("Read method logs and passes data", func(t *testing.T) {
		// Setup
		inputData := `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`
		reader := strings.NewReader(inputData)

		var logBuffer bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logBuffer, nil))

		lrw := NewIOLogger(reader, nil, logger)

		// Test Read
		buf := make([]byte, 100)
		n, err := lrw.Read(buf)

		require.NoError(t, err)
		assert.Equal(t, inputData, string(buf[:n]))
		assert.Contains(t, logBuffer.String(), "[stdin]")
		assert.Contains(t, logBuffer.String(), "tools/list")
	})

	t.Run("Write method logs and passes data", func(t *testing.T) {
		// Setup
		outputData := `{"jsonrpc":"2.0","id":1,"result":{}}`
		var writeBuffer bytes.Buffer

		var logBuffer bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logBuffer, nil))

		lrw := NewIOLogger(nil, &writeBuffer, logger)

		// Test Write
		n, err := lrw.Write([]byte(outputData))

		require.NoError(t, err)
		assert.Equal(t, len(outputData), n)
		assert.Equal(t, outputData, writeBuffer.String())
		assert.Contains(t, logBuffer.String(), "[stdout]")
	})

	t.Run("missing streams", func(t *testing.T) {
		lrw := NewIOLogger(nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err := lrw.Read(make([]byte, 4))
		assert.ErrorIs(t, err, io.EOF)

		_, err = lrw.Write([]byte("x"))
		assert.ErrorIs(t, err, io.ErrClosedPipe)
	})
}
