package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferedLogger(buf *bytes.Buffer) *logrus.Logger {
	logger := SetupLogging("debug")
	logger.Out = buf
	return logger
}

func TestSetupLogging_Level(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, SetupLogging("warn").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLogging("chatty").Level)
}

func TestLogData_FieldsAndTimings(t *testing.T) {
	logData := NewLogData(SetupLogging("info"))
	logData.AddData("accountID", "abc")
	stop := logData.AddTiming("depositMs")
	stop()

	entry := logData.Log()
	assert.Equal(t, "abc", entry.Data["accountID"])
	assert.Contains(t, entry.Data, "depositMs")
}

func TestGetLogData(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))

	logData := NewLogData(SetupLogging("info"))
	ctx := WithLogData(context.Background(), logData)
	assert.Same(t, logData, GetLogData(ctx))
}

func TestLoggingWrapper_LogsErrors(t *testing.T) {
	var buf bytes.Buffer
	handler := LoggingWrapper("Status", bufferedLogger(&buf), func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		assert.Same(t, logData, GetLogData(req.Context()))
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/status", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var last map[string]interface{}
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &last))
	assert.Equal(t, "error", last["loglevel"])
	assert.Equal(t, "Handler.Status.Error", last["msg"])
	assert.Contains(t, last, "duration")
}
