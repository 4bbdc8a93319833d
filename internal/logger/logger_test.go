package logger

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestFormatFields(t *testing.T) {
	assert.Equal(t, "", formatFields(nil))
	assert.Equal(t, "{a=1, b=x, c=0.50}", formatFields(Fields{"c": 0.5, "a": 1, "b": "x"}))
}

func TestLevels(t *testing.T) {
	buf := captureLog(t)

	Info("hello", Fields{"k": "v"})
	Warn("careful", nil)
	Debug("detail", Fields{"n": int64(3)})
	Error("boom", errors.New("bad"), Fields{"request_id": "r1"})

	out := buf.String()
	assert.Contains(t, out, "[INFO] hello {k=v}")
	assert.Contains(t, out, "[WARN] careful")
	assert.Contains(t, out, "[DEBUG] detail {n=3}")
	assert.Contains(t, out, "[ERROR] boom: bad {request_id=r1}")
}

func TestLogValidation(t *testing.T) {
	buf := captureLog(t)

	LogValidation(context.Background(), "second", true, 96, 3*time.Millisecond, nil)
	assert.Contains(t, buf.String(), "species=second")
	assert.Contains(t, buf.String(), "score=96")
}

func TestWithContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/v1/validate", nil)
	c.Set("request_id", "abc")
	c.Set("user_id", "u1")

	f := WithContext(c)
	assert.Equal(t, "abc", f["request_id"])
	assert.Equal(t, "POST", f["method"])
	assert.Equal(t, "/api/v1/validate", f["path"])
	assert.Equal(t, "u1", f["user_id"])
}
