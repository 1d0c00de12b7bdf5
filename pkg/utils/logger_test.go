package utils

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_ServiceFieldOnEveryLine(t *testing.T) {
	logger := NewLogger("pricewatch")

	var buf bytes.Buffer
	logger.Logger.SetOutput(&buf)
	logger.Logger.SetFormatter(&logrus.JSONFormatter{})

	logger.Info("hello")
	logger.WithField("asset", "BTC-USD").Warn("again")

	output := buf.String()
	assert.Contains(t, output, `"service":"pricewatch"`)
	assert.Contains(t, output, `"asset":"BTC-USD"`)
}
