package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesseract-hub/property-service/internal/models"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level  string
		format string
		want   logrus.Level
		json   bool
	}{
		{"debug", "json", logrus.DebugLevel, true},
		{"warn", "text", logrus.WarnLevel, false},
		{"error", "json", logrus.ErrorLevel, true},
		{"bogus", "", logrus.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := newLogger(tt.level, tt.format)
			assert.Equal(t, tt.want, logger.GetLevel())
			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.json, isJSON)
		})
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLI_SeedThenExport(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "property.db"))
	t.Setenv("DOCUMENT_STORAGE_PATH", filepath.Join(dir, "documents"))
	t.Setenv("LOG_LEVEL", "error")

	_, err := runCLI(t, "--storage", "sqlite", "seed")
	require.NoError(t, err)

	_, err = runCLI(t, "--storage", "sqlite", "seed")
	assert.Error(t, err, "seeding a populated store requires --force")

	_, err = runCLI(t, "--storage", "sqlite", "seed", "--force")
	require.NoError(t, err)

	out, err := runCLI(t, "--storage", "sqlite", "export", "properties", "-f", "json")
	require.NoError(t, err)
	var props []models.Property
	require.NoError(t, json.Unmarshal([]byte(out), &props))
	assert.Len(t, props, 4)

	out, err = runCLI(t, "--storage", "sqlite", "report")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `"Metric","Value"`))

	out, err = runCLI(t, "--storage", "sqlite", "sync")
	require.NoError(t, err)
	var result models.SyncResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, models.SourceLocal, result.Source)
	require.NotNil(t, result.Dashboard)
	assert.Equal(t, 4, result.Dashboard.PropertyCount)
}

func TestCLI_ExportErrors(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOCUMENT_STORAGE_PATH", filepath.Join(dir, "documents"))
	t.Setenv("LOG_LEVEL", "error")

	_, err := runCLI(t, "--storage", "memory", "export", "properties", "-f", "xml")
	assert.Error(t, err)

	_, err = runCLI(t, "--storage", "memory", "export", "garages")
	assert.Error(t, err)

	_, err = runCLI(t, "--storage", "memory", "export")
	assert.Error(t, err)
}
