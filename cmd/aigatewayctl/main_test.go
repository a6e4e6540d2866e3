package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/aigateway/config"
	apperrors "github.com/kbukum/aigateway/errors"
	"github.com/kbukum/aigateway/expense"
	"github.com/kbukum/aigateway/gateway"
	"github.com/kbukum/aigateway/logger"
)

// execute runs the CLI against a mock-mode gateway and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	gw, err := gateway.New(&config.GatewayConfig{MockMode: true}, gateway.WithLogger(logger.NewNop()))
	require.NoError(t, err)

	var out bytes.Buffer
	c := &cli{
		out: &out,
		with: func(ctx context.Context, _ *cli, task func(ctx context.Context, gw client) error) error {
			return task(ctx, gw)
		},
	}
	root := c.rootCmd()
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestExtractDefaultsToSample(t *testing.T) {
	out, err := execute(t, "extract")
	require.NoError(t, err)
	assert.Contains(t, out, "กาแฟ")
	assert.Contains(t, out, "3 expenses")
}

func TestExtractJSON(t *testing.T) {
	out, err := execute(t, "--json", "extract", "coffee 60")
	require.NoError(t, err)

	var r expense.Result
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Len(t, r.Expenses, 3)
	assert.Equal(t, 85.0, r.Total)
	assert.True(t, r.Expenses[2].Price.IsDash())
}

func TestAsk(t *testing.T) {
	out, err := execute(t, "ask", "how", "much?")
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 85`)
}

func TestAskRequiresQuestion(t *testing.T) {
	_, err := execute(t, "ask")
	assert.Error(t, err)
}

func TestOCR(t *testing.T) {
	path := writeFile(t, "scan.png", pngHeader)

	out, err := execute(t, "ocr", "--box-threshold", "0.3", path)
	require.NoError(t, err)
	assert.Contains(t, out, "== receipt.jpg [success]")
	assert.Contains(t, out, "-- page 1, 1 boxes")
	assert.Contains(t, out, "กาแฟ 60 บาท")
}

func TestOCRRejectsText(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("just some plain text\n"))

	_, err := execute(t, "ocr", path)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestOCRMissingFile(t *testing.T) {
	_, err := execute(t, "ocr", filepath.Join(t.TempDir(), "absent.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTranscribe(t *testing.T) {
	path := writeFile(t, "voice.bin", []byte{0x00, 0x01, 0x02, 0x03, 0xfe, 0xff})

	out, err := execute(t, "transcribe", path)
	require.NoError(t, err)
	assert.Contains(t, out, "== voice_01.m4a [success] 10.9s")
	assert.Contains(t, out, "SPEAKER_00: มื้อเย็นกินสุกี้สองร้อยห้าสิบบาท")
}

func TestTranscribeRejectsImage(t *testing.T) {
	path := writeFile(t, "scan.png", pngHeader)

	_, err := execute(t, "transcribe", path)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, binaryName)
}
