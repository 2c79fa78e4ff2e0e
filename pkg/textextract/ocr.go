package textextract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Scanned court orders and notices uploaded here are English-language;
// tesseract is pinned to that traineddata set.
const ocrLanguage = "eng"

// extractImage shells out to tesseract for scanned uploads. Tesseract
// missing on the host surfaces as an unreadable-file error so the
// handler can reject the upload instead of crashing.
func extractImage(ctx context.Context, data []byte, ext string) (string, error) {
	bin, err := exec.LookPath("tesseract")
	if err != nil {
		return "", fmt.Errorf("image OCR unavailable: %w", err)
	}

	path, err := writeScanTemp(data, ext)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, path, "stdout", "-l", ocrLanguage)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("tesseract OCR: %v: %s", err, msg)
		}
		return "", fmt.Errorf("tesseract OCR: %w", err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// writeScanTemp drops the uploaded image to disk; tesseract only reads
// files, not pipes, for multi-page formats.
func writeScanTemp(data []byte, ext string) (string, error) {
	tmp, err := os.CreateTemp("", "scan-*"+ext)
	if err != nil {
		return "", fmt.Errorf("ocr temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("ocr temp write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("ocr temp close: %w", err)
	}
	return tmp.Name(), nil
}
