package api_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"github.com/klingmotionai-bot/klingmotionai/internal/api"
	"github.com/klingmotionai-bot/klingmotionai/internal/testutil"
)

func multipartFile(
	t *testing.T,
	filename string,
	contentType string,
	content string,
) (string, *bytes.Buffer) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write multipart content: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return writer.FormDataContentType(), body
}

func TestUpload_Success(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	contentType, body := multipartFile(t, "demo clip.mp4", "video/mp4", "video-bytes")

	var response api.UploadResponse
	result := testutil.PostMultipart(env.Router, "/upload", contentType, body, &response)
	testutil.ExpectStatus(t, http.StatusOK, result)

	if !response.Success {
		t.Fatal("expected success response")
	}
	if !strings.Contains(response.FileURL, "/uploads/demo_clip-") {
		t.Errorf("unexpected file url: %s", response.FileURL)
	}
}

func TestUpload_NoFile(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("other", "value")
	_ = writer.Close()

	var response api.ErrorResponse
	result := testutil.PostMultipart(env.Router, "/upload", writer.FormDataContentType(), body, &response)
	testutil.ExpectStatus(t, http.StatusBadRequest, result)
	if response.Error != "NO_FILE_RECEIVED" {
		t.Errorf("unexpected error: %q", response.Error)
	}
}

func TestUpload_RejectsWrongType(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	contentType, body := multipartFile(t, "report.pdf", "application/pdf", "%PDF-1.4")

	var response api.ErrorResponse
	result := testutil.PostMultipart(env.Router, "/upload", contentType, body, &response)
	testutil.ExpectStatus(t, http.StatusBadRequest, result)
	if !strings.Contains(response.Error, "image and video") {
		t.Errorf("unexpected error: %q", response.Error)
	}
}

func TestUpload_RejectsOversize(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	// test env caps uploads at 1 MiB
	contentType, body := multipartFile(t, "big.mp4", "video/mp4", strings.Repeat("x", 2*1024*1024))

	var response api.ErrorResponse
	result := testutil.PostMultipart(env.Router, "/upload", contentType, body, &response)
	testutil.ExpectStatus(t, http.StatusBadRequest, result)
	if response.Error != "File too large" {
		t.Errorf("unexpected error: %q", response.Error)
	}
}

func TestUploadInfo(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	result := testutil.Get(env.Router, "/upload", nil)
	testutil.ExpectStatus(t, http.StatusOK, result)
	if !strings.Contains(string(result.Body), "Upload API") {
		t.Errorf("unexpected body: %s", result.Body)
	}
}
