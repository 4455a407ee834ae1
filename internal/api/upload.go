package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/klingmotionai-bot/klingmotionai/internal/upload"
)

type UploadResponse struct {
	Success bool   `json:"success"`
	FileURL string `json:"fileUrl"`
}

// Upload accepts a multipart "file" field and stores it.
func (a *API) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > a.maxUploadBytes {
			logApiErr(r, "upload over size limit")
			returnJsonStatus(&ErrorResponse{Success: false, Error: "File too large"}, http.StatusBadRequest, w)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				logApiErr(r, "upload over size limit")
				returnJsonStatus(&ErrorResponse{Success: false, Error: "File too large"}, http.StatusBadRequest, w)
				return
			}
			logApiErr(r, fmt.Sprintf("no file in upload: %v", err))
			returnJsonStatus(&ErrorResponse{Success: false, Error: "NO_FILE_RECEIVED"}, http.StatusBadRequest, w)
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !upload.AllowedType(contentType) {
			logApiErr(r, fmt.Sprintf("rejected upload content type %q", contentType))
			returnJsonStatus(&ErrorResponse{Success: false, Error: "Only image and video files are allowed"}, http.StatusBadRequest, w)
			return
		}

		fileURL, err := a.uploads.Save(r.Context(), header.Filename, contentType, file)
		if err != nil {
			logApiErr(r, fmt.Sprintf("couldn't store upload: %v", err))
			returnJsonStatus(&ErrorResponse{Success: false, Error: "Upload failed"}, http.StatusBadRequest, w)
			return
		}

		returnJson(&UploadResponse{Success: true, FileURL: fileURL}, w)
	}
}

// UploadInfo is a small human-readable page describing the upload endpoint.
func (a *API) UploadInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w,
			`<!DOCTYPE html><html><head><meta charset="utf-8"><title>Upload API</title></head>`+
				`<body><h1>Upload API</h1><p>POST to this URL with a <code>file</code> field to upload. `+
				`Used by the frontend at <a href="%[1]s">%[1]s</a>.</p></body></html>`,
			a.frontendURL)
	}
}
