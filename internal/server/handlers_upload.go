package server

import (
	"errors"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/jonathan/resume-analyzer/internal/upload"
)

const (
	// uploadField is the multipart form field holding the file
	uploadField = "file"
	// multipartOverhead is the room left for boundaries and headers on top of the file limit
	multipartOverhead = 64 << 10
	// maxFormMemory is kept in memory before parts spill to disk
	maxFormMemory = 1 << 20
)

// handleUpload validates, analyzes and stores one file, answering with the record
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, err := s.readUpload(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	record, err := s.flow.Run(r.Context(), file, upload.Hooks{})
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, record)
}

// handleUploadStream does what handleUpload does but reports flow states and
// progress as Server-Sent Events. Invalid uploads are answered with plain JSON.
func (s *Server) handleUploadStream(w http.ResponseWriter, r *http.Request) {
	file, err := s.readUpload(w, r)
	if err == nil {
		err = upload.Validate(file, s.flow.MaxSize())
	}
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	hooks := upload.Hooks{
		OnState: func(state upload.State) {
			// the stream ends with complete or error, not the return to idle
			if state == upload.StateIdle {
				return
			}
			if err := sse.WriteState(state); err != nil {
				log.Printf("[server] Error writing SSE event: %v", err)
			}
		},
		OnProgress: func(p analysis.Progress) {
			if err := sse.WriteProgress(p); err != nil {
				log.Printf("[server] Error writing SSE event: %v", err)
			}
		},
	}

	record, err := s.flow.Run(r.Context(), file, hooks)
	if err != nil {
		sse.WriteError(err)
		return
	}
	sse.WriteComplete(record)
}

// readUpload extracts the upload descriptor from a multipart request.
// Bodies larger than the upload limit are reported as a size validation error.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (types.UploadFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.flow.MaxSize()+multipartOverhead)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return types.UploadFile{}, &types.ErrValidation{Field: "size", Message: upload.TooLargeMessage(s.flow.MaxSize())}
		}
		return types.UploadFile{}, &ErrBadRequest{Message: "invalid multipart form: " + err.Error()}
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	f, header, err := r.FormFile(uploadField)
	if err != nil {
		return types.UploadFile{}, &ErrBadRequest{Message: "multipart field \"file\" is required"}
	}
	defer f.Close()

	mimeType, err := detectMediaType(header.Header.Get("Content-Type"), f)
	if err != nil {
		return types.UploadFile{}, err
	}

	return types.UploadFile{
		Name:     header.Filename,
		Size:     header.Size,
		MimeType: mimeType,
	}, nil
}

// detectMediaType trusts the declared part type unless it is missing or generic,
// in which case the content is sniffed
func detectMediaType(declared string, content io.Reader) (string, error) {
	if declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != "application/octet-stream" {
			return mediaType, nil
		}
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(head[:n]))
	return mediaType, nil
}
