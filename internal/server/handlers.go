package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/advert-generator/internal/archive"
	"github.com/jonathan/advert-generator/internal/db"
	"github.com/jonathan/advert-generator/internal/pipeline"
	"github.com/jonathan/advert-generator/internal/server/middleware"
)

// MaxBatchFiles caps the number of files in one batch request.
const MaxBatchFiles = 50

// advertRequest is the JSON body of POST /adverts.
type advertRequest struct {
	Name string `json:"name" validate:"max=255"`
	Text string `json:"text" validate:"max=200000"`
	URL  string `json:"url" validate:"omitempty,http_url"`
}

type extractResponse struct {
	Name  string `json:"name"`
	Text  string `json:"text"`
	Chars int    `json:"chars"`
}

type previewResponse struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	AdvertText string    `json:"advert_text"`
}

type listResponse struct {
	Adverts []db.Advert `json:"adverts"`
	Count   int         `json:"count"`
}

// handleExtract returns the text extracted from an uploaded file, so users
// can check it before generating.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.readUpload(w, r, "file")
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}

	text, err := s.extractor.Extract(r.Context(), name, data)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if strings.TrimSpace(text) == "" {
		s.errorFrom(w, r, fmt.Errorf("%s: %w", name, pipeline.ErrNoTextExtracted))
		return
	}

	s.jsonResponse(w, http.StatusOK, extractResponse{Name: name, Text: text, Chars: len([]rune(text))})
}

// handleCreateAdvert converts one job description, given as a multipart file
// or as JSON text or URL, and returns the document.
func (s *Server) handleCreateAdvert(w http.ResponseWriter, r *http.Request) {
	in, err := s.readAdvertInput(w, r)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}

	log.Ctx(r.Context()).Info().Str("client", requester(r)).Str("name", in.Name).Msg("advert requested")
	out, err := s.pipeline.Convert(r.Context(), in)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}

	w.Header().Set("X-Advert-ID", out.ID.String())
	if preview, _ := strconv.ParseBool(r.URL.Query().Get("preview")); preview {
		s.jsonResponse(w, http.StatusOK, previewResponse{ID: out.ID, FileName: out.FileName, AdvertText: out.AdvertText})
		return
	}
	s.fileResponse(w, r, out.FileName, out.ContentType, out.Bytes)
}

func (s *Server) readAdvertInput(w http.ResponseWriter, r *http.Request) (pipeline.Input, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		name, data, err := s.readUpload(w, r, "file")
		if err != nil {
			return pipeline.Input{}, err
		}
		return pipeline.Input{Name: name, Data: data}, nil
	}

	var req advertRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxUpload)).Decode(&req); err != nil {
		return pipeline.Input{}, &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if err := s.validateRequest(&req); err != nil {
		return pipeline.Input{}, err
	}
	if strings.TrimSpace(req.Text) == "" && req.URL == "" {
		return pipeline.Input{}, &ErrValidation{Field: "text", Message: "text or url is required"}
	}
	return pipeline.Input{Name: req.Name, Text: req.Text, URL: req.URL}, nil
}

// handleBatch converts every uploaded file and returns a zip archive holding
// one document or error note per file, in upload order.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.errorFrom(w, r, &ErrValidation{Field: "files", Message: "expected a multipart upload"})
		return
	}

	headers := r.MultipartForm.File["files"]
	switch {
	case len(headers) == 0:
		s.errorFrom(w, r, &ErrValidation{Field: "files", Message: "at least one file is required"})
		return
	case len(headers) > MaxBatchFiles:
		s.errorFrom(w, r, &ErrValidation{Field: "files", Message: fmt.Sprintf("at most %d files per batch", MaxBatchFiles)})
		return
	}

	inputs := make([]pipeline.Input, 0, len(headers))
	for _, fh := range headers {
		data, err := readFileHeader(fh)
		if err != nil {
			s.errorFrom(w, r, &ErrValidation{Field: "files", Message: fmt.Sprintf("could not read %s", fh.Filename)})
			return
		}
		inputs = append(inputs, pipeline.Input{Name: fh.Filename, Data: data})
	}

	log.Ctx(r.Context()).Info().Str("client", requester(r)).Int("files", len(inputs)).Msg("batch requested")
	result := s.pipeline.Batch(r.Context(), inputs)
	zipData, err := archive.Package(result)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}

	w.Header().Set("X-Batch-ID", result.ID.String())
	w.Header().Set("X-Batch-Summary", result.Summary())
	s.fileResponse(w, r, "job_adverts.zip", archive.ContentType, zipData)
}

// handleListAdverts lists recent adverts from the history.
func (s *Server) handleListAdverts(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorFrom(w, r, ErrHistoryDisabled)
		return
	}

	filters, err := parseFilters(r)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}

	adverts, err := s.store.ListAdverts(r.Context(), filters)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if adverts == nil {
		adverts = []db.Advert{}
	}

	s.jsonResponse(w, http.StatusOK, listResponse{Adverts: adverts, Count: len(adverts)})
}

func parseFilters(r *http.Request) (db.AdvertFilters, error) {
	q := r.URL.Query()
	var filters db.AdvertFilters

	if status := q.Get("status"); status != "" {
		switch status {
		case db.StatusSuccess, db.StatusSkipped, db.StatusFailed:
			filters.Status = status
		default:
			return filters, &ErrValidation{Field: "status", Message: "must be success, skipped or failed"}
		}
	}
	if batchID := q.Get("batch_id"); batchID != "" {
		id, err := uuid.Parse(batchID)
		if err != nil {
			return filters, &ErrValidation{Field: "batch_id", Message: "must be a UUID"}
		}
		filters.BatchID = id
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > 200 {
			return filters, &ErrValidation{Field: "limit", Message: "must be between 1 and 200"}
		}
		filters.Limit = n
	}
	if offset := q.Get("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			return filters, &ErrValidation{Field: "offset", Message: "must be a non-negative integer"}
		}
		filters.Offset = n
	}
	return filters, nil
}

// handleGetDocument downloads a stored advert document.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorFrom(w, r, ErrHistoryDisabled)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorFrom(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	advert, err := s.store.GetAdvert(r.Context(), id)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if advert == nil || !advert.HasDocument() {
		s.errorFrom(w, r, ErrNotFound)
		return
	}

	contentType := advert.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	s.fileResponse(w, r, advert.FileName, contentType, advert.Document)
}

// readUpload reads one multipart file field.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, &ErrValidation{Field: field, Message: fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit)}
		}
		return "", nil, &ErrValidation{Field: field, Message: "a file upload is required"}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, &ErrValidation{Field: field, Message: "could not read upload"}
	}
	return header.Filename, data, nil
}

// requester names the authenticated client, or "anonymous" when auth is off.
func requester(r *http.Request) string {
	if c, err := middleware.GetClient(r); err == nil {
		return c.Name
	}
	return "anonymous"
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// validateRequest runs struct tag validation and reports the first failure.
func (s *Server) validateRequest(req any) error {
	if err := s.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ErrValidation{Field: strings.ToLower(fe.Field()), Message: "failed " + fe.Tag() + " check"}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// fileResponse writes a download.
func (s *Server) fileResponse(w http.ResponseWriter, r *http.Request, fileName, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Str("file", fileName).Msg("failed to write download")
	}
}
