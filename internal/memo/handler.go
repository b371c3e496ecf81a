package memo

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/picmemo/service/internal/config"
	"github.com/picmemo/service/internal/middleware"
	"github.com/picmemo/service/internal/response"
	"github.com/picmemo/service/internal/storage"
)

// maxMultipartMemory bounds how much of a multipart body is held in memory
// while parsing; the rest spools to disk.
const maxMultipartMemory = 32 << 20

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Handler holds HTTP handlers for memo endpoints.
type Handler struct {
	svc    *Service
	policy config.UploadPolicy
}

// NewHandler creates a new memo Handler.
func NewHandler(svc *Service, policy config.UploadPolicy) *Handler {
	return &Handler{svc: svc, policy: policy}
}

// callerID extracts the authenticated user's id from the request context.
func callerID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(middleware.UserIDKey).(string)
	return id, ok && id != ""
}

// writeError maps service failures onto HTTP responses. Provider detail
// stays in the server log; callers get a generic retry-later message.
func writeError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(w, verr.Reason)
	case errors.Is(err, ErrNotFound), errors.Is(err, storage.ErrNotFound):
		response.NotFound(w, "memo not found")
	case storage.IsStorageErr(err):
		log.Printf("memo: storage failure: %v", err)
		response.Error(w, http.StatusInternalServerError, "file operation failed, please try again later")
	default:
		log.Printf("memo: unexpected error: %v", err)
		response.InternalError(w)
	}
}

// Create godoc
//
//	@Summary		Create memo
//	@Description	Upload an image with a title and optional description. The image is stored privately and served back only through this API.
//	@Tags			memos
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			title		formData	string	true	"Title (max 255 chars)"
//	@Param			description	formData	string	false	"Description (max 1000 chars)"
//	@Param			image		formData	file	true	"Image file"
//	@Success		201	{object}	response.Envelope{data=Memo}
//	@Failure		400	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/memos [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.BadRequest(w, "invalid multipart request")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := r.FormValue("description")
	if title == "" {
		response.BadRequest(w, "title is required")
		return
	}
	if len(title) > 255 {
		response.BadRequest(w, "title must be 255 characters or fewer")
		return
	}
	if len(description) > 1000 {
		response.BadRequest(w, "description must be 1000 characters or fewer")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "image file is required")
		return
	}
	defer file.Close()

	upload := &Upload{Filename: header.Filename, Size: header.Size}
	contentType := header.Header.Get("Content-Type")

	m, err := h.svc.Create(r.Context(), ownerID, title, description, upload, file, contentType)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, m)
}

// List godoc
//
//	@Summary		List memos
//	@Description	Returns the caller's memos ordered by creation time, newest first.
//	@Tags			memos
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page	query		int	false	"Page number (0-based)"
//	@Param			size	query		int	false	"Page size (max 100)"
//	@Success		200	{object}	response.Envelope{data=Page}
//	@Failure		401	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/memos [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", defaultPageSize)
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	result, err := h.svc.List(r.Context(), ownerID, page, size)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, result)
}

// Get godoc
//
//	@Summary		Get memo
//	@Description	Returns a single memo owned by the caller.
//	@Tags			memos
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Memo ID"
//	@Success		200	{object}	response.Envelope{data=Memo}
//	@Failure		401	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/memos/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	m, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, m)
}

// Delete godoc
//
//	@Summary		Delete memo
//	@Description	Deletes the memo and its stored image. The image is removed first; if that fails the memo remains so the delete can be retried.
//	@Tags			memos
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Memo ID"
//	@Success		200	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/memos/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), ownerID); err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, map[string]bool{"deleted": true})
}

// ServeImage godoc
//
//	@Summary		Download memo image
//	@Description	Streams the memo's image through the application. The storage location is never exposed; access requires ownership.
//	@Tags			memos
//	@Produce		image/jpeg
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Memo ID"
//	@Success		200	{file}		binary
//	@Failure		401	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/memos/{id}/image [get]
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	result, err := h.svc.Serve(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(result.ContentLength, 10))
	w.Header().Set("Cache-Control", "max-age="+strconv.Itoa(h.policy.CacheMaxAge)+", private")

	// Relay incrementally; a copy error here means the client went away
	// mid-stream and the deferred close releases the object stream.
	if _, err := io.Copy(w, result.Body); err != nil {
		log.Printf("memo: image stream interrupted: %v", err)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
