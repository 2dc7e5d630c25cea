package blogs

import (
	"errors"
	"mime"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"

	"blogapi/utils"
)

const imageField = "image"

type Handler struct {
	svc       *Service
	maxUpload int64
}

func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, maxUpload: maxUploadBytes}
}

func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	posts, err := h.svc.List(r.Context(), FilterFromQuery(r.URL.Query()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, posts)
}

func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	post, err := h.svc.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, post)
}

func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	upload, closeFile, err := h.parseForm(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer closeFile()

	in := CreateInput{
		Title:       r.FormValue("title"),
		Content:     r.FormValue("content"),
		Category:    r.FormValue("category"),
		Subcategory: r.FormValue("subcategory"),
		Author:      r.FormValue("author"),
		Status:      r.FormValue("status"),
	}
	post, err := h.svc.Create(r.Context(), in, upload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, post)
}

func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if _, err := parseID(id); err != nil {
		writeError(w, r, err)
		return
	}

	upload, closeFile, err := h.parseForm(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer closeFile()

	in := UpdateInput{
		Title:       r.FormValue("title"),
		Content:     r.FormValue("content"),
		Category:    r.FormValue("category"),
		Subcategory: r.FormValue("subcategory"),
		Author:      r.FormValue("author"),
		Status:      r.FormValue("status"),
	}
	_, in.SubcategorySent = r.PostForm["subcategory"]
	post, err := h.svc.Update(r.Context(), id, in, upload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, post)
}

func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.svc.Delete(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Blog deleted successfully"})
}

var errBadForm = errors.New("invalid form data")

// parseForm reads a multipart or urlencoded body and returns the optional
// image upload. The returned close func is always safe to call.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (*Upload, func(), error) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := r.ParseForm(); err != nil {
			return nil, noop, formErr(err)
		}
		return nil, noop, nil
	}

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return nil, noop, formErr(err)
	}
	files := r.MultipartForm.File[imageField]
	if len(files) == 0 {
		return nil, noop, nil
	}
	file, err := files[0].Open()
	if err != nil {
		return nil, noop, formErr(err)
	}
	return &Upload{Reader: file, Filename: files[0].Filename}, func() { file.Close() }, nil
}

func formErr(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return tooBig
	}
	return errBadForm
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *ValidationError
		serr   *StorageError
		aerr   *AttachmentError
		tooBig *http.MaxBytesError
	)
	switch {
	case errors.Is(err, ErrInvalidID):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid blog ID", "")
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Blog not found", "")
	case errors.Is(err, errBadForm):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data", "")
	case errors.As(err, &tooBig):
		utils.RespondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large", "")
	case errors.As(err, &verr):
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"message": "Validation failed",
			"error":   verr.Error(),
			"fields":  verr.Fields,
		})
	case errors.As(err, &aerr):
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Image storage failed")
		utils.RespondWithError(w, http.StatusInternalServerError, "Image upload failed", aerr.Err.Error())
	case errors.As(err, &serr):
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Database operation failed")
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error", serr.Err.Error())
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Unhandled error")
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error", err.Error())
	}
}
