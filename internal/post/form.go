package post

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"microblog/internal/shared/validate"
)

// Form carries a post submission. The author is never part of the form;
// handlers attach the session identity.
type Form struct {
	Text    string `validate:"required"`
	GroupID *uint
}

// Upload is an optional image attached to a post submission.
type Upload struct {
	Data        []byte
	ContentType string
	Filename    string
}

var ErrImageTooLarge = errors.New("image too large")

// ParseForm reads a post submission from a multipart or url-encoded
// request body.
func ParseForm(r *http.Request, maxImageSize int64) (Form, *Upload, error) {
	var f Form
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return f, nil, err
		}
		if err := r.ParseForm(); err != nil {
			return f, nil, err
		}
	}

	f.Text = r.PostFormValue("text")
	if s := r.PostFormValue("group"); s != "" {
		id, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return f, nil, errors.New("invalid group")
		}
		gid := uint(id)
		f.GroupID = &gid
	}

	upload, err := readImage(r, maxImageSize)
	if err != nil {
		return f, nil, err
	}
	return f, upload, nil
}

func readImage(r *http.Request, maxImageSize int64) (*Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxImageSize {
		return nil, ErrImageTooLarge
	}
	return &Upload{
		Data:        data,
		ContentType: contentType(header),
		Filename:    header.Filename,
	}, nil
}

func contentType(h *multipart.FileHeader) string {
	if ct := h.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Validate reports field-level failures without touching any entity.
func (f Form) Validate() validate.FieldErrors {
	return validate.Struct(f)
}
