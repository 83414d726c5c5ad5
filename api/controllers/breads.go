package controllers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bonappetit-bakery/bakery-backend/api/responses"
	"github.com/bonappetit-bakery/bakery-backend/api/validators"
	"github.com/bonappetit-bakery/bakery-backend/internal/breads"
	"github.com/bonappetit-bakery/bakery-backend/internal/images"
	"github.com/bonappetit-bakery/bakery-backend/pkg/config"
	pkgerrors "github.com/bonappetit-bakery/bakery-backend/pkg/errors"
	"github.com/bonappetit-bakery/bakery-backend/pkg/logger"
)

const (
	defaultMaxUploadMB = 20
	imageFormField     = "image"
)

func multipartMemory(upload config.UploadConfig) int64 {
	mb := upload.MaxUploadMB
	if mb <= 0 {
		mb = defaultMaxUploadMB
	}
	return int64(mb) << 20
}

func ListBreads(svc breads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, list, len(list))
	}
}

func GetBread(svc breads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		no, err := parseBreadNo(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), no)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func CreateBread(svc breads.Service, upload config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemory(upload)); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		unitPrice, err := parseFormInt64(r, "unitPrice")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := breads.CreateInput{
			Name:        strings.TrimSpace(r.FormValue("name")),
			Description: strings.TrimSpace(r.FormValue("description")),
			UnitPrice:   unitPrice,
			BreadStatus: strings.TrimSpace(r.FormValue("breadStatus")),
		}
		if err := validators.ValidateStruct(&input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		files, err := readUploadedFiles(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Create(r.Context(), input, files)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}

func UpdateBread(svc breads.Service, upload config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		no, err := parseBreadNo(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(multipartMemory(upload)); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		input, err := buildUpdateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		files, err := readUploadedFiles(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Update(r.Context(), no, input, files)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

type deleteBreadsRequest struct {
	BreadNos []int64 `json:"breadNos" validate:"required,min=1,dive,gt=0"`
}

func DeleteBreads(svc breads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deleteBreadsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), req.BreadNos); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": req.BreadNos})
	}
}

type deleteBreadImageRequest struct {
	BreadNo  int64  `json:"breadNo" validate:"required,gt=0"`
	PublicID string `json:"publicId" validate:"required"`
}

func DeleteBreadImage(svc breads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deleteBreadImageRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveImage(r.Context(), req.BreadNo, req.PublicID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"publicId": req.PublicID})
	}
}

func parseBreadNo(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "breadNo")
	no, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || no <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "breadNo must be a positive integer")
	}
	return no, nil
}

func parseFormInt64(r *http.Request, field string) (int64, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, field+" is required")
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, field+" must be an integer")
	}
	return value, nil
}

func buildUpdateInput(r *http.Request) (breads.UpdateInput, error) {
	var input breads.UpdateInput

	if _, ok := r.MultipartForm.Value["name"]; ok {
		name := strings.TrimSpace(r.FormValue("name"))
		input.Name = &name
	}
	if _, ok := r.MultipartForm.Value["description"]; ok {
		description := strings.TrimSpace(r.FormValue("description"))
		input.Description = &description
	}
	if _, ok := r.MultipartForm.Value["unitPrice"]; ok {
		unitPrice, err := parseFormInt64(r, "unitPrice")
		if err != nil {
			return input, err
		}
		input.UnitPrice = &unitPrice
	}
	if _, ok := r.MultipartForm.Value["breadStatus"]; ok {
		status := strings.TrimSpace(r.FormValue("breadStatus"))
		input.BreadStatus = &status
	}

	if err := validators.ValidateStruct(&input); err != nil {
		return input, err
	}
	return input, nil
}

func readUploadedFiles(r *http.Request) ([]images.UploadedFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File[imageFormField]
	files := make([]images.UploadedFile, 0, len(headers))
	for _, header := range headers {
		file, err := readUploadedFile(header)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func readUploadedFile(header *multipart.FileHeader) (images.UploadedFile, error) {
	part, err := header.Open()
	if err != nil {
		return images.UploadedFile{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open uploaded file")
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return images.UploadedFile{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded file")
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return images.UploadedFile{
		Name:     header.Filename,
		MimeType: mimeType,
		Data:     data,
	}, nil
}
