package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"socialfeed/internal/service"
)

type updateProfileResponse struct {
	Message      string      `json:"message"`
	Profile      interface{} `json:"profile"`
	PostsUpdated int64       `json:"postsUpdated"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFromContext(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	profile, err := h.ProfileService.GetProfile(r.Context(), ident)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, profile, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFromContext(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if err.Error() == "http: request body too large" {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		}
		return
	}

	patch := service.UpdateProfileRequest{}

	if values, ok := r.MultipartForm.Value["name"]; ok && len(values) > 0 {
		patch.DisplayName = &values[0]
	}
	if values, ok := r.MultipartForm.Value["bio"]; ok && len(values) > 0 {
		patch.Bio = &values[0]
	}

	if fh := firstFile(r, "profilePic"); fh != nil {
		file, err := openUpload(fh)
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		patch.Avatar = &service.MediaUpload{FileName: fh.Filename, File: file, Size: fh.Size}
	}

	if fh := firstFile(r, "bannerImage"); fh != nil {
		file, err := openUpload(fh)
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		patch.Banner = &service.MediaUpload{FileName: fh.Filename, File: file, Size: fh.Size}
	}

	profile, postsUpdated, err := h.ProfileService.UpdateProfile(r.Context(), ident.UID, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, updateProfileResponse{
		Message:      "Профиль успешно обновлен",
		Profile:      profile,
		PostsUpdated: postsUpdated,
	}, http.StatusOK)
}

// firstFile достает одиночный загруженный файл формы; отсутствие файла не ошибка
func firstFile(r *http.Request, field string) *multipart.FileHeader {
	headers, ok := r.MultipartForm.File[field]
	if !ok || len(headers) == 0 {
		return nil
	}
	return headers[0]
}

func openUpload(fh *multipart.FileHeader) (multipart.File, error) {
	contentType := fh.Header.Get("Content-Type")
	if !allowedMediaTypes[contentType] {
		return nil, fmt.Errorf("неподдерживаемый тип файла: %s", contentType)
	}

	return fh.Open()
}
