package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialfeed/internal/service"
)

type createPostForm struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
}

type updatePostRequest struct {
	Title       string  `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
}

type toggleLikeResponse struct {
	Message    string `json:"message"`
	LikesCount int    `json:"likesCount"`
	Liked      bool   `json:"liked"`
}

type deletePostResponse struct {
	Message  string   `json:"message"`
	Warnings []string `json:"warnings,omitempty"`
}

// formats media
var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"video/mp4":  true,
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFromContext(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	// setting the size limit from the config
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

	form := createPostForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if err := h.Validate.Struct(form); err != nil {
		WriteError(w, "Требуются заголовок и описание", http.StatusBadRequest)
		return
	}

	fileHeaders := r.MultipartForm.File["media"]
	if len(fileHeaders) > h.Cfg.MaxMediaFiles {
		WriteError(w, fmt.Sprintf("Не более %d файлов на пост", h.Cfg.MaxMediaFiles), http.StatusBadRequest)
		return
	}

	media := make([]service.MediaUpload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		// check formats
		contentType := fh.Header.Get("Content-Type")
		if !allowedMediaTypes[contentType] {
			WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP, MP4", http.StatusBadRequest)
			return
		}

		file, err := fh.Open()
		if err != nil {
			WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
			return
		}
		defer file.Close()

		media = append(media, service.MediaUpload{
			FileName: fh.Filename,
			File:     file,
			Size:     fh.Size,
		})
	}

	post, err := h.PostService.CreatePost(r.Context(), ident, service.CreatePostRequest{
		Title:       form.Title,
		Description: form.Description,
		Media:       media,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	// pagination parameters; сервис верхнюю границу не навязывает,
	// поэтому ограничиваем limit здесь
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	posts, err := h.FeedService.ListFeed(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.FeedService.GetPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFromContext(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), postID, ident.UID, service.UpdatePostRequest{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFromContext(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	warnings, err := h.PostService.DeletePost(r.Context(), postID, ident.UID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, deletePostResponse{
		Message:  "Пост успешно удален",
		Warnings: warnings,
	}, http.StatusOK)
}

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFromContext(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	likesCount, liked, err := h.PostService.ToggleLike(r.Context(), postID, ident.UID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, toggleLikeResponse{
		Message:    "Статус лайка обновлен",
		LikesCount: likesCount,
		Liked:      liked,
	}, http.StatusOK)
}
