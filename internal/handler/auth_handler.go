package handlers

import (
	"net/http"
)

type authResponse struct {
	Success bool        `json:"success"`
	User    interface{} `json:"user"`
}

// GoogleAuth обменивает проверенный credential на запись пользователя,
// лениво создавая ее при первом входе
func (h *Handlers) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFromContext(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	user, err := h.ProfileService.EnsureUser(r.Context(), ident)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, authResponse{Success: true, User: user}, http.StatusOK)
}

// GetCurrentUser возвращает запись текущего пользователя
func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFromContext(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	user, err := h.ProfileService.EnsureUser(r.Context(), ident)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, authResponse{Success: true, User: user}, http.StatusOK)
}
