package handler

import (
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/ventas-system/internal/model"
	"github.com/mmeshcher/ventas-system/internal/service"
)

type credentialsRequest struct {
	Nombre   string `json:"nombre"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success   string                `json:"success"`
	Comercial model.ComercialPublic `json:"comercial"`
}

// readCredentials принимает JSON или данные формы.
func readCredentials(r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data" {
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req.Nombre = r.PostForm.Get("nombre")
		req.Password = r.PostForm.Get("password")
		return req, nil
	}

	if err := decodeJSON(r, &req); err != nil {
		return req, err
	}
	return req, nil
}

// Login проверяет имя и пароль представителя и возвращает его данные без учётных данных.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := readCredentials(r)
	if err != nil || req.Nombre == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, msgCredsRequired)
		return
	}

	res, comercial, err := h.service.AuthenticateComercial(r.Context(), req.Nombre, req.Password)
	if err != nil {
		h.logger.Error("login comercial error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	switch res {
	case service.LoginOK:
		writeJSON(w, http.StatusOK, loginResponse{
			Success:   "Autenticación exitosa",
			Comercial: comercial.Public(),
		})
	case service.LoginBadPassword:
		writeError(w, http.StatusUnauthorized, msgWrongPassword)
	default:
		writeError(w, http.StatusNotFound, "El comercial no existe")
	}
}

type comercialIDRequest struct {
	Nombre   *string `json:"nombre"`
	Password *string `json:"password"`
}

// ComercialID проверяет учётные данные и возвращает только идентификатор представителя.
// Неверный пароль здесь отдаёт 400, а не 401, как ожидают существующие клиенты.
func (h *Handler) ComercialID(w http.ResponseWriter, r *http.Request) {
	var req comercialIDRequest
	if err := decodeJSON(r, &req); err != nil || req.Nombre == nil || req.Password == nil {
		writeError(w, http.StatusBadRequest, msgCredsRequired)
		return
	}

	res, comercial, err := h.service.AuthenticateComercial(r.Context(), *req.Nombre, *req.Password)
	if err != nil {
		h.logger.Error("get comercial id error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	switch res {
	case service.LoginOK:
		writeJSON(w, http.StatusOK, map[string]int64{"id": comercial.ID})
	case service.LoginBadPassword:
		writeError(w, http.StatusBadRequest, msgWrongPassword)
	default:
		writeError(w, http.StatusNotFound, "Comercial no encontrado")
	}
}
