package api

import (
	"errors"
	"net/http"

	"github.com/iammorganparry/clive/apps/uigen/internal/chat"
	"github.com/iammorganparry/clive/apps/uigen/internal/models"
)

type ChatHandler struct {
	svc *chat.Service
}

func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Handle(r.Context(), &req)
	switch {
	case errors.Is(err, chat.ErrEmptyText), errors.Is(err, chat.ErrInvalidSessionID):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case chat.IsUpstream(err):
		writeError(w, http.StatusBadGateway, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
