package http

import (
	"net/http"

	"partsphere-backend/internal/service"
)

type ChatHandler struct {
	chats service.ChatService
}

func NewChatHandler(chats service.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())
	chats, err := h.chats.ListChats(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chats)
}

func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())
	chatID, err := pathID(r, "id")
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid id")
		return
	}
	messages, err := h.chats.Messages(r.Context(), userID, chatID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

type postMessageRequest struct {
	ChatID  int32  `json:"chat_id"`
	Content string `json:"content"`
}

func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	var req postMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	msg, err := h.chats.PostMessage(r.Context(), userID, req.ChatID, req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) SupportThread(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())
	chat, err := h.chats.SupportThread(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chat)
}

func (h *ChatHandler) ListSupportChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.chats.ListSupportChats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chats)
}
