package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"
)

type chatService struct {
	store       repository.Store
	adminUserID int32
}

func NewChatService(store repository.Store, adminUserID int32) ChatService {
	return &chatService{
		store:       store,
		adminUserID: adminUserID,
	}
}

func (s *chatService) ListChats(ctx context.Context, userID int32) ([]domain.Chat, error) {
	return s.store.Chats().ListByParticipant(ctx, userID)
}

func (s *chatService) Messages(ctx context.Context, callerID, chatID int32) ([]domain.Message, error) {
	chat, err := s.store.Chats().GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !chat.HasParticipant(callerID) {
		return nil, ErrForbidden
	}
	return s.store.Chats().ListMessages(ctx, chatID)
}

func (s *chatService) PostMessage(ctx context.Context, senderID, chatID int32, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrValidation)
	}

	chat, err := s.store.Chats().GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !chat.HasParticipant(senderID) {
		return nil, ErrForbidden
	}

	msg := &domain.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
	}
	if err := s.store.Chats().CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.store.Chats().UpdatePreview(ctx, chatID, content); err != nil {
		return nil, err
	}
	return msg, nil
}

// SupportThread returns the user's conversation with the platform account,
// creating it on first contact.
func (s *chatService) SupportThread(ctx context.Context, userID int32) (*domain.Chat, error) {
	chat, err := s.store.Chats().GetBetween(ctx, userID, s.adminUserID)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, repository.ErrNoRows) {
		return nil, err
	}

	chat = &domain.Chat{
		User1ID: userID,
		User2ID: s.adminUserID,
	}
	if err := s.store.Chats().Create(ctx, chat); err != nil {
		return nil, err
	}
	return s.store.Chats().GetByID(ctx, chat.ID)
}

func (s *chatService) ListSupportChats(ctx context.Context) ([]domain.Chat, error) {
	return s.store.Chats().ListByParticipant(ctx, s.adminUserID)
}
