package message

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"duochat/internal/app/db"
	"duochat/internal/app/media"
	"duochat/internal/app/user"
	"duochat/internal/pkg/errs"
	"duochat/internal/pkg/logx"
)

// MaxTextLength is the maximum number of characters in a message's text.
const MaxTextLength = 2000

// Store persists and queries messages.
type Store interface {
	Create(ctx context.Context, m NewMessage) (*Message, error)
	Conversation(ctx context.Context, a, b string) ([]Message, error)
}

// Directory lists users.
type Directory interface {
	ListExcept(ctx context.Context, id string) ([]user.User, error)
}

// ImageUploader validates an inline image and returns its durable URL.
type ImageUploader interface {
	ValidateAndUpload(ctx context.Context, payload string, purpose media.Purpose) (string, error)
}

// SendInput is the content of a message to send.
type SendInput struct {
	Text  string
	Image string
}

// Service implements the directory, conversation and send operations.
type Service struct {
	users    Directory
	messages Store
	images   ImageUploader
}

// NewService wires the service.
func NewService(users Directory, messages Store, images ImageUploader) *Service {
	return &Service{users: users, messages: messages, images: images}
}

// ListOtherUsers returns every user except currentUserID.
func (s *Service) ListOtherUsers(ctx context.Context, currentUserID string) ([]user.Public, error) {
	users, err := s.users.ListExcept(ctx, currentUserID)
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}
	return user.PublicList(users), nil
}

// GetConversation returns the messages exchanged between the two users, oldest first.
func (s *Service) GetConversation(ctx context.Context, currentUserID, otherUserID string) ([]Message, error) {
	if _, err := db.ParseUUID(otherUserID); err != nil {
		return nil, errs.NewError(errs.ErrInvalidUserID)
	}

	msgs, err := s.messages.Conversation(ctx, currentUserID, otherUserID)
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return msgs, nil
}

// SendMessage validates the content, uploads the image if any, then persists the message.
// Nothing is written when validation or the upload fails.
func (s *Service) SendMessage(ctx context.Context, senderID, receiverID string, in SendInput) (*Message, error) {
	if _, err := db.ParseUUID(receiverID); err != nil {
		return nil, errs.NewError(errs.ErrInvalidUserID)
	}

	text := in.Text
	if strings.TrimSpace(text) == "" {
		text = ""
	}
	if text == "" && in.Image == "" {
		return nil, errs.NewError(errs.ErrEmptyMessage)
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return nil, errs.NewError(errs.ErrMessageContentTooLong)
	}

	var imageURL string
	if in.Image != "" {
		url, err := s.images.ValidateAndUpload(ctx, in.Image, media.PurposeMessage)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	msg, err := s.messages.Create(ctx, NewMessage{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		ImageURL:   imageURL,
	})
	if err != nil {
		if imageURL != "" {
			logx.WarnCtx(ctx, "Message not stored, uploaded image is orphaned", "image_url", imageURL)
		}
		if errors.Is(err, ErrReceiverNotFound) {
			return nil, errs.NewError(errs.ErrReceiverNotFound)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	return msg, nil
}
