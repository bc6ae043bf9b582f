package message

import (
	"context"
	"fmt"

	"duochat/internal/app/db"
	dbc "duochat/internal/app/db/sqlc"
)

// PostgresStore is the message store backed by the messages table.
type PostgresStore struct {
	q *dbc.Queries
}

// NewPostgresStore wraps the shared query set.
func NewPostgresStore(q *dbc.Queries) *PostgresStore {
	return &PostgresStore{q: q}
}

func fromRow(row dbc.Message) Message {
	return Message{
		ID:         db.UUIDString(row.ID),
		SenderID:   db.UUIDString(row.SenderID),
		ReceiverID: db.UUIDString(row.ReceiverID),
		Text:       row.Text.String,
		ImageURL:   row.ImageUrl.String,
		CreatedAt:  row.CreatedAt.Time,
	}
}

// Create persists m and returns it with its id and createdAt.
func (s *PostgresStore) Create(ctx context.Context, m NewMessage) (*Message, error) {
	sender, err := db.ParseUUID(m.SenderID)
	if err != nil {
		return nil, fmt.Errorf("create message: sender: %w", err)
	}
	receiver, err := db.ParseUUID(m.ReceiverID)
	if err != nil {
		return nil, ErrReceiverNotFound
	}

	row, err := s.q.CreateMessage(ctx, dbc.CreateMessageParams{
		SenderID:   sender,
		ReceiverID: receiver,
		Text:       db.Text(m.Text),
		ImageUrl:   db.Text(m.ImageURL),
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("create message: %w", err)
	}

	msg := fromRow(row)
	return &msg, nil
}

// Conversation returns the messages exchanged between a and b in either direction,
// oldest first.
func (s *PostgresStore) Conversation(ctx context.Context, a, b string) ([]Message, error) {
	ua, err := db.ParseUUID(a)
	if err != nil {
		return nil, fmt.Errorf("conversation: %w", err)
	}
	ub, err := db.ParseUUID(b)
	if err != nil {
		return nil, fmt.Errorf("conversation: %w", err)
	}

	rows, err := s.q.ListConversation(ctx, dbc.ListConversationParams{SenderID: ua, ReceiverID: ub})
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}

	out := make([]Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}
