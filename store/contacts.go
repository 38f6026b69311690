package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-portfolio/internal/errors"
	"github.com/gcbaptista/go-portfolio/model"
)

const contactTable = "contact_messages"

// SaveContactMessage inserts msg, assigning an ID and creation time when missing.
func (s *Store) SaveContactMessage(ctx context.Context, msg *model.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	msg.CreatedAt = msg.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

// GetContactMessage returns one message by ID.
func (s *Store) GetContactMessage(ctx context.Context, id string) (model.ContactMessage, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, subject, message, created_at, notified_at
		FROM contact_messages
		WHERE id = ?
	`, id)

	msg, err := scanContact(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return model.ContactMessage{}, errors.NewRecordNotFoundError(id, contactTable)
	}
	if err != nil {
		return model.ContactMessage{}, fmt.Errorf("failed to load contact message: %w", err)
	}
	return msg, nil
}

// ListContactMessages returns the newest messages first.
func (s *Store) ListContactMessages(ctx context.Context, limit int) ([]model.ContactMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, subject, message, created_at, notified_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	messages := make([]model.ContactMessage, 0)
	for rows.Next() {
		msg, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read contact message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// MarkNotified records when the owner was notified about a message.
func (s *Store) MarkNotified(ctx context.Context, id string, at time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE contact_messages SET notified_at = ? WHERE id = ?`, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark contact message notified: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return errors.NewRecordNotFoundError(id, contactTable)
	}
	return nil
}

// CountContactMessages returns the number of stored messages.
func (s *Store) CountContactMessages(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count contact messages: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner) (model.ContactMessage, error) {
	var (
		msg        model.ContactMessage
		notifiedAt sql.NullTime
	)
	if err := row.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.CreatedAt, &notifiedAt); err != nil {
		return model.ContactMessage{}, err
	}
	if notifiedAt.Valid {
		t := notifiedAt.Time
		msg.NotifiedAt = &t
	}
	return msg, nil
}
