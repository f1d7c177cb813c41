package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/persistence/repository/port"
)

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

// Ensure interface compliance at compile time
var _ repository.MessageRepository = (*PgMessageRepository)(nil)

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) SaveMessage(ctx context.Context, m chat.Message) (chat.Message, error) {
	if r == nil || r.pool == nil {
		return chat.Message{}, errors.New("PgMessageRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.message (sender_id, sender_kind, receiver_id, receiver_kind, content, created_at, read)
		VALUES ($1, $2, $3, $4, $5, now(), false)
		RETURNING id, created_at
	`, m.Sender.ID, m.Sender.Kind, m.Receiver.ID, m.Receiver.Kind, m.Content).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return chat.Message{}, err
	}
	m.Read = false
	return m, nil
}

func (r *PgMessageRepository) GetMessagesBetween(ctx context.Context, a, b chat.Participant, limit, offset int) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, sender_id, sender_kind, receiver_id, receiver_kind, content, created_at, read
		FROM chat.message
		WHERE (sender_id = $1 AND sender_kind = $2 AND receiver_id = $3 AND receiver_kind = $4)
		   OR (sender_id = $3 AND sender_kind = $4 AND receiver_id = $1 AND receiver_kind = $2)
		ORDER BY created_at ASC, id ASC
		LIMIT $5 OFFSET $6
	`, a.ID, a.Kind, b.ID, b.Kind, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.Sender.ID, &m.Sender.Kind, &m.Receiver.ID, &m.Receiver.Kind, &m.Content, &m.CreatedAt, &m.Read); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

func (r *PgMessageRepository) ListConversations(ctx context.Context, p chat.Participant) ([]chat.ConversationSummary, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	// One row per distinct partner: the latest message wins, unread counts
	// only messages addressed to p.
	rows, err := r.pool.Query(ctx, `
		WITH convo AS (
			SELECT CASE WHEN sender_id = $1 AND sender_kind = $2 THEN receiver_id   ELSE sender_id   END AS partner_id,
			       CASE WHEN sender_id = $1 AND sender_kind = $2 THEN receiver_kind ELSE sender_kind END AS partner_kind,
			       content,
			       created_at,
			       id,
			       CASE WHEN receiver_id = $1 AND receiver_kind = $2 AND NOT read THEN 1 ELSE 0 END AS unread
			FROM chat.message
			WHERE (sender_id = $1 AND sender_kind = $2)
			   OR (receiver_id = $1 AND receiver_kind = $2)
		),
		latest AS (
			SELECT DISTINCT ON (partner_id, partner_kind)
			       partner_id,
			       partner_kind,
			       content,
			       created_at,
			       SUM(unread) OVER (PARTITION BY partner_id, partner_kind) AS unread_count
			FROM convo
			ORDER BY partner_id, partner_kind, created_at DESC, id DESC
		)
		SELECT l.partner_id, l.partner_kind, COALESCE(a.display_name, ''), l.content, l.created_at, l.unread_count
		FROM latest l
		LEFT JOIN chat.account a ON a.id = l.partner_id AND a.kind = l.partner_kind
		ORDER BY l.created_at DESC
	`, p.ID, p.Kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []chat.ConversationSummary
	for rows.Next() {
		var s chat.ConversationSummary
		if err := rows.Scan(&s.Partner.ID, &s.Partner.Kind, &s.PartnerName, &s.LastMessage, &s.LastMessageAt, &s.UnreadCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return summaries, nil
}

func (r *PgMessageRepository) MarkConversationRead(ctx context.Context, owner, partner chat.Participant) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgMessageRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.message
		SET read = true
		WHERE receiver_id = $1 AND receiver_kind = $2
		  AND sender_id = $3 AND sender_kind = $4
		  AND NOT read
	`, owner.ID, owner.Kind, partner.ID, partner.Kind)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
