package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/paid-channel-bot/internal/models"
)

// CreateSubscription вставляет новую активную подписку со сроком term
// от текущего момента и возвращает её ID. Прежние подписки пользователя
// не трогает: их деактивирует вызывающая сторона.
func (s *Storage) CreateSubscription(ctx context.Context, userID int64, paymentID string, amount int64, term time.Duration) (int64, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	now := time.Now()
	query := `INSERT INTO subscriptions (user_id, start_date, end_date, payment_id, amount)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		userID, now, now.Add(term), paymentID, amount).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetCurrentSubscription возвращает текущую подписку пользователя: активную,
// не истёкшую, с самой поздней датой окончания. Если таких строк несколько,
// детерминированно побеждает самая поздняя. Возвращает nil, если подписки нет.
func (s *Storage) GetCurrentSubscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	const op = "storage.GetCurrentSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, start_date, end_date, is_active, payment_id, amount
			  FROM subscriptions
			  WHERE user_id = $1 AND is_active = true AND end_date > $2
			  ORDER BY end_date DESC
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, userID, time.Now())

	var item models.Subscription
	var paymentID sql.NullString
	if err := row.Scan(&item.ID, &item.UserID, &item.StartDate, &item.EndDate,
		&item.IsActive, &paymentID, &item.Amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	item.PaymentID = paymentID.String
	return &item, nil
}

// DeactivateSubscriptions сбрасывает is_active у всех подписок пользователя
// и возвращает количество изменённых строк. Обновление безусловное:
// побеждает последняя запись, без блокировок и проверок версий.
func (s *Storage) DeactivateSubscriptions(ctx context.Context, userID int64) (int, error) {
	const op = "storage.DeactivateSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET is_active = false
			  WHERE user_id = $1`
	result, err := s.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListExpiredActiveSubscriptions возвращает все активные подписки,
// срок которых истёк к моменту now. Используется циклом сверки.
func (s *Storage) ListExpiredActiveSubscriptions(ctx context.Context, now time.Time) ([]*models.Subscription, error) {
	const op = "storage.ListExpiredActiveSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, start_date, end_date, is_active, payment_id, amount
			  FROM subscriptions
			  WHERE is_active = true AND end_date <= $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		var item models.Subscription
		var paymentID sql.NullString
		if err := rows.Scan(&item.ID, &item.UserID, &item.StartDate, &item.EndDate,
			&item.IsActive, &paymentID, &item.Amount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.PaymentID = paymentID.String
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
