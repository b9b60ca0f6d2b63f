package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/paid-channel-bot/internal/models"
)

// ErrPaymentNotFound возвращается при попытке обновить платёж,
// которого нет в хранилище.
var ErrPaymentNotFound = errors.New("payment not found")

// CreatePayment сохраняет запись о созданном у провайдера платеже.
func (s *Storage) CreatePayment(ctx context.Context, userID int64, paymentID string, amount int64, status string) error {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_id, payment_id, amount, status)
			  VALUES ($1, $2, $3, $4)`
	if _, err := s.DB.ExecContext(ctx, query, userID, paymentID, amount, status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatePaymentStatus обновляет статус платежа по его провайдерскому ID.
// При переходе в статус paid дополнительно проставляет paid_date.
// Возвращает ErrPaymentNotFound, если платёж с таким ID не записан.
func (s *Storage) UpdatePaymentStatus(ctx context.Context, paymentID string, status string) error {
	const op = "storage.UpdatePaymentStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var result sql.Result
	var err error
	if status == models.PaymentStatusPaid {
		query := `UPDATE payments
				  SET status = $1, paid_date = $2
				  WHERE payment_id = $3`
		result, err = s.DB.ExecContext(ctx, query, status, time.Now(), paymentID)
	} else {
		query := `UPDATE payments
				  SET status = $1
				  WHERE payment_id = $2`
		result, err = s.DB.ExecContext(ctx, query, status, paymentID)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrPaymentNotFound)
	}
	return nil
}

// GetPayment возвращает запись о платеже по его провайдерскому ID.
func (s *Storage) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	const op = "storage.GetPayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, payment_id, amount, status, created_date, paid_date
			  FROM payments
			  WHERE payment_id = $1`
	p := &models.Payment{}
	var paidDate sql.NullTime
	row := s.DB.QueryRowContext(ctx, query, paymentID)
	if err := row.Scan(&p.ID, &p.UserID, &p.PaymentID, &p.Amount, &p.Status,
		&p.CreatedDate, &paidDate); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if paidDate.Valid {
		p.PaidDate = &paidDate.Time
	}
	return p, nil
}

// SavePaymentMethod сохраняет токен способа оплаты для автосписаний.
// Прежний токен пользователя у того же провайдера заменяется.
func (s *Storage) SavePaymentMethod(ctx context.Context, userID int64, provider, token string) error {
	const op = "storage.SavePaymentMethod"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	deleteQuery := `DELETE FROM payment_methods WHERE user_id = $1 AND provider = $2`
	if _, err := s.DB.ExecContext(ctx, deleteQuery, userID, provider); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	insertQuery := `INSERT INTO payment_methods (user_id, provider, token)
			  VALUES ($1, $2, $3)`
	if _, err := s.DB.ExecContext(ctx, insertQuery, userID, provider, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindPaymentMethod возвращает сохранённый токен способа оплаты пользователя
// у провайдера. Второй результат false, если токена нет.
func (s *Storage) FindPaymentMethod(ctx context.Context, userID int64, provider string) (string, bool, error) {
	const op = "storage.FindPaymentMethod"
	select {
	case <-ctx.Done():
		return "", false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT token
			  FROM payment_methods
			  WHERE user_id = $1 AND provider = $2
			  ORDER BY created_at DESC
			  LIMIT 1`
	var token string
	err := s.DB.QueryRowContext(ctx, query, userID, provider).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return token, true, nil
}
