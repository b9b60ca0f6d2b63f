package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/paid-channel-bot/internal/models"
)

// UpsertUser сохраняет пользователя или обновляет его профиль, если он уже
// известен боту. Повторный вызов с тем же user_id перезаписывает поля профиля.
func (s *Storage) UpsertUser(ctx context.Context, user models.User) error {
	const op = "storage.UpsertUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (user_id, username, first_name, last_name)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (user_id) DO UPDATE
			  SET username = EXCLUDED.username,
			      first_name = EXCLUDED.first_name,
			      last_name = EXCLUDED.last_name`
	if _, err := s.DB.ExecContext(ctx, query,
		user.ID, user.Username, user.FirstName, user.LastName); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUser возвращает пользователя по его Telegram id.
func (s *Storage) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, username, first_name, last_name, registration_date
			  FROM users
			  WHERE user_id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName,
		&u.RegistrationDate); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
