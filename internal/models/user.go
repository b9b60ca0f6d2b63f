// Package models содержит доменные структуры бота платного канала:
// пользователей, подписки, платежи и уведомления.
// Все структуры используются и в бизнес-логике, и при работе с хранилищем.
package models

import "time"

// User представляет пользователя Telegram, взаимодействовавшего с ботом.
// Идентификатор назначается Telegram и никогда не меняется; остальные поля
// перезаписываются при каждом повторном обращении (последняя запись побеждает).
type User struct {
	ID               int64     // Telegram user id
	Username         string    // Ник в Telegram (может быть пустым)
	FirstName        string    // Имя
	LastName         string    // Фамилия
	RegistrationDate time.Time // Дата первого обращения к боту
}
