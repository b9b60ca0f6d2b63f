package models

// Notification — сообщение для очереди уведомлений: личное сообщение,
// которое воркер notification-sender доставит пользователю в Telegram.
type Notification struct {
	UserID int64  `json:"user_id"`
	Kind   string `json:"kind"` // invite, expired или canceled
	Text   string `json:"text"`
}
