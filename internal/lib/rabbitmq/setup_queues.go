package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди личных уведомлений бота.
// Все ключи ведут в одну очередь, которую разбирает notification-sender.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.direct", RoutingKey: "invite"},
		{QueueName: "notification.direct", RoutingKey: "expired"},
		{QueueName: "notification.direct", RoutingKey: "canceled"},
	}
}
