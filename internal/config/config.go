// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	HTTPServer              `yaml:"http_server"`
	Telegram                `yaml:"telegram"`
	Payment                 `yaml:"payment"`
	Subscription            `yaml:"subscription"`
	Scheduler               `yaml:"scheduler"`
	JWTToken                `yaml:"jwttoken"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RabbitMQ структура для настройки подключения к брокеру уведомлений
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"rabbitmq_url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"rabbitmq_max_retries" env-default:"10"`
	RabbitMQRetryDelay time.Duration `yaml:"rabbitmq_retry_delay" env-default:"3s"`
}

// Telegram структура с параметрами бота и платного канала
type Telegram struct {
	BotToken        string `yaml:"bot_token" env:"BOT_TOKEN"`
	PaidChannelID   string `yaml:"paid_channel_id" env:"PAID_CHANNEL_ID"`
	PaidChannelLink string `yaml:"paid_channel_link" env:"PAID_CHANNEL_LINK"`
	FreeChannelLink string `yaml:"free_channel_link" env:"FREE_CHANNEL_LINK"`
}

// Payment структура с настройками платёжного провайдера.
// Provider выбирает реализацию: yookassa, robokassa или mock.
type Payment struct {
	Provider  string `yaml:"provider" env:"PAYMENT_PROVIDER" env-default:"mock"`
	YooKassa  `yaml:"yookassa"`
	Robokassa `yaml:"robokassa"`
}

// YooKassa параметры доступа к API ЮKassa
type YooKassa struct {
	ShopID        string `yaml:"shop_id" env:"YOOKASSA_SHOP_ID"`
	SecretKey     string `yaml:"secret_key" env:"YOOKASSA_SECRET_KEY"`
	WebhookSecret string `yaml:"webhook_secret" env:"YOOKASSA_WEBHOOK_SECRET"`
	ReturnURL     string `yaml:"return_url" env:"YOOKASSA_RETURN_URL"`
}

// Robokassa параметры доступа к Робокассе
type Robokassa struct {
	MerchantLogin string `yaml:"merchant_login" env:"ROBOKASSA_MERCHANT_LOGIN"`
	Password1     string `yaml:"password1" env:"ROBOKASSA_PASSWORD1"`
	Password2     string `yaml:"password2" env:"ROBOKASSA_PASSWORD2"`
	TestMode      bool   `yaml:"test_mode" env:"ROBOKASSA_TEST_MODE" env-default:"true"`
}

// Subscription параметры оплачиваемого периода.
// Price в копейках: 100000 = 1000 рублей в месяц.
type Subscription struct {
	Price     int64         `yaml:"price" env-default:"100000"`
	TermDays  int           `yaml:"term_days" env-default:"30"`
	InviteTTL time.Duration `yaml:"invite_ttl" env-default:"1h"`
}

// Scheduler параметры цикла сверки подписок
type Scheduler struct {
	CheckInterval time.Duration `yaml:"check_interval" env-default:"1h"`
	RetryBackoff  time.Duration `yaml:"retry_backoff" env-default:"5m"`
}

// JWTToken структура для работы с jwt-токеном админского API
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// MustLoad функция для загрузки конфига, путь берётся из CONFIG_PATH.
// Перед чтением конфига подхватывает переменные окружения из .env.
func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
