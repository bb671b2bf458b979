package main

import (
	"os"
	"strings"
	"time"

	"github.com/habitquest/backend/config"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDurationEnv(key, fallback string) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		panic(err)
	}
	return d
}

func (s *srv) loadConfig() {
	s.configs = config.Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		ApiServer: config.ServerConfigs{
			Host:      getEnv("HOST", "localhost"),
			Port:      getEnv("PORT", "8080"),
			Cert:      getEnv("SERVER_CERT", ""),
			Key:       getEnv("SERVER_KEY", ""),
			AllowCORS: strings.Fields(getEnv("ALLOW_CORS", "")),
		},
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "habitquest"),
			User:     getEnv("MYSQL_USER", "habitquest"),
			Password: getEnv("MYSQL_PASSWORD", "password"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr:              getEnv("KAFKA_ADDRESS", "localhost:9092"),
			SubscriptionTopic: getEnv("KAFKA_SUBSCRIPTION_TOPIC", "subscription-events"),
			ConsumerGroup:     getEnv("KAFKA_CONSUMER_GROUP", "habitquest-subscriber"),
		},
		Auth: config.AuthConfigs{
			TokenSecret:     getEnv("TOKEN_SECRET", "token_secret"),
			AccessTokenName: getEnv("ACCESS_TOKEN_NAME", "access_token"),
			TokenExpiration: getDurationEnv("TOKEN_EXPIRATION", "24h"),
			Google: config.OIDCConfigs{
				Issuer:   getEnv("GOOGLE_ISSUER", "https://accounts.google.com"),
				ClientID: getEnv("GOOGLE_CLIENT_ID", ""),
			},
		},
		Storage: config.S3Configs{
			Region:         getEnv("STORAGE_REGION", "auto"),
			Endpoint:       getEnv("STORAGE_ENDPOINT", ""),
			PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", ""),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:         getEnv("STORAGE_BUCKET", "habitquest"),
			SSLDisabled:    getEnv("STORAGE_SSL_DISABLE", "") != "",
		},
		Catalog: config.CatalogConfigs{
			Dir: getEnv("CATALOG_DIR", "./data/catalog"),
		},
		Progression: config.ProgressionConfigs{
			GraceWindow: getDurationEnv("STREAK_GRACE_WINDOW", "36h"),
		},
		Sync: config.SyncConfigs{
			DebounceInterval: getDurationEnv("SYNC_DEBOUNCE_INTERVAL", "2s"),
		},
	}.Default()
}
