package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string
	LogLevel string

	ApiServer   ServerConfigs
	Database    DatabaseConfigs
	Redis       RedisConfigs
	Kafka       KafkaConfigs
	Auth        AuthConfigs
	Storage     S3Configs
	Catalog     CatalogConfigs
	Progression ProgressionConfigs
	Sync        SyncConfigs
}

type ServerConfigs struct {
	Host      string
	Port      string
	Cert      string
	Key       string
	AllowCORS []string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string

	// SubscriptionTopic carries subscription lifecycle facts published by the
	// payment collaborator.
	SubscriptionTopic string
	ConsumerGroup     string
}

type AuthConfigs struct {
	TokenSecret     string
	AccessTokenName string
	TokenExpiration time.Duration

	Google OIDCConfigs
}

type OIDCConfigs struct {
	Issuer   string
	ClientID string
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	SSLDisabled    bool
}

type CatalogConfigs struct {
	// Dir holds the static TOML catalog (quest templates, packs, categories).
	Dir string
}

type ProgressionConfigs struct {
	// GraceWindow is how long after the last completion a streak survives.
	GraceWindow time.Duration

	// StreakBonusPerDay and StreakBonusCap shape the per-completion XP bonus.
	StreakBonusPerDay float64
	StreakBonusCap    float64
}

type SyncConfigs struct {
	// DebounceInterval coalesces bursts of non-critical state changes into a
	// single remote write.
	DebounceInterval time.Duration
}

// Default fills zero-valued tunables with the product constants.
func (c Configs) Default() Configs {
	if c.Progression.GraceWindow == 0 {
		c.Progression.GraceWindow = 36 * time.Hour
	}
	if c.Progression.StreakBonusPerDay == 0 {
		c.Progression.StreakBonusPerDay = 0.02
	}
	if c.Progression.StreakBonusCap == 0 {
		c.Progression.StreakBonusCap = 0.30
	}
	if c.Sync.DebounceInterval == 0 {
		c.Sync.DebounceInterval = 2 * time.Second
	}

	return c
}
