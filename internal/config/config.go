package config

import (
	"log"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"
)

/*
把init跟read分開
init : 需要設置viper watch 與 onConfigChange
read : 一般讀寫  需要使用讀寫鎖
*/
var config_singleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ServerPort      string `mapstructure:"SERVER_PORT"`
	DbName          string `mapstructure:"POSTGRES_DB"`
	DbHost          string `mapstructure:"POSTGRES_HOST"`
	DbPort          string `mapstructure:"POSTGRES_PORT"`
	DbUser          string `mapstructure:"POSTGRES_USER"`
	DbPas           string `mapstructure:"POSTGRES_PASSWORD"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPas        string `mapstructure:"REDIS_PASSWORD"`
	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic      string `mapstructure:"KAFKA_ORDER_EVENT_TOPIC"`
	KafkaPartitions int    `mapstructure:"KAFKA_PARTITIONS"`
	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`
	PaymentCurrency string `mapstructure:"PAYMENT_CURRENCY"`
	AuthCenterUrl   string `mapstructure:"AUTH_CENTER_URL"`
	LoginUrl        string `mapstructure:"LOGIN_URL"`
}

// Brokers KAFKA_BROKERS 逗號分隔
func (c *Config) Brokers() []string {
	return strings.Split(c.KafkaBrokers, ",")
}

func GetConfig() *Config {
	initConfig()
	config_singleton.mu.RLock()
	defer config_singleton.mu.RUnlock()
	return config_singleton.Config
}

func initConfig() {
	if config_singleton == nil {
		muonce.Do(func() {
			config_singleton = &ConfigSingleTon{}
			if err := loadConfig(); err != nil {
				log.Fatal("error read config")
			}
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				if err := loadConfig(); err != nil {
					log.Panic("failed to reload config file")
				}
			})
		})
	}
}

/*
單純回傳錯誤  由外部決定要不要Fatal, 畢竟有可能有替代方案
替換singleton內容要拿寫鎖，hot reload會跟GetConfig的讀者併發
*/
func loadConfig() (err error) {
	config_singleton.mu.Lock()
	defer config_singleton.mu.Unlock()

	cf := &Config{}
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("PAYMENT_CURRENCY", "usd")
	viper.SetDefault("KAFKA_PARTITIONS", 3)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(cf)
	if err != nil {
		return
	}

	config_singleton.Config = cf
	return
}
