package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"
)

/*
把init 跟 read 分開
init : 需要設置viper watch 與 onConfigChange
read : 一般讀寫  需要使用讀寫鎖
*/
var configSingleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ModulerName          string `mapstructure:"MODULER_NAME"`
	Env                  string `mapstructure:"ENV"`
	ServerPort           string `mapstructure:"SERVER_PORT"`
	LogLevel             string `mapstructure:"LOG_LEVEL"`
	LogFile              string `mapstructure:"LOG_FILE"`
	DbName               string `mapstructure:"POSTGRES_DB"`
	DbHost               string `mapstructure:"POSTGRES_HOST"`
	DbPort               string `mapstructure:"POSTGRES_PORT"`
	DbUser               string `mapstructure:"POSTGRES_USER"`
	DbPas                string `mapstructure:"POSTGRES_PASSWORD"`
	MigrationURL         string `mapstructure:"MIGRATION_URL"`
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisDB              int    `mapstructure:"REDIS_DB"`
	KafkaBrokers         string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic      string `mapstructure:"KAFKA_ORDER_TOPIC"`
	AuthTokenKey         string `mapstructure:"AUTH_TOKEN_KEY"`
	CheckoutRateCapacity int    `mapstructure:"CHECKOUT_RATE_CAPACITY"`
	CheckoutRatePerSec   int    `mapstructure:"CHECKOUT_RATE_PER_SEC"`
}

// Brokers KAFKA_BROKERS 以逗號分隔, 空字串代表不啟用
func (c *Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

var defaults = map[string]any{
	"MODULER_NAME":           "storefront",
	"ENV":                    "development",
	"SERVER_PORT":            "8080",
	"LOG_LEVEL":              "info",
	"LOG_FILE":               "",
	"POSTGRES_DB":            "lab_storefront",
	"POSTGRES_HOST":          "localhost",
	"POSTGRES_PORT":          "5432",
	"POSTGRES_USER":          "royce",
	"POSTGRES_PASSWORD":      "password",
	"MIGRATION_URL":          "",
	"REDIS_ADDR":             "",
	"REDIS_PASSWORD":         "",
	"REDIS_DB":               0,
	"KAFKA_BROKERS":          "",
	"KAFKA_ORDER_TOPIC":      "storefront.orders",
	"AUTH_TOKEN_KEY":         "",
	"CHECKOUT_RATE_CAPACITY": 5,
	"CHECKOUT_RATE_PER_SEC":  1,
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.Config
}

func initConfig() {
	muonce.Do(func() {
		configSingleton = &ConfigSingleTon{}
		v := viper.New()
		cf, found, err := loadConfig(v, configFilePath())
		if err != nil {
			log.Fatalf("error read config: %v", err)
		}
		configSingleton.Config = cf
		if !found {
			return
		}
		v.OnConfigChange(func(e fsnotify.Event) {
			cf, _, err := loadConfig(v, configFilePath())
			if err != nil {
				log.Printf("failed to reload config file: %v", err)
				return
			}
			configSingleton.mu.Lock()
			configSingleton.Config = cf
			configSingleton.mu.Unlock()
			log.Printf("config reloaded from %s", e.Name)
		})
		v.WatchConfig()
	})
}

// CONFIG_FILE 可以指定設定檔, 預設讀工作目錄下的 .env
func configFilePath() string {
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		return p
	}
	return ".env"
}

/*
單純回傳錯誤  由外部決定要不要Fatal
設定檔不存在時只讀環境變數, found 為 false
*/
func loadConfig(v *viper.Viper, path string) (cf *Config, found bool, err error) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	found = true
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, false, err
		}
		found = false
	}

	cf = &Config{}
	if err = v.Unmarshal(cf); err != nil {
		return nil, false, err
	}
	return cf, found, nil
}
