package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type FundingConfig struct {
	Env string `yaml:"env"`
	HTTPServer    `yaml:"http_server"`
	FundingDB     `yaml:"funding_db"`
	LogConfig     `yaml:"log_config"`
	CregisGateway `yaml:"cregis-gateway"`
	MT5Manager    `yaml:"mt5-manager"`
	KafkaService  `yaml:"kafka-service"`
	RedisCache    `yaml:"redis-cache"`
	AuthConfig    `yaml:"auth"`
	OpsAlert      `yaml:"ops-alert"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type FundingDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type CregisGateway struct {
	BaseURL          string `yaml:"base_url"`
	ProjectID        int64  `yaml:"project_id"`
	APIKey           string `yaml:"api_key" env:"CREGIS_API_KEY"`
	WebhookSecret    string `yaml:"webhook_secret" env:"CREGIS_WEBHOOK_SECRET"`
	CallbackURL      string `yaml:"callback_url"`
	SuccessURL       string `yaml:"success_url"`
	CancelURL        string `yaml:"cancel_url"`
	TokenList        string `yaml:"token_list"`
	ValidityMinutes  int    `yaml:"validity_minutes" env-default:"30"`
	TimeoutSeconds   int    `yaml:"timeout_seconds" env-default:"10"`
}

type MT5Manager struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token" env:"MT5_MANAGER_TOKEN"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env-default:"10"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type RedisCache struct {
	Addr            string `yaml:"addr"`
	PollTTLSeconds  int    `yaml:"poll_ttl_seconds" env-default:"15"`
}

type AuthConfig struct {
	JWTSecret   string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	AdminAPIKey string `yaml:"admin_api_key" env:"ADMIN_API_KEY"`
}

type OpsAlert struct {
	WebhookURL string `yaml:"webhook_url"`
}

func MustLoad() *FundingConfig {

	// Processing env config variable and file
	configPath := os.Getenv("BROKER_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("BROKER_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg FundingConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
