package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Upload  UploadConfig  `yaml:"upload"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type MongoConfig struct {
	// URI is normally supplied via the DB_LOCATION environment variable;
	// the yaml value is only a local-development fallback.
	URI    string `yaml:"uri"`
	DBName string `yaml:"db_name"`
}

// UploadConfig configures the presigned upload URL issuer.
type UploadConfig struct {
	Region string `yaml:"region"`
	Bucket string `yaml:"bucket"`

	// ExpirySeconds is how long an issued upload URL stays valid.
	ExpirySeconds int `yaml:"expiry_seconds"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	// secrets and deploy-specific values come from the environment
	if uri := os.Getenv("DB_LOCATION"); uri != "" {
		c.Mongo.URI = uri
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		c.Upload.Region = region
	}
	if bucket := os.Getenv("AWS_BUCKET"); bucket != "" {
		c.Upload.Bucket = bucket
	}

	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
