package models

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Prefix        string `mapstructure:"prefix"`
	Endpoint      string `mapstructure:"endpoint"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type Config struct {
	ListenAddr      string   `mapstructure:"listen_addr"`
	DatabaseURL     string   `mapstructure:"database_url"`
	InferenceURL    string   `mapstructure:"inference_url"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	KafkaEnabled    bool     `mapstructure:"kafka_enabled"`
	KafkaBrokerList string   `mapstructure:"kafka_broker_list"`
	KafkaTopic      string   `mapstructure:"kafka_topic"`
	S3              S3Config `mapstructure:"s3"`
	SeedRecords     int      `mapstructure:"seed_records"`
	ExportPath      string   `mapstructure:"export_path"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("listen_addr", ":8000")
	viper.SetDefault("kafka_topic", "analysis_results")
	viper.SetDefault("seed_records", 200)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
