package config

import (
	"fmt"
	"net/url"
	"os"
)

type (
	APP struct {
		Name string
		Host string
		Port string
		Env  string
	}
	Mongo struct {
		Host string
		Port string
		Name string
	}
	Redis struct {
		Host string
		Port string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	Storage struct {
		Root string
	}

	Config struct {
		App     APP
		Mongo   Mongo
		Redis   Redis
		MQ      MQ
		Storage Storage
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func Load() Config {
	app := APP{
		Name: getEnv("SERVICE_NAME", "filemanagerapi"),
		Host: getEnv("SERVICE_HOST", ""),
		Port: getEnv("SERVICE_PORT", "5000"),
		Env:  getEnv("SERVICE_ENV", ""),
	}
	mongo := Mongo{
		Host: getEnv("DB_HOST", "localhost"),
		Port: getEnv("DB_PORT", "27017"),
		Name: getEnv("DB_DATABASE", "files_manager"),
	}
	rds := Redis{
		Host: getEnv("REDIS_HOST", "localhost"),
		Port: getEnv("REDIS_PORT", "6379"),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", ""),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", ""),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", ""),
	}
	storage := Storage{
		Root: getEnv("FOLDER_PATH", "/tmp/files_manager"),
	}

	return Config{
		App:     app,
		Mongo:   mongo,
		Redis:   rds,
		MQ:      mq,
		Storage: storage,
	}
}

func (c Config) MongoURI() (string, error) {
	if c.Mongo.Host == "" || c.Mongo.Port == "" || c.Mongo.Name == "" {
		return "", fmt.Errorf("incomplete Mongo config")
	}
	return fmt.Sprintf("mongodb://%s:%s", c.Mongo.Host, c.Mongo.Port), nil
}

func (c Config) RedisAddr() (string, error) {
	if c.Redis.Host == "" || c.Redis.Port == "" {
		return "", fmt.Errorf("incomplete Redis config")
	}
	return c.Redis.Host + ":" + c.Redis.Port, nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
