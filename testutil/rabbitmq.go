package testutil

import (
	"fmt"
	"log"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kyolabs/honorary-fee-crank/internal/config"
)

const (
	rabbitVersion  = "3.13-alpine"
	rabbitUser     = "guest"
	rabbitPassword = "guest"
)

// SetupRabbitMQContainer starts a broker and returns its queue config with exchange set,
// plus a cleanup function that MUST be called in the end
func SetupRabbitMQContainer(exchange string) (*config.QueueConfig, func(), error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, err
	}

	suffix, err := RandomAlphaNum(3)
	if err != nil {
		return nil, nil, err
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       "rabbitmq-integration-tests-" + suffix,
		Repository: "rabbitmq",
		Tag:        rabbitVersion,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("failed to purge resource: %v", err)
		}
	}

	url := fmt.Sprintf("amqp://localhost:%s/", resource.GetPort("5672/tcp"))
	err = pool.Retry(func() error {
		conn, err := amqp.DialConfig(url, amqp.Config{
			SASL: []amqp.Authentication{&amqp.PlainAuth{Username: rabbitUser, Password: rabbitPassword}},
		})
		if err != nil {
			return err
		}
		return conn.Close()
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	cfg := &config.QueueConfig{
		Url:           url,
		QueueUser:     rabbitUser,
		QueuePassword: rabbitPassword,
		Exchange:      exchange,
	}
	if err := cfg.Validate(); err != nil {
		cleanup()
		return nil, nil, err
	}
	return cfg, cleanup, nil
}
