package testutil

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kyolabs/honorary-fee-crank/internal/config"
)

const (
	mongoDatabase = "test-database"
	replicaSet    = "rs0"

	// this version corresponds to docker tag for mongodb
	// it should be in sync with mongo version used in production
	mongoVersion = "7.0.5"
)

// SetupMongoContainer starts a single node replica set (transactions need one) and returns
// db credentials through config.DbConfig, a cleanup function that MUST be called in the end
// to cleanup docker resources and an error if there is any
func SetupMongoContainer() (*config.DbConfig, func(), error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, err
	}

	suffix, err := RandomAlphaNum(3)
	if err != nil {
		return nil, nil, err
	}

	// there can be only 1 container with the same name, so we add
	// random string in the end in case there is still old container running
	containerName := "mongo-integration-tests-db-" + suffix
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       containerName,
		Repository: "mongo",
		Tag:        mongoVersion,
		Cmd:        []string{"--replSet", replicaSet, "--bind_ip_all"},
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
		err := pool.Purge(resource)
		if err != nil {
			log.Fatalf("failed to purge resource: %v", err)
		}
	}

	// get host port (randomly chosen) that is mapped to mongo port inside container
	hostPort := resource.GetPort("27017/tcp")
	address := fmt.Sprintf("mongodb://localhost:%s/?directConnection=true", hostPort)

	err = pool.Retry(func() error {
		return initiateReplicaSet(address)
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &config.DbConfig{
		DbName:  mongoDatabase,
		Address: address,
	}, cleanup, nil
}

func initiateReplicaSet(address string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(address))
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx) //nolint:errcheck

	admin := client.Database("admin")

	var status bson.M
	err = admin.RunCommand(ctx, bson.D{{Key: "replSetGetStatus", Value: 1}}).Decode(&status)
	if err != nil {
		initiate := bson.D{{Key: "replSetInitiate", Value: bson.M{
			"_id": replicaSet,
			"members": bson.A{
				bson.M{"_id": 0, "host": "localhost:27017"},
			},
		}}}
		if err := admin.RunCommand(ctx, initiate).Err(); err != nil {
			return err
		}
		return fmt.Errorf("replica set initiated, waiting for primary")
	}

	var hello bson.M
	if err := admin.RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return err
	}
	if primary, _ := hello["isWritablePrimary"].(bool); !primary {
		return fmt.Errorf("replica set has no primary yet")
	}
	return nil
}

// TruncateCollections removes every document from the given collections.
func TruncateCollections(ctx context.Context, cfg *config.DbConfig, collections ...string) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Address))
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx) //nolint:errcheck

	for _, name := range collections {
		if _, err := client.Database(cfg.DbName).Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return err
		}
	}
	return nil
}
