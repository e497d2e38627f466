package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

func (db *Database) GetPolicy(ctx context.Context, policyKey types.Identity) (*model.PolicyDocument, error) {
	var policy model.PolicyDocument
	err := db.collection(model.PolicyCollection).
		FindOne(ctx, bson.M{"_id": policyKey.String()}).
		Decode(&policy)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     policyKey.String(),
				Message: "policy not found",
			}
		}
		return nil, err
	}
	return &policy, nil
}

func (db *Database) ReplacePolicy(ctx context.Context, policy *model.PolicyDocument, expectedAuthority types.Identity) error {
	filter := bson.M{
		"_id":       policy.Key.String(),
		"authority": expectedAuthority.String(),
	}

	res, err := db.collection(model.PolicyCollection).ReplaceOne(ctx, filter, policy)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &ConcurrentUpdateError{
			Key:     policy.Key.String(),
			Message: "policy not found or authority changed",
		}
	}
	return nil
}
