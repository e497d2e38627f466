package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

func (db *Database) SaveNewPosition(
	ctx context.Context,
	position *model.HonoraryPositionDocument,
	policy *model.PolicyDocument,
	progress *model.ProgressDocument,
) error {
	err := db.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := db.collection(model.HonoraryPositionCollection).InsertOne(sessCtx, position); err != nil {
			return err
		}
		if _, err := db.collection(model.PolicyCollection).InsertOne(sessCtx, policy); err != nil {
			return err
		}
		if _, err := db.collection(model.ProgressCollection).InsertOne(sessCtx, progress); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &DuplicateKeyError{
				Key:     position.Key.String(),
				Message: fmt.Sprintf("honorary position for pool %s already exists", position.PoolID),
			}
		}
		return err
	}
	return nil
}

func (db *Database) GetPosition(ctx context.Context, positionKey types.Identity) (*model.HonoraryPositionDocument, error) {
	var position model.HonoraryPositionDocument
	err := db.collection(model.HonoraryPositionCollection).
		FindOne(ctx, bson.M{"_id": positionKey.String()}).
		Decode(&position)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     positionKey.String(),
				Message: "honorary position not found",
			}
		}
		return nil, err
	}
	return &position, nil
}

func (db *Database) FindActivePositions(ctx context.Context) ([]model.HonoraryPositionDocument, error) {
	cursor, err := db.collection(model.HonoraryPositionCollection).
		Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var positions []model.HonoraryPositionDocument
	if err := cursor.All(ctx, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

func (db *Database) SetPositionActive(ctx context.Context, positionKey types.Identity, active bool) error {
	res, err := db.collection(model.HonoraryPositionCollection).UpdateOne(
		ctx,
		bson.M{"_id": positionKey.String()},
		bson.M{"$set": bson.M{"is_active": active}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     positionKey.String(),
			Message: "honorary position not found",
		}
	}
	return nil
}
