package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

// FindPendingTransfers returns pending instructions in commit order.
func (db *Database) FindPendingTransfers(ctx context.Context, limit int64) ([]model.TransferDocument, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "ordinal", Value: 1}}).
		SetLimit(limit)

	cursor, err := db.collection(model.TransferCollection).
		Find(ctx, bson.M{"status": types.InstructionPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var transfers []model.TransferDocument
	if err := cursor.All(ctx, &transfers); err != nil {
		return nil, err
	}
	return transfers, nil
}

func (db *Database) CountPendingTransfers(
	ctx context.Context, poolID types.Identity, kind types.InstructionKind,
) (int64, error) {
	filter := bson.M{
		"pool_id": poolID.String(),
		"kind":    kind,
		"status":  types.InstructionPending,
	}
	return db.collection(model.TransferCollection).CountDocuments(ctx, filter)
}

func (db *Database) MarkTransferSettled(ctx context.Context, id string, settledAt time.Time) error {
	filter := bson.M{
		"_id":    id,
		"status": types.InstructionPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     types.InstructionSettled,
			"settled_at": settledAt,
		},
		"$unset": bson.M{"last_error": ""},
	}

	res, err := db.collection(model.TransferCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     id,
			Message: "pending transfer instruction not found",
		}
	}
	return nil
}

// MarkTransferFailed records a failed attempt. The instruction leaves the
// pending set once it has been attempted maxAttempts times.
func (db *Database) MarkTransferFailed(ctx context.Context, id string, reason string, maxAttempts int) error {
	filter := bson.M{
		"_id":    id,
		"status": types.InstructionPending,
	}
	update := failedAttemptUpdate(reason, maxAttempts)

	res, err := db.collection(model.TransferCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     id,
			Message: "pending transfer instruction not found",
		}
	}
	return nil
}

func failedAttemptUpdate(reason string, maxAttempts int) bson.A {
	return bson.A{
		bson.M{"$set": bson.M{
			"attempts":   bson.M{"$add": bson.A{"$attempts", 1}},
			"last_error": reason,
		}},
		bson.M{"$set": bson.M{
			"status": bson.M{"$cond": bson.A{
				bson.M{"$gte": bson.A{"$attempts", maxAttempts}},
				types.InstructionFailed,
				types.InstructionPending,
			}},
		}},
	}
}
