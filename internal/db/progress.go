package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

type CrankCommit struct {
	// Progress carries the new state. Its Version must be ExpectedVersion+1.
	Progress        *model.ProgressDocument
	ExpectedVersion uint64
	ExpectedCursor  uint32
	Transfers       []model.TransferDocument
}

func (db *Database) GetProgress(ctx context.Context, progressKey types.Identity) (*model.ProgressDocument, error) {
	var progress model.ProgressDocument
	err := db.collection(model.ProgressCollection).
		FindOne(ctx, bson.M{"_id": progressKey.String()}).
		Decode(&progress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     progressKey.String(),
				Message: "distribution progress not found",
			}
		}
		return nil, err
	}
	return &progress, nil
}

func (db *Database) CommitCrank(ctx context.Context, commit *CrankCommit) error {
	key := commit.Progress.Key.String()
	filter := bson.M{
		"_id":     key,
		"version": commit.ExpectedVersion,
		"cursor":  commit.ExpectedCursor,
	}

	return db.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		res, err := db.collection(model.ProgressCollection).ReplaceOne(sessCtx, filter, commit.Progress)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return &ConcurrentUpdateError{
				Key:     key,
				Message: "distribution progress was updated by another crank",
			}
		}

		if len(commit.Transfers) == 0 {
			return nil
		}
		docs := make([]any, len(commit.Transfers))
		for i := range commit.Transfers {
			docs[i] = commit.Transfers[i]
		}
		if _, err := db.collection(model.TransferCollection).InsertMany(sessCtx, docs); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return &DuplicateKeyError{
					Key:     key,
					Message: "transfer instruction already recorded",
				}
			}
			return err
		}
		return nil
	})
}
