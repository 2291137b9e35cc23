// Package txn runs multi-document writes inside a MongoDB transaction,
// falling back to plain sequential execution on deployments that do not
// support transactions (standalone servers, some DocumentDB versions).
//
// The fallback trades atomicity for availability: the finalize sequence is
// ordered so that the onboarding flag flip happens last, which keeps a
// partial failure recoverable by re-running the finalize.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn within a session transaction on db's client. When the
// server reports that transactions are unsupported, fn is re-run once
// without a transaction.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	client := db.Client()

	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Info("transactions unsupported; running without transaction")
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Info("transactions unsupported; running without transaction")
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		// 20 IllegalOperation (not a replica set member),
		// 51 IllegalOperation, 263 OperationNotSupportedInTransaction.
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "transaction") && strings.Contains(s, "replica set") {
		return true
	}
	if strings.Contains(s, "session") && strings.Contains(s, "not supported") {
		return true
	}
	return false
}
