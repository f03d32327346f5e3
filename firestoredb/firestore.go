// Package firestoredb stores profiles and expenses in Cloud Firestore, the
// document layout used by the original web client: a "users" collection keyed
// by uid and an "expenses" collection whose documents carry a userId field.
package firestoredb

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"wisewallet/backend/apperr"
	"wisewallet/backend/database"
)

const (
	usersCollection    = "users"
	expensesCollection = "expenses"
)

// NewClient opens a Firestore client for projectID. With FIRESTORE_EMULATOR_HOST
// set the client talks to the emulator.
func NewClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("error initializing firestore: %w", err)
	}
	return client, nil
}

func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return apperr.ErrRecordNotFound
	case codes.AlreadyExists:
		return database.ErrDuplicate
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
