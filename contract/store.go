//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_store.go -package=mocks
package contract

import "context"

// IStore keeps user preferences and the provenance of relayed messages.
// RecordProvenance has insert-if-absent semantics.
type IStore interface {
	GetDefaultSelector(ctx context.Context, userID string) (*string, error)
	SetDefaultSelector(ctx context.Context, userID, selector string) error
	UnsetDefaultSelector(ctx context.Context, userID string) error
	RecordProvenance(ctx context.Context, userID, messageID string) error
	HasProvenance(ctx context.Context, userID, messageID string) (bool, error)
	Close() error
}
