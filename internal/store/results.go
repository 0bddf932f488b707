package store

import "github.com/google/uuid"

// InsertResult reports an inserted document.
type InsertResult struct {
	Acknowledged bool      `json:"acknowledged"`
	InsertedID   uuid.UUID `json:"insertedId"`
}

// UpdateResult reports the outcome of an update or upsert. A target that
// did not exist shows MatchedCount 0; an upsert that created it also sets
// UpsertedCount and UpsertedID.
type UpdateResult struct {
	Acknowledged  bool       `json:"acknowledged"`
	MatchedCount  int64      `json:"matchedCount"`
	ModifiedCount int64      `json:"modifiedCount"`
	UpsertedCount int64      `json:"upsertedCount"`
	UpsertedID    *uuid.UUID `json:"upsertedId"`
}

// DeleteResult reports how many documents a delete removed.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
