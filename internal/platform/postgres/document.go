package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// documentRow is the shape shared by every document table.
type documentRow struct {
	ID   uuid.UUID `db:"id"`
	Data []byte    `db:"data"`
}

// encodeDocument marshals v for the data column. The identifier lives in the
// id column, so "_id" is stripped from the body.
func encodeDocument(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: document must be an object", store.ErrInvalidEntity)
	}
	delete(doc, "_id")

	return json.Marshal(doc)
}

// decodeDocument unmarshals row.Data into v. The caller sets the ID.
func decodeDocument(row documentRow, v any) error {
	if err := json.Unmarshal(row.Data, v); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", row.ID, err)
	}
	return nil
}

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
