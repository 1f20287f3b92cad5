package storage

import (
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/mama165/sdk-go/database"
)

// InspectMapper renders Badger records for the debug inspector.
func InspectMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	switch {
	case strings.HasPrefix(key, defaultPrefix):
		var rec defaultRecord
		if err := cbor.Unmarshal(val, &rec); err != nil {
			row.Detail = "Error: decode failed"
			return row
		}
		row.Type = "DEFAULT"
		row.EntityID = strings.TrimPrefix(key, defaultPrefix)
		row.Detail = rec.Selector
		row.Timestamp = rec.UpdatedAt.Format("15:04:05")
	case strings.HasPrefix(key, provenancePrefix):
		var rec provenanceRecord
		if err := cbor.Unmarshal(val, &rec); err != nil {
			row.Detail = "Error: decode failed"
			return row
		}
		author, message, _ := strings.Cut(strings.TrimPrefix(key, provenancePrefix), ":")
		row.Type = "PROVENANCE"
		row.EntityID = author
		row.Detail = message
		row.Timestamp = rec.CreatedAt.Format("15:04:05")
	}
	return row
}
