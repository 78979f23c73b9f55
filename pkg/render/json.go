package render

import (
	"encoding/json"

	"github.com/matzehuels/dockgrid/pkg/errors"
)

// RenderJSON exports a snapshot as a pretty-printed JSON document. Items
// appear in draw order, bottom first.
func RenderJSON(s Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot")
	}
	return append(data, '\n'), nil
}
