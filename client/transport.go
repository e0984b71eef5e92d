package client

import (
	"context"
	"encoding/json"
)

// Transport carries a Request to wherever it is served and returns the raw
// JSON result. A nil result means the call succeeded with no content.
type Transport interface {
	Do(ctx context.Context, req Request) (json.RawMessage, error)
}
