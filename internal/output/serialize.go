package output

import (
	"encoding/json"
	"fmt"

	"github.com/mlaurent/restodoc/internal/entity"
)

// Marshal serializes a ParseResult into the plain nested mapping of the
// output contract and checks it against the schema before handing it out.
func Marshal(result *entity.ParseResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nil parse result")
	}
	b, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	if err := ValidateJSONAgainstSchema(BuildResultJSONSchema(), b); err != nil {
		return nil, fmt.Errorf("result violates output contract: %w", err)
	}
	return b, nil
}
