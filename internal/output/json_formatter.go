package output

import (
	"encoding/json"

	"github.com/taxgo/itr-calculator/internal/domain"
)

// JSONFormatter renders the full comparison as indented JSON for downstream
// consumers (dashboards, exporters). Consumers read the numbers as-is and
// must not recompute tax with their own rate tables.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Extension() string { return "json" }

func (JSONFormatter) Format(cmp *domain.RegimeComparison) ([]byte, error) {
	return json.MarshalIndent(cmp, "", "  ")
}
