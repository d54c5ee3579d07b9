package ingest

import (
	"strings"

	"github.com/audiologapp/audiolog/internal/errors"
)

// Adapter translates one vendor's raw CSV rows into canonical ingestion
// rows. The set of adapters is fixed; one is selected per ingestion run.
type Adapter interface {
	// Vendor returns the seeded vendor name rows are attributed to.
	Vendor() string
	// Columns returns the fixed field count of this vendor's export.
	Columns() int
	// ParseRow maps one positional CSV record to a canonical row.
	ParseRow(record []string) (*Row, error)
}

// ForVendor selects the adapter for a vendor name as given on the command
// line. Both the short spelling and the seeded vendor name are accepted.
func ForVendor(name string) (Adapter, error) {
	switch strings.ToLower(name) {
	case "audible", "audible.com":
		return audibleAdapter{}, nil
	case "cloudlibrary":
		return cloudLibraryAdapter{}, nil
	default:
		return nil, errors.Validationf("unknown vendor %q", name)
	}
}
