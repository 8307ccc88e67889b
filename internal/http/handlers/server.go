package handlers

import (
	"github.com/rogerio-castellano/catalog-validator/internal/checker"
)

var (
	catalogSource checker.Source
	reportTitle   string
	reportSummary bool
)

func SetCatalogSource(s checker.Source) {
	catalogSource = s
}

// SetReportOptions sets the defaults used when a request does not override them.
func SetReportOptions(title string, summary bool) {
	reportTitle = title
	reportSummary = summary
}
