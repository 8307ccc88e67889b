package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rogerio-castellano/catalog-validator/internal/catalog"
	"github.com/rogerio-castellano/catalog-validator/internal/logging"
	"github.com/rogerio-castellano/catalog-validator/internal/models"
	"github.com/rogerio-castellano/catalog-validator/internal/report"
	"github.com/rogerio-castellano/catalog-validator/internal/validation"
)

// Source supplies the catalog for one run.
type Source interface {
	Fetch(ctx context.Context) ([]models.Product, error)
}

// Checker runs the fetch, validate and report cycle.
type Checker struct {
	Source   Source
	Reporter *report.Reporter
	Now      func() time.Time

	logger *slog.Logger
}

func New(src Source, rep *report.Reporter) *Checker {
	return &Checker{
		Source:   src,
		Reporter: rep,
		Now:      time.Now,
		logger:   logging.New("checker"),
	}
}

// Run performs one check and writes either the report or a single diagnostic
// line to w. A fetch failure ends the run before any validation; the returned
// result then holds zero products and zero violations.
func (c *Checker) Run(ctx context.Context, w io.Writer) (*models.RunResult, error) {
	result := models.NewRunResult(c.now())
	log := c.logger.With("run_id", result.RunID.String())

	log.Debug("fetching catalog")
	products, err := c.Source.Fetch(ctx)
	if err != nil {
		log.Debug("fetch failed", "error", err)
		if _, werr := fmt.Fprintln(w, Diagnostic(err)); werr != nil {
			return result, errors.Join(err, werr)
		}
		return result, err
	}

	result.TotalProducts = len(products)
	log.Debug("validating catalog", "products", len(products))
	result.Add(validation.ValidateAll(products)...)

	log.Debug("reporting", "violations", len(result.Violations))
	if err := c.Reporter.Render(w, result); err != nil {
		return result, err
	}
	return result, nil
}

// Diagnostic renders the one-line message printed when a run fails.
func Diagnostic(err error) string {
	var fe *catalog.FetchError
	if errors.As(err, &fe) {
		switch fe.Kind {
		case catalog.KindNetwork:
			return fmt.Sprintf("❌ Network Error: %v", fe.Err)
		case catalog.KindStatus:
			return fmt.Sprintf("❌ API Error: Received status code %d", fe.StatusCode)
		case catalog.KindDecode:
			return fmt.Sprintf("❌ JSON Parsing Error: %v", fe.Err)
		case catalog.KindNotList:
			return "❌ API Error: Response is not a list of products"
		}
	}
	return fmt.Sprintf("❌ Unexpected Error: %v", err)
}

func (c *Checker) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
