package calculation

import (
	"github.com/taxgo/itr-calculator/internal/domain"
)

// Compare runs the full computation under both regimes and reports the
// cheaper one with the absolute savings from choosing it.
func (e *Engine) Compare(ret *domain.TaxReturn) *domain.RegimeComparison {
	oldRes := e.ComputeTax(ret, domain.RegimeOld)
	newRes := e.ComputeTax(ret, domain.RegimeNew)

	recommended := domain.RegimeNew
	if oldRes.TotalTaxLiability.LessThan(newRes.TotalTaxLiability) {
		recommended = domain.RegimeOld
	}

	return &domain.RegimeComparison{
		Old:         oldRes,
		New:         newRes,
		Recommended: recommended,
		Savings:     oldRes.TotalTaxLiability.Sub(newRes.TotalTaxLiability).Abs(),
	}
}

// Recompute refreshes the cached regime totals on the return from the
// current inputs. The cached fields are display/persistence conveniences;
// the engine output is the single source of truth.
func (e *Engine) Recompute(ret *domain.TaxReturn) *domain.RegimeComparison {
	cmp := e.Compare(ret)
	ret.TaxOldRegime = cmp.Old.TotalTaxLiability
	ret.TaxNewRegime = cmp.New.TotalTaxLiability
	return cmp
}
