package fundref

import (
	"time"

	"github.com/rupeeworks/folio/internal/models"
)

func f(v float64) *float64 { return &v }

// fallbackFunds is a small static catalog used when neither the registry
// nor a disk snapshot is available. NAVs are placeholders; the analysis
// degrades gracefully but stays usable.
func fallbackFunds() []*models.Fund {
	now := time.Now()
	return []*models.Fund{
		{
			SchemeCode:   119598,
			SchemeName:   "Parag Parikh Flexi Cap Fund",
			FundHouse:    "PPFAS Mutual Fund",
			Category:     "Flexi Cap",
			NAV:          100.0,
			Return1Y:     f(15.0),
			Return3Y:     f(18.0),
			Return5Y:     f(16.0),
			Volatility:   f(14.0),
			SharpeRatio:  f(1.2),
			ExpenseRatio: f(0.8),
			LastUpdated:  now,
		},
		{
			SchemeCode:   120503,
			SchemeName:   "Quant Flexi Cap Fund",
			FundHouse:    "Quant Mutual Fund",
			Category:     "Flexi Cap",
			NAV:          100.0,
			Return1Y:     f(20.0),
			Return3Y:     f(25.0),
			Return5Y:     f(22.0),
			Volatility:   f(18.0),
			SharpeRatio:  f(1.4),
			ExpenseRatio: f(0.7),
			LastUpdated:  now,
		},
		{
			SchemeCode:   120586,
			SchemeName:   "ICICI Prudential Bluechip Fund",
			FundHouse:    "ICICI Prudential Mutual Fund",
			Category:     "Large Cap",
			NAV:          100.0,
			Return1Y:     f(12.0),
			Return3Y:     f(14.0),
			Return5Y:     f(13.0),
			Volatility:   f(12.0),
			SharpeRatio:  f(1.0),
			ExpenseRatio: f(1.0),
			LastUpdated:  now,
		},
		{
			SchemeCode:   118531,
			SchemeName:   "Franklin India Bluechip Fund",
			FundHouse:    "Franklin Templeton Mutual Fund",
			Category:     "Large Cap",
			NAV:          100.0,
			Return1Y:     f(11.0),
			Return3Y:     f(13.0),
			Return5Y:     f(12.0),
			Volatility:   f(13.0),
			SharpeRatio:  f(0.9),
			ExpenseRatio: f(1.1),
			LastUpdated:  now,
		},
		{
			SchemeCode:   120505,
			SchemeName:   "Axis Midcap Fund",
			FundHouse:    "Axis Mutual Fund",
			Category:     "Mid Cap",
			NAV:          100.0,
			Return1Y:     f(16.0),
			Return3Y:     f(19.0),
			Return5Y:     f(17.0),
			Volatility:   f(16.0),
			SharpeRatio:  f(1.1),
			ExpenseRatio: f(0.9),
			LastUpdated:  now,
		},
	}
}
