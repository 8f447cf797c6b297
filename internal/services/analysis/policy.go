// Package analysis implements the portfolio analysis and rebalancing
// engine: holding enrichment, allocation gaps, weighted metrics, the
// tax-aware action generator, and the summary.
package analysis

// ModelVersion tags every analysis response.
const ModelVersion = "portfolio-analyzer-v1"

// Indian capital-gains tax policy for equity mutual funds.
const (
	ltcgThresholdDays = 365    // holding period for LTCG treatment
	ltcgTaxRate       = 0.10   // 10% above the annual exemption
	stcgTaxRate       = 0.15   // 15% flat
	ltcgExemption     = 100000 // INR 1 lakh per year
)

// Rebalancing thresholds. These are policy constants, not tuning knobs;
// changing them changes the product's advice.
const (
	highPriorityGap       = 0.15 // >15% off target
	mediumPriorityGap     = 0.05 // 5-15% off target
	concentrationLimit    = 0.40 // single fund >40% of portfolio
	categoryConcentration = 0.35 // category >35% of portfolio
	minorGapIgnore        = 0.01 // gaps within 1% are left alone
)

// Sale deferral: a lot close to LTCG eligibility is held back when
// selling it is not needed to cover the bulk of the class reduction.
const (
	deferralWindowDays = 90
	deferralShare      = 0.5
)

// Alignment and presentation.
const (
	alignedCutoff    = 0.85
	maxPrimaryIssues = 5
	issueGapCutoff   = 0.05
)

// ADD_NEW candidate selection.
const topCandidates = 2

// enrichConcurrency bounds concurrent fund lookups per request.
const enrichConcurrency = 8
