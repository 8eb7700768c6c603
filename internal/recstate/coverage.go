package recstate

import (
	"github.com/rossw/tvrx/internal/models"
)

// FamilyMembers are the household members considered by family coverage,
// in display order.
var FamilyMembers = []string{"Ross", "Wife", "Son"}

// DefaultCoverageThreshold is the per-member fit threshold used when the
// server's health payload does not supply family_coverage_min_fit.
const DefaultCoverageThreshold = 0.4

// CoverageResult is the derived family coverage aggregate for one batch.
// Never persisted; recomputed whenever the batch or threshold changes.
type CoverageResult struct {
	PerMember map[string]bool    // member has at least one item with fit >= threshold
	MaxFit    map[string]float64 // maximum observed fit per member
}

// ComputeCoverage derives coverage from a batch's per-item fit scores.
// Fit entries for names outside [FamilyMembers] are ignored; items without
// fit scores contribute nothing. The computation is order-independent and
// idempotent: the same batch and threshold always yield an identical result.
func ComputeCoverage(items []models.RecommendationItem, threshold float64) CoverageResult {
	result := CoverageResult{
		PerMember: make(map[string]bool, len(FamilyMembers)),
		MaxFit:    make(map[string]float64, len(FamilyMembers)),
	}
	for _, member := range FamilyMembers {
		result.PerMember[member] = false
		result.MaxFit[member] = 0
	}

	for _, item := range items {
		for _, fit := range item.FitByProfile {
			if _, known := result.MaxFit[fit.Name]; !known {
				continue
			}
			if fit.Score > result.MaxFit[fit.Name] {
				result.MaxFit[fit.Name] = fit.Score
			}
			if fit.Score >= threshold {
				result.PerMember[fit.Name] = true
			}
		}
	}

	return result
}

// Covered reports whether every family member is covered.
func (c CoverageResult) Covered() bool {
	for _, member := range FamilyMembers {
		if !c.PerMember[member] {
			return false
		}
	}
	return true
}

// HasStrongPick reports whether any item in the batch is a server-declared
// strong family pick. Independent of the threshold-based coverage
// computation: the two signals must not be conflated.
func HasStrongPick(items []models.RecommendationItem) bool {
	for _, item := range items {
		if item.FamilyStrong {
			return true
		}
	}
	return false
}
