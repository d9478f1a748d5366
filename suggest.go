package peglr

import "github.com/agnivade/levenshtein"

// SuggestLabel returns the closest match to got among candidates
// (typically the labels of rules that were tried at a failed
// position), or "" if candidates is empty. It exists for CLI/tooling
// error reports, not for the engine itself — the engine makes no
// recovery attempt per the all-or-nothing error contract.
func SuggestLabel(got string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	best := candidates[0]
	bestDist := levenshtein.ComputeDistance(got, best)
	for _, c := range candidates[1:] {
		if d := levenshtein.ComputeDistance(got, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
