package complete

import "github.com/samber/lo"

// normalizeDefaults rewrites a request whose default is an ordered
// sequence into the single-default shape the minibuffer engine
// understands. The whole sequence moves to the front of the candidate
// list in its original order, the remaining candidates follow minus
// anything already placed (relative order preserved), and the default
// collapses to the first element of the sequence.
func normalizeDefaults(req *Request, candidates []string) []string {
	if len(req.Defaults) < 2 {
		return candidates
	}
	rest := lo.Without(candidates, req.Defaults...)
	merged := make([]string, 0, len(req.Defaults)+len(rest))
	merged = append(merged, req.Defaults...)
	merged = append(merged, rest...)
	req.Defaults = req.Defaults[:1]
	return merged
}

// liftDefault works around the minibuffer engine's inability to honor
// an initial input and a default value at the same time. The default
// moves to the front of the candidate list, duplicate occurrences are
// dropped, and the default itself is cleared so the user's initial
// text survives untouched.
func liftDefault(req *Request, candidates []string) []string {
	if len(req.Defaults) == 0 || req.Initial.Text == "" {
		return candidates
	}
	d := req.Defaults[0]
	merged := append([]string{d}, lo.Without(candidates, d)...)
	req.Defaults = nil
	return merged
}
