// Package sequence orders a declarant's filings into the comparison chain:
// major filings sorted chronologically with corrected filings replacing the
// originals they supersede, minor change notices kept aside.
package sequence

import (
	"errors"
	"fmt"
	"sort"

	"declaration_audit/pkg/core/entity"
)

// ErrAmbiguousDeclarant signals that filings retrieved for one name belong
// to more than one declarant. The caller must re-run with an explicit
// declarant identifier; the sequencer only detects the condition.
var ErrAmbiguousDeclarant = errors.New("filings resolve to multiple declarant ids")

// SortByDate orders declarations ascending by (year, submit date). The sort
// is stable so equal keys keep their retrieval order.
func SortByDate(decls []*entity.Declaration) []*entity.Declaration {
	sorted := make([]*entity.Declaration, len(decls))
	copy(sorted, decls)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year < sorted[j].Year
		}
		return sorted[i].SubmitDate < sorted[j].SubmitDate
	})
	return sorted
}

// SortedMajors returns the chronologically sorted major filings: everything
// except significant-change notices.
func SortedMajors(decls []*entity.Declaration) []*entity.Declaration {
	var majors []*entity.Declaration
	for _, d := range decls {
		if !d.Minor {
			majors = append(majors, d)
		}
	}
	return SortByDate(majors)
}

// SortedMinors returns the chronologically sorted change notices.
func SortedMinors(decls []*entity.Declaration) []*entity.Declaration {
	var minors []*entity.Declaration
	for _, d := range decls {
		if d.Minor {
			minors = append(minors, d)
		}
	}
	return SortByDate(minors)
}

// DropSuperseded removes every major filing that a later correction of the
// same year and category fully replaces. The predicate is symmetric inside a
// (year, category) group, so a single pass settles the final set.
func DropSuperseded(majors []*entity.Declaration) []*entity.Declaration {
	superseded := make(map[string]bool)
	for _, d := range majors {
		if d.Minor || d.Subtype != entity.SubtypeCorrected {
			continue
		}
		for _, other := range majors {
			if other.Year == d.Year && other.Category == d.Category && other.Subtype != d.Subtype {
				superseded[other.ID] = true
			}
		}
	}
	if len(superseded) == 0 {
		return majors
	}
	result := make([]*entity.Declaration, 0, len(majors))
	for _, d := range majors {
		if !superseded[d.ID] {
			result = append(result, d)
		}
	}
	return result
}

// GuardNamesakes fails when the declarations span more than one declarant
// identifier, listing the ids seen.
func GuardNamesakes(decls []*entity.Declaration) error {
	seen := make(map[int]bool)
	for _, d := range decls {
		seen[d.DeclarantID] = true
	}
	if len(seen) > 1 {
		ids := make([]int, 0, len(seen))
		for id := range seen {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		return fmt.Errorf("%w: %v", ErrAmbiguousDeclarant, ids)
	}
	return nil
}

// FilterByDeclarant keeps only the filings of one declarant. It is the
// disambiguation hook for namesake collisions.
func FilterByDeclarant(decls []*entity.Declaration, declarantID int) []*entity.Declaration {
	var filtered []*entity.Declaration
	for _, d := range decls {
		if d.DeclarantID == declarantID {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
