package sequence

import (
	"errors"
	"testing"

	"declaration_audit/pkg/core/entity"
)

func decl(id string, declarantID, category, year, subtype int, submitDate string) *entity.Declaration {
	return entity.NewDeclaration(category, id, declarantID, submitDate, year, subtype, "")
}

func ids(decls []*entity.Declaration) []string {
	out := make([]string, len(decls))
	for i, d := range decls {
		out[i] = d.ID
	}
	return out
}

func TestSortByDate(t *testing.T) {
	input := []*entity.Declaration{
		decl("c", 1, entity.CategoryAnnual, 2021, entity.SubtypeRegular, "2022-03-20"),
		decl("a", 1, entity.CategoryAnnual, 2019, entity.SubtypeRegular, "2020-02-11"),
		decl("b", 1, entity.CategoryAnnual, 2020, entity.SubtypeRegular, "2021-01-05"),
		decl("d", 1, entity.CategoryAtDismissal, 2021, entity.SubtypeRegular, "2021-09-01"),
	}

	sorted := SortByDate(input)
	expected := []string{"a", "b", "d", "c"}
	for i, id := range ids(sorted) {
		if id != expected[i] {
			t.Fatalf("order = %v, expected %v", ids(sorted), expected)
		}
	}
	// Input order is preserved.
	if input[0].ID != "c" {
		t.Error("SortByDate mutated its input")
	}
}

func TestMajorsMinorsSplit(t *testing.T) {
	all := []*entity.Declaration{
		decl("annual", 1, entity.CategoryAnnual, 2020, entity.SubtypeRegular, "2021-02-01"),
		decl("notice", 1, entity.CategoryChangeNotice, 2021, entity.SubtypeChangeNotice, "2021-06-15"),
	}

	majors := SortedMajors(all)
	if len(majors) != 1 || majors[0].ID != "annual" {
		t.Errorf("majors = %v", ids(majors))
	}
	minors := SortedMinors(all)
	if len(minors) != 1 || minors[0].ID != "notice" {
		t.Errorf("minors = %v", ids(minors))
	}
}

func TestDropSuperseded(t *testing.T) {
	original := decl("orig", 1, entity.CategoryAnnual, 2020, entity.SubtypeRegular, "2021-02-01")
	corrected := decl("corr", 1, entity.CategoryAnnual, 2020, entity.SubtypeCorrected, "2021-04-10")
	otherYear := decl("prev", 1, entity.CategoryAnnual, 2019, entity.SubtypeRegular, "2020-02-01")
	otherCategory := decl("dism", 1, entity.CategoryAtDismissal, 2020, entity.SubtypeRegular, "2020-08-01")

	kept := DropSuperseded([]*entity.Declaration{otherYear, original, corrected, otherCategory})
	got := ids(kept)
	expected := map[string]bool{"prev": true, "corr": true, "dism": true}
	if len(got) != 3 {
		t.Fatalf("kept = %v", got)
	}
	for _, id := range got {
		if !expected[id] {
			t.Errorf("unexpected survivor %s in %v", id, got)
		}
	}
}

func TestDropSupersededNoCorrection(t *testing.T) {
	majors := []*entity.Declaration{
		decl("a", 1, entity.CategoryAnnual, 2019, entity.SubtypeRegular, "2020-02-01"),
		decl("b", 1, entity.CategoryAnnual, 2020, entity.SubtypeRegular, "2021-02-01"),
	}
	if kept := DropSuperseded(majors); len(kept) != 2 {
		t.Errorf("kept = %v", ids(kept))
	}
}

func TestGuardNamesakes(t *testing.T) {
	same := []*entity.Declaration{
		decl("a", 7, entity.CategoryAnnual, 2019, entity.SubtypeRegular, ""),
		decl("b", 7, entity.CategoryAnnual, 2020, entity.SubtypeRegular, ""),
	}
	if err := GuardNamesakes(same); err != nil {
		t.Errorf("single declarant rejected: %v", err)
	}

	mixed := append(same, decl("c", 8, entity.CategoryAnnual, 2020, entity.SubtypeRegular, ""))
	err := GuardNamesakes(mixed)
	if !errors.Is(err, ErrAmbiguousDeclarant) {
		t.Fatalf("expected ErrAmbiguousDeclarant, got %v", err)
	}
}

func TestFilterByDeclarant(t *testing.T) {
	mixed := []*entity.Declaration{
		decl("a", 7, entity.CategoryAnnual, 2019, entity.SubtypeRegular, ""),
		decl("b", 8, entity.CategoryAnnual, 2019, entity.SubtypeRegular, ""),
		decl("c", 7, entity.CategoryAnnual, 2020, entity.SubtypeRegular, ""),
	}

	filtered := FilterByDeclarant(mixed, 7)
	if len(filtered) != 2 {
		t.Fatalf("filtered = %v", ids(filtered))
	}
	if err := GuardNamesakes(filtered); err != nil {
		t.Errorf("filtered set still ambiguous: %v", err)
	}
}
