package breeding

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"livestock-management/internal/domain/animals"
)

func TestExtractLineage_NormalizesAndDedupes(t *testing.T) {
	a := animals.Animal{
		Ancestry: animals.Ancestry{
			FatherID:              " toro-1 ",
			MotherID:              "vaca-2",
			PaternalGrandfatherID: "TORO-1", // duplicado tras normalizar
			PaternalGrandmotherID: "",
			MaternalGrandfatherID: "abuelo-m",
		},
	}

	got := ExtractLineage(a)
	want := []string{"TORO-1", "VACA-2", "ABUELO-M"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lineage mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractLineage_EmptyAncestry(t *testing.T) {
	got := ExtractLineage(animals.Animal{})
	if len(got) != 0 {
		t.Fatalf("expected empty lineage, got %v", got)
	}
}

func TestExtractLineage_SlotOrder(t *testing.T) {
	anc := animals.Ancestry{
		FatherID:              "P",
		MotherID:              "M",
		PaternalGrandfatherID: "AP1",
		PaternalGrandmotherID: "AP2",
		MaternalGrandfatherID: "AM1",
		MaternalGrandmotherID: "AM2",
	}
	anc.GreatGrandparents[0] = "B1"
	anc.GreatGrandparents[7] = "B8"

	got := ExtractLineage(animals.Animal{Ancestry: anc})
	want := []string{"P", "M", "AP1", "AP2", "AM1", "AM2", "B1", "B8"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("slot order mismatch (-want +got):\n%s", diff)
	}
}

func TestFindCommonAncestors_FollowsFirstArgOrder(t *testing.T) {
	a := []string{"X", "S2", "Y", "S1"}
	b := []string{"S1", "Z", "S2"}

	got := FindCommonAncestors(a, b)
	want := []string{"S2", "S1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("common ancestors mismatch (-want +got):\n%s", diff)
	}
}

func TestFindCommonAncestors_SymmetricContent(t *testing.T) {
	a := []string{"A", "B", "C"}
	b := []string{"C", "A", "D"}

	ab := FindCommonAncestors(a, b)
	ba := FindCommonAncestors(b, a)

	if len(ab) != len(ba) {
		t.Fatalf("expected same cardinality, got %v vs %v", ab, ba)
	}
	set := map[string]bool{}
	for _, tok := range ab {
		set[tok] = true
	}
	for _, tok := range ba {
		if !set[tok] {
			t.Fatalf("token %s missing in symmetric result %v vs %v", tok, ab, ba)
		}
	}
}

func TestFindCommonAncestors_EmptyInputs(t *testing.T) {
	if got := FindCommonAncestors(nil, []string{"A"}); len(got) != 0 {
		t.Fatalf("expected empty intersection, got %v", got)
	}
	if got := FindCommonAncestors(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty intersection, got %v", got)
	}
}
