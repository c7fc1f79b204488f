package breeding

import (
	"context"
	"errors"
	"strings"
	"testing"

	"livestock-management/internal/domain/animals"
)

// passthroughResolver asume referencias ya canónicas (slots con IDs).
type passthroughResolver struct{}

func (passthroughResolver) ResolveRef(_ context.Context, _ string, ref string) (string, error) {
	return strings.TrimSpace(ref), nil
}

// failingResolver simula referencias irresolubles.
type failingResolver struct{}

func (failingResolver) ResolveRef(_ context.Context, _ string, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", nil
	}
	return "", errors.New("unknown ref")
}

func TestDetectFamilyRelationship_ParentChild(t *testing.T) {
	father := bovino("padre-1", "Sultán", animals.GenderMale)
	child := bovino("cria-1", "Lucera", animals.GenderFemale)
	child.Ancestry.FatherID = "padre-1"

	rel := DetectFamilyRelationship(context.Background(), passthroughResolver{}, father, child)
	if rel.Type != RelationParentChild || !rel.ShouldBlock {
		t.Fatalf("expected parent-child block, got %+v", rel)
	}
}

func TestDetectFamilyRelationship_Siblings_SameMother(t *testing.T) {
	a := bovino("a1", "Canela", animals.GenderFemale)
	b := bovino("b1", "Pinto", animals.GenderMale)
	a.Ancestry.MotherID = "M1"
	a.Ancestry.FatherID = "PA"
	b.Ancestry.MotherID = "M1"
	b.Ancestry.FatherID = "PB" // padres distintos, madre común

	rel := DetectFamilyRelationship(context.Background(), passthroughResolver{}, a, b)
	if rel.Type != RelationSiblings || !rel.ShouldBlock {
		t.Fatalf("expected siblings block, got %+v", rel)
	}
}

func TestDetectFamilyRelationship_GrandparentGrandchild(t *testing.T) {
	abuelo := bovino("abuelo-1", "Rey", animals.GenderMale)
	nieta := bovino("nieta-1", "Flor", animals.GenderFemale)
	nieta.Ancestry.PaternalGrandfatherID = "abuelo-1"

	rel := DetectFamilyRelationship(context.Background(), passthroughResolver{}, abuelo, nieta)
	if rel.Type != RelationGrandparent || !rel.ShouldBlock {
		t.Fatalf("expected grandparent block, got %+v", rel)
	}
}

func TestDetectFamilyRelationship_None(t *testing.T) {
	a := bovino("a1", "Canela", animals.GenderFemale)
	b := bovino("b1", "Pinto", animals.GenderMale)
	a.Ancestry.MotherID = "MA"
	b.Ancestry.MotherID = "MB"

	rel := DetectFamilyRelationship(context.Background(), passthroughResolver{}, a, b)
	if rel.Type != RelationNone || rel.ShouldBlock {
		t.Fatalf("expected no relationship, got %+v", rel)
	}
}

func TestDetectFamilyRelationship_Symmetric(t *testing.T) {
	father := bovino("padre-1", "Sultán", animals.GenderMale)
	child := bovino("cria-1", "Lucera", animals.GenderFemale)
	child.Ancestry.FatherID = "padre-1"

	ab := DetectFamilyRelationship(context.Background(), passthroughResolver{}, father, child)
	ba := DetectFamilyRelationship(context.Background(), passthroughResolver{}, child, father)

	if ab.Type != ba.Type || ab.ShouldBlock != ba.ShouldBlock {
		t.Fatalf("expected symmetric classification, got %+v vs %+v", ab, ba)
	}
}

func TestDetectFamilyRelationship_UnresolvableRefsAreAbsent(t *testing.T) {
	// Misma referencia de madre, pero el resolver no la puede resolver:
	// se trata como slot ausente (calidad de datos), no como hermanos.
	a := bovino("a1", "Canela", animals.GenderFemale)
	b := bovino("b1", "Pinto", animals.GenderMale)
	a.Ancestry.MotherID = "La Mona"
	b.Ancestry.MotherID = "La Mona"

	rel := DetectFamilyRelationship(context.Background(), failingResolver{}, a, b)
	if rel.Type != RelationNone || rel.ShouldBlock {
		t.Fatalf("expected none with unresolvable refs, got %+v", rel)
	}
}

func TestDetectFamilyRelationship_CaseInsensitiveIDs(t *testing.T) {
	a := bovino("A1", "Canela", animals.GenderFemale)
	b := bovino("b1", "Pinto", animals.GenderMale)
	b.Ancestry.FatherID = "a1"

	rel := DetectFamilyRelationship(context.Background(), passthroughResolver{}, a, b)
	if rel.Type != RelationParentChild {
		t.Fatalf("expected case-insensitive parent match, got %+v", rel)
	}
}
