package breeding

import (
	"context"
	"fmt"
	"strings"

	"livestock-management/internal/domain/animals"
)

// Resolver mapea una referencia suelta (ID, nombre o chapeta) a un ID
// canónico dentro del hato de un dueño. Lo implementa animals.Service.
// Referencia vacía resuelve a "" sin error.
type Resolver interface {
	ResolveRef(ctx context.Context, ownerUserID, ref string) (string, error)
}

// DetectFamilyRelationship clasifica el parentesco directo entre dos
// animales: padre/madre-hijo, hermanos (madre o padre resuelto común) o
// abuelo-nieto. Cualquier clasificación distinta de none es veto duro
// (ShouldBlock), previo e independiente del scoring.
//
// La clasificación es simétrica: intercambiar a y b da el mismo Type y
// ShouldBlock (Details puede reflejar el orden de argumentos).
// Una referencia irresoluble se trata como ausente, no como error
// (calidad de datos, no fallo).
func DetectFamilyRelationship(ctx context.Context, res Resolver, a, b animals.Animal) Relationship {
	aMother := resolveQuiet(ctx, res, a.OwnerUserID, a.Ancestry.MotherID)
	aFather := resolveQuiet(ctx, res, a.OwnerUserID, a.Ancestry.FatherID)
	bMother := resolveQuiet(ctx, res, b.OwnerUserID, b.Ancestry.MotherID)
	bFather := resolveQuiet(ctx, res, b.OwnerUserID, b.Ancestry.FatherID)

	// Padre/madre e hijo
	if sameID(a.ID, bMother) || sameID(a.ID, bFather) {
		return Relationship{
			Type:        RelationParentChild,
			ShouldBlock: true,
			Details:     fmt.Sprintf("%s es progenitor directo de %s", a.Name, b.Name),
		}
	}
	if sameID(b.ID, aMother) || sameID(b.ID, aFather) {
		return Relationship{
			Type:        RelationParentChild,
			ShouldBlock: true,
			Details:     fmt.Sprintf("%s es progenitor directo de %s", b.Name, a.Name),
		}
	}

	// Hermanos: misma madre resuelta o mismo padre resuelto.
	if (aMother != "" && sameID(aMother, bMother)) || (aFather != "" && sameID(aFather, bFather)) {
		return Relationship{
			Type:        RelationSiblings,
			ShouldBlock: true,
			Details:     fmt.Sprintf("%s y %s comparten al menos un progenitor", a.Name, b.Name),
		}
	}

	// Abuelo-nieto: el ID de uno aparece entre los 4 abuelos resueltos del otro.
	if idInResolved(ctx, res, a.ID, b) {
		return Relationship{
			Type:        RelationGrandparent,
			ShouldBlock: true,
			Details:     fmt.Sprintf("%s es abuelo/a de %s", a.Name, b.Name),
		}
	}
	if idInResolved(ctx, res, b.ID, a) {
		return Relationship{
			Type:        RelationGrandparent,
			ShouldBlock: true,
			Details:     fmt.Sprintf("%s es abuelo/a de %s", b.Name, a.Name),
		}
	}

	return Relationship{Type: RelationNone, ShouldBlock: false}
}

// resolveQuiet degrada cualquier error de resolución a slot ausente.
func resolveQuiet(ctx context.Context, res Resolver, ownerID, ref string) string {
	if strings.TrimSpace(ref) == "" {
		return ""
	}
	id, err := res.ResolveRef(ctx, ownerID, ref)
	if err != nil {
		return ""
	}
	return id
}

func idInResolved(ctx context.Context, res Resolver, id string, of animals.Animal) bool {
	for _, ref := range of.Ancestry.Grandparents() {
		if sameID(id, resolveQuiet(ctx, res, of.OwnerUserID, ref)) {
			return true
		}
	}
	return false
}

func sameID(a, b string) bool {
	return a != "" && b != "" && strings.EqualFold(a, b)
}
