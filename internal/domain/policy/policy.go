// Package policy resuelve la industria de una empresa en un conjunto de
// capacidades. Es la única costura por la que entra el comportamiento por
// industria: ningún otro componente ramifica sobre la industria directamente.
package policy

import "github.com/Rowther/multitenantcrm/internal/domain/entity"

// Policy conjunto de capacidades derivado de la industria.
type Policy struct {
	// CategoryVocabulary categorías de producto admitidas en las líneas de
	// una orden. Vacío significa que la industria no maneja líneas de
	// producto (technical_solutions usa asset_code + categoría del activo).
	CategoryVocabulary map[string]struct{}

	// RequiresAssetCode exige asset_code y asset_category en la orden.
	RequiresAssetCode bool

	// CompletionRequiresAttachments activa el candado de cierre: pasar a
	// COMPLETED exige adjuntos en la misma operación.
	CompletionRequiresAttachments bool
}

// AllowsCategory indica si la categoría pertenece al vocabulario.
func (p Policy) AllowsCategory(category string) bool {
	_, ok := p.CategoryVocabulary[category]
	return ok
}

// AllowsProducts indica si la industria admite líneas de producto.
func (p Policy) AllowsProducts() bool {
	return len(p.CategoryVocabulary) > 0
}

func vocabulary(categories ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		m[c] = struct{}{}
	}
	return m
}

var (
	furnitureVocabulary = vocabulary(
		"WARDROBE", "SOFA", "BED", "TABLE", "CHAIR", "CABINET", "OTHER",
	)
	automotiveVocabulary = vocabulary(
		"ENGINE", "TRANSMISSION", "BRAKES", "ELECTRICAL", "BODYWORK", "TIRES", "OTHER",
	)
)

// Resolve devuelve la política de la industria. Función pura; industrias
// desconocidas caen al vocabulario de furniture con cierre sin candado
// (default permisivo).
func Resolve(industry string) Policy {
	switch industry {
	case entity.IndustryFurniture:
		return Policy{CategoryVocabulary: furnitureVocabulary}
	case entity.IndustryAutomotive:
		return Policy{CategoryVocabulary: automotiveVocabulary}
	case entity.IndustryTechnicalSolutions:
		return Policy{
			RequiresAssetCode:             true,
			CompletionRequiresAttachments: true,
		}
	default:
		return Policy{CategoryVocabulary: furnitureVocabulary}
	}
}
