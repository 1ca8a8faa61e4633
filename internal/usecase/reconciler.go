package usecase

import (
	"workshop-service/internal/domain/entity"
)

// Reconcile merges freshly extracted operations with the stored ones.
//
// The document decides which operations exist; the store keeps the values
// entered through the update path. Stored-only operations are dropped.
func Reconcile(stored, extracted entity.Operations) entity.Operations {
	if stored == nil || stored.Equal(extracted) {
		return extracted.Clone()
	}

	merged := make(entity.Operations, len(extracted))
	for name, fresh := range extracted {
		if rec, ok := stored[name]; ok && !rec.IsEmpty() {
			merged[name] = rec
			continue
		}
		merged[name] = fresh
	}
	return merged
}
