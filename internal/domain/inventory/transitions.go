package inventory

import (
	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

// allowed tabla de transiciones: pending -> {in_progress, completed, cancelled},
// in_progress -> {completed, cancelled}. Los estados terminales no tienen salidas.
var allowed = map[entity.MovementStatus][]entity.MovementStatus{
	entity.MovementPending:    {entity.MovementInProgress, entity.MovementCompleted, entity.MovementCancelled},
	entity.MovementInProgress: {entity.MovementCompleted, entity.MovementCancelled},
}

// Transition valida el paso from -> to.
// Reentrar al mismo estado no es error: devuelve changed=false y el llamador no hace nada.
func Transition(from, to entity.MovementStatus) (changed bool, err error) {
	if !to.Valid() {
		return false, domain.NewValidation("status", "estado desconocido: "+string(to))
	}
	if from == to {
		return false, nil
	}
	for _, s := range allowed[from] {
		if s == to {
			return true, nil
		}
	}
	return false, &domain.TransitionError{From: string(from), To: string(to)}
}
