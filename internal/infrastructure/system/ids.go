package system

import (
	"github.com/google/uuid"

	"github.com/GregCodi/WarehousePRO/internal/application/ports"
)

var _ ports.IDGenerator = UUIDGenerator{}

// UUIDGenerator genera UUIDv7 (ordenables por tiempo). Si falla la lectura de entropía
// cae a UUIDv4.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
