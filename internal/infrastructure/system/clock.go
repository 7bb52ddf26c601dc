package system

import (
	"time"

	"github.com/GregCodi/WarehousePRO/internal/application/ports"
)

var _ ports.Clock = Clock{}

// Clock reloj del sistema en UTC.
type Clock struct{}

func (Clock) Now() time.Time { return time.Now().UTC() }
