package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un insumo o producto vendible de la clínica.
// PackSize y IsDivisible gobiernan la conversión entre unidades completas
// (frasco, caja) y sub-unidades (cc, dosis, pieza). Una vez referenciado por un
// movimiento, los cambios de precio o pack size no alteran asientos pasados.
type Product struct {
	ID            string
	Name          string
	PackSize      int64 // sub-unidades por unidad completa (>= 1)
	IsDivisible   bool  // true para líquidos/fraccionables: se abre un frasco a la vez
	MainUnit      string
	SubUnit       string
	StandardPrice decimal.Decimal // precio por sub-unidad (cliente)
	StaffPrice    decimal.Decimal // precio por sub-unidad (personal)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
