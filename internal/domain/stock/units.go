// Package stock implementa el modelo de conversión entre unidades completas
// (frasco, caja) y sub-unidades (cc, dosis, pieza) de un producto (servicio de
// dominio, sin I/O). El ledger lo invoca dentro de su sección crítica.
package stock

import (
	"fmt"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain"
)

// TotalSubUnits devuelve el total de sub-unidades disponibles:
// FullQty*PackSize + OpenedQty.
func TotalSubUnits(full, opened, packSize int64) int64 {
	return full*packSize + opened
}

// Deduct descuenta qty sub-unidades del saldo (full, opened) y devuelve el
// saldo resultante. Falla con ErrInsufficientStock sin modificar nada si el
// producto no alcanza a cubrir la cantidad.
//
// Divisible (líquidos/fraccionables): se consume primero OpenedQty y luego se
// abre un frasco a la vez (FullQty -= 1, el contenido pasa a abierto) hasta
// cubrir el restante. Se modela frasco por frasco porque los frascos a medio
// usar deben conservarse a granularidad de sub-unidad para ventas posteriores.
//
// No divisible: solo importa el agregado; se resta sobre el total y se
// re-deriva full = total/packSize, opened = total%packSize.
func Deduct(full, opened, packSize int64, divisible bool, qty int64) (int64, int64, error) {
	if packSize < 1 || qty < 0 || full < 0 || opened < 0 {
		return 0, 0, fmt.Errorf("deduct(pack=%d, qty=%d): %w", packSize, qty, domain.ErrInvalidInput)
	}

	if !divisible {
		total := TotalSubUnits(full, opened, packSize) - qty
		if total < 0 {
			return 0, 0, domain.ErrInsufficientStock
		}
		return total / packSize, total % packSize, nil
	}

	newFull, newOpened := full, opened
	remaining := qty
	if newOpened >= remaining {
		return newFull, newOpened - remaining, nil
	}
	remaining -= newOpened
	newOpened = 0
	for remaining > 0 {
		if newFull == 0 {
			return 0, 0, domain.ErrInsufficientStock
		}
		// Abrir un frasco: su contenido pasa a sub-unidades abiertas
		newFull--
		newOpened = packSize
		if newOpened >= remaining {
			newOpened -= remaining
			remaining = 0
		} else {
			remaining -= newOpened
			newOpened = 0
		}
	}
	return newFull, newOpened, nil
}

// AddSubUnits reincorpora qty sub-unidades al saldo (entrada o retorno por
// anulación), reempacando con avidez: primero unidades completas, el resto
// queda abierto. El desborde de opened sobre packSize se normaliza a full.
func AddSubUnits(full, opened, packSize, qty int64) (int64, int64) {
	if packSize < 1 {
		return full, opened + qty
	}
	newFull := full + qty/packSize
	newOpened := opened + qty%packSize
	if newOpened >= packSize {
		newFull += newOpened / packSize
		newOpened = newOpened % packSize
	}
	return newFull, newOpened
}
