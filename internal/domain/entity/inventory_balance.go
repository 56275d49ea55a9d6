package entity

import "time"

// InventoryBalance representa el saldo actual de un producto: unidades
// completas sin abrir más sub-unidades sueltas/abiertas. Para productos
// divisibles se mantiene 0 <= OpenedQty < PackSize; los no divisibles se
// normalizan con la misma regla. El total de sub-unidades
// (FullQty*PackSize + OpenedQty) nunca puede quedar negativo.
//
// Esta fila solo la muta el ledger de stock, siempre bajo SELECT FOR UPDATE.
type InventoryBalance struct {
	ProductID string
	FullQty   int64
	OpenedQty int64
	UpdatedAt time.Time
}
