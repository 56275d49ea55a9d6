package repository

import "github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"

// InventoryBalanceRepository define el puerto para el saldo por producto.
// Las mutaciones pasan siempre por una transacción del ledger.
type InventoryBalanceRepository interface {
	// Get devuelve el saldo o nil si el producto no tiene fila de inventario.
	Get(productID string) (*entity.InventoryBalance, error)
	// GetForUpdate bloquea la fila para el ciclo leer-calcular-escribir
	// (SELECT FOR UPDATE). Devuelve nil si no existe fila.
	GetForUpdate(productID string) (*entity.InventoryBalance, error)
	Upsert(balance *entity.InventoryBalance) error
}
