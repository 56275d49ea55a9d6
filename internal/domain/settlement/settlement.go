// Package settlement deriva el estado de pago y el saldo pendiente de una
// venta a partir de su monto neto y los abonos registrados (servicio de
// dominio, sin I/O).
package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
)

// Compute calcula (estado, saldo) según la regla:
//
//	saldo  = neto - pagado, con piso en 0 para persistencia (un valor negativo
//	         señala sobrepago/vueltas y nunca se guarda como saldo negativo)
//	PAID    si neto - pagado <= 0
//	PARTIAL si hay abonos y queda saldo
//	UNPAID  si no hay abonos y queda saldo
//
// Un neto negativo (descuento mayor al total) resulta PAID con saldo 0; la
// contabilidad del cambio a favor es asunto de la capa de reportes.
func Compute(net, paid decimal.Decimal) (status string, remaining decimal.Decimal) {
	remaining = net.Sub(paid)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return entity.PaymentStatusPaid, decimal.Zero
	}
	if paid.GreaterThan(decimal.Zero) {
		return entity.PaymentStatusPartial, remaining
	}
	return entity.PaymentStatusUnpaid, remaining
}
