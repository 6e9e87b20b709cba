// Package ordering reordena listas con sort_order (menú de páginas del panel).
package ordering

// Direction sentido del movimiento.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Step separación entre posiciones; deja huecos para insertar a mano después.
const Step = 10

// Sortable elemento con sort_order mutable. Se implementa sobre el puntero.
type Sortable[T any] interface {
	*T
	SetSortOrder(int)
}

// ParseDirection acepta "up" / "down".
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), true
	}
	return "", false
}

// Move intercambia el elemento index con su vecino y renumera toda la lista como
// (posición+1)*Step. Devuelve una copia; la entrada no se modifica.
// Mover el primero hacia arriba, el último hacia abajo o un índice fuera de rango
// no cambia nada y devuelve ok=false.
func Move[T any, P Sortable[T]](items []T, index int, dir Direction) (out []T, ok bool) {
	if dir != Up && dir != Down {
		return items, false
	}
	target := index - 1
	if dir == Down {
		target = index + 1
	}
	if index < 0 || index >= len(items) || target < 0 || target >= len(items) {
		return items, false
	}

	out = make([]T, len(items))
	copy(out, items)
	out[index], out[target] = out[target], out[index]
	Renumber[T, P](out)
	return out, true
}

// Renumber asigna sort_order = (posición+1)*Step a todos los elementos.
func Renumber[T any, P Sortable[T]](items []T) {
	for i := range items {
		P(&items[i]).SetSortOrder((i + 1) * Step)
	}
}
