package domain

// Store identifies a store plant
type Store string

const (
	Store410  Store = "410"
	Store658  Store = "658"
	Store659  Store = "659"
	Store1181 Store = "1181"
)

// DefaultStore is preselected on a fresh sales form
const DefaultStore = Store410

// Stores lists every store plant in display order
var Stores = []Store{Store410, Store658, Store659, Store1181}

// IsValid checks if the store is one of the known plants
func (s Store) IsValid() bool {
	switch s {
	case Store410, Store658, Store659, Store1181:
		return true
	default:
		return false
	}
}
