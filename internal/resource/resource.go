// Package resource implements the inventory component, immutable crafting
// recipes, and the per-tick decay system that spoils registered resources.
package resource

// Inventory maps resource name to a positive quantity, with an optional
// capacity (-1 means unlimited). A resource removed down to zero is
// dropped from the map rather than kept at zero.
type Inventory struct {
	Quantities map[string]int `json:"quantities"`
	Capacity   int            `json:"capacity"`
}

// NewInventory constructs an empty inventory with the given capacity.
func NewInventory(capacity int) Inventory {
	return Inventory{Quantities: make(map[string]int), Capacity: capacity}
}

// Total returns the sum of every resource quantity held.
func (inv *Inventory) Total() int {
	total := 0
	for _, qty := range inv.Quantities {
		total += qty
	}
	return total
}

// Count returns the quantity held of name.
func (inv *Inventory) Count(name string) int {
	return inv.Quantities[name]
}

// Has reports whether at least amount of name is held.
func (inv *Inventory) Has(name string, amount int) bool {
	return inv.Quantities[name] >= amount
}

// HasAll reports whether every requirement in reqs is met.
func (inv *Inventory) HasAll(reqs map[string]int) bool {
	for name, amount := range reqs {
		if !inv.Has(name, amount) {
			return false
		}
	}
	return true
}

// Add deposits up to amount of name, never exceeding capacity, and
// returns the amount actually added. Unlimited capacity (-1) always
// admits the full amount.
func (inv *Inventory) Add(name string, amount int) int {
	if amount <= 0 {
		return 0
	}
	if inv.Quantities == nil {
		inv.Quantities = make(map[string]int)
	}
	if inv.Capacity < 0 {
		inv.Quantities[name] += amount
		return amount
	}
	room := inv.Capacity - inv.Total()
	if room <= 0 {
		return 0
	}
	added := amount
	if added > room {
		added = room
	}
	inv.Quantities[name] += added
	return added
}

// Remove withdraws up to amount of name, capped at the held quantity, and
// returns the amount actually removed. A slot emptied to zero is deleted.
func (inv *Inventory) Remove(name string, amount int) int {
	have := inv.Quantities[name]
	if amount > have {
		amount = have
	}
	if amount <= 0 {
		return 0
	}
	have -= amount
	if have == 0 {
		delete(inv.Quantities, name)
	} else {
		inv.Quantities[name] = have
	}
	return amount
}

// Clear empties every slot.
func (inv *Inventory) Clear() {
	inv.Quantities = make(map[string]int)
}

// Transfer moves up to amount of name from src to dst, limited by src's
// held quantity and dst's capacity. If dst cannot hold everything
// removed from src, the leftover is returned to src so the operation is
// atomic from the caller's perspective. Returns the amount actually
// received by dst.
func Transfer(src, dst *Inventory, name string, amount int) int {
	removed := src.Remove(name, amount)
	if removed == 0 {
		return 0
	}
	added := dst.Add(name, removed)
	if added < removed {
		src.Add(name, removed-added)
	}
	return added
}

// Recipe is an immutable crafting rule: a set of input quantities
// consumed and output quantities produced. Duration is metadata only;
// no subsystem in this package consumes it.
type Recipe struct {
	Name     string
	Inputs   map[string]int
	Outputs  map[string]int
	Duration int
}

// CanCraft reports whether inv holds every input the recipe requires.
func (r Recipe) CanCraft(inv *Inventory) bool {
	return inv.HasAll(r.Inputs)
}

// Craft consumes the recipe's inputs and produces its outputs, both via
// the inventory helpers (so capacity is enforced on the output side). It
// returns false without mutating inv if any input is missing.
func (r Recipe) Craft(inv *Inventory) bool {
	if !r.CanCraft(inv) {
		return false
	}
	for name, amount := range r.Inputs {
		inv.Remove(name, amount)
	}
	for name, amount := range r.Outputs {
		inv.Add(name, amount)
	}
	return true
}

// Def declares how a named resource behaves: its per-slot cap, per-tick
// decay rate (0 disables decay), and arbitrary embedder-defined
// properties opaque to this package.
type Def struct {
	Name       string
	MaxStack   int
	DecayRate  int
	Properties map[string]any
}

// Registry maps resource name to its definition. Resources absent from
// the registry are never decayed.
type Registry struct {
	order []string
	defs  map[string]Def
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Def)}
}

// Define registers or replaces a resource definition.
func (r *Registry) Define(def Def) {
	if _, exists := r.defs[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.defs[def.Name] = def
}

// Lookup returns the definition for name, if any.
func (r *Registry) Lookup(name string) (Def, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Names returns every defined resource name in definition order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
