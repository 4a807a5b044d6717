package pantry

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// MutationKind says how a merge plan lands in storage.
type MutationKind int

const (
	// MutationInsert creates a new pantry row.
	MutationInsert MutationKind = iota
	// MutationUpdate rewrites quantity and expiry on an existing row.
	MutationUpdate
)

// Mutation is the storage-neutral outcome of merging one incoming item.
// The repository executes it inside the merge transaction.
type Mutation struct {
	Kind      MutationKind
	TargetID  uuid.UUID // set for updates
	Name      string
	Quantity  float64
	Unit      *string
	ExpiresOn *time.Time
}

// PlanMerge decides how an incoming item folds into the user's existing
// rows. The candidate set is every row whose name key and unit match the
// incoming item (unit comparison is NULL-safe). With at least one
// candidate the earliest known expiry wins the merge target: quantities
// add, and the expiry reconciles to the earlier of the two when both are
// known, or to whichever side knows one. With no candidate the item is
// inserted as given.
//
// The existing slice must already be scoped to one user; PlanMerge never
// looks at ownership.
func PlanMerge(existing []Item, in Incoming) (Mutation, error) {
	if err := in.Validate(); err != nil {
		return Mutation{}, err
	}

	key := NameKey(in.Name)
	var candidates []Item
	for _, it := range existing {
		if NameKey(it.Name) == key && SameUnit(it.Unit, in.Unit) {
			candidates = append(candidates, it)
		}
	}

	if len(candidates) == 0 {
		return Mutation{
			Kind:      MutationInsert,
			Name:      in.Name,
			Quantity:  in.Quantity,
			Unit:      NormalizeUnit(in.Unit),
			ExpiresOn: in.ExpiresOn,
		}, nil
	}

	// Rows with a known expiry sort before rows without one, earliest
	// first. Ties keep the incoming order, so the pick is deterministic.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].ExpiresOn, candidates[j].ExpiresOn
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})

	target := candidates[0]
	return Mutation{
		Kind:      MutationUpdate,
		TargetID:  target.ID,
		Name:      target.Name,
		Quantity:  target.Quantity + in.Quantity,
		Unit:      target.Unit,
		ExpiresOn: reconcileExpiry(target.ExpiresOn, in.ExpiresOn),
	}, nil
}

// reconcileExpiry keeps the earlier of two optional expiry dates. An
// absent date never overwrites a present one.
func reconcileExpiry(existing, incoming *time.Time) *time.Time {
	if incoming == nil {
		return existing
	}
	if existing == nil {
		return incoming
	}
	if incoming.Before(*existing) {
		return incoming
	}
	return existing
}
