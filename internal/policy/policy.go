package policy

import (
	"onlinestore/internal/errs"
)

// Identity is an authenticated caller. A nil *Identity means the request is
// anonymous.
type Identity struct {
	UserID   string
	Username string
	Staff    bool
}

// Operation is the kind of access being attempted.
type Operation int

const (
	List Operation = iota
	Read
	Create
	Write
	Delete
)

func (op Operation) String() string {
	switch op {
	case List:
		return "list"
	case Read:
		return "read"
	case Create:
		return "create"
	case Write:
		return "write"
	case Delete:
		return "delete"
	}
	return "unknown"
}

// Resource is the kind of record an operation targets.
type Resource int

const (
	Product Resource = iota
	Order
)

// Owned is implemented by records that belong to a user. The bool result is
// false when the record has no owner.
type Owned interface {
	OwnerID() (string, bool)
}

// requirement is what the policy table demands for one (resource, operation)
// cell.
type requirement int

const (
	public requirement = iota
	authenticated
	staffOnly
	ownerOrStaff
)

// table is the static access policy, evaluated before any store mutation.
// The catalog is public to read; only staff may change it. Orders require a
// login, and a specific order is visible to its owner and to staff only.
var table = map[Resource]map[Operation]requirement{
	Product: {
		List:   public,
		Read:   public,
		Create: staffOnly,
		Write:  staffOnly,
		Delete: staffOnly,
	},
	Order: {
		List:   authenticated,
		Read:   ownerOrStaff,
		Create: authenticated,
		Write:  ownerOrStaff,
		Delete: ownerOrStaff,
	},
}

// Allow decides whether id may perform op on the given resource kind.
// instance is the concrete record for instance-level operations and nil for
// list/create, where no record exists yet.
//
// The returned error tells the caller how to answer: ErrUnauthenticated for
// anonymous callers hitting a protected cell, ErrForbidden for authenticated
// callers lacking the staff role on staff-only cells, and ErrNotFound when a
// non-staff caller reaches an order they do not own. The last case must stay
// ErrNotFound, not ErrForbidden: answering 403 would confirm the record
// exists.
func Allow(id *Identity, res Resource, op Operation, instance any) error {
	req, ok := table[res][op]
	if !ok {
		return errs.ErrForbidden
	}

	switch req {
	case public:
		return nil

	case authenticated:
		if id == nil {
			return errs.ErrUnauthenticated
		}
		return nil

	case staffOnly:
		if id == nil {
			return errs.ErrUnauthenticated
		}
		if !id.Staff {
			return errs.ErrForbidden
		}
		return nil

	case ownerOrStaff:
		if id == nil {
			return errs.ErrUnauthenticated
		}
		if id.Staff {
			return nil
		}
		owned, ok := instance.(Owned)
		if !ok {
			// No ownership attribute at all: nothing to compare against.
			return errs.ErrNotFound
		}
		owner, hasOwner := owned.OwnerID()
		if !hasOwner || owner != id.UserID {
			return errs.ErrNotFound
		}
		return nil
	}

	return errs.ErrForbidden
}
