package core

// Role identifies which side of the marketplace a connection speaks for.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// Profile is the display metadata a client supplies at registration.
// The registry stores it untouched for customers and sellers; the admin
// slot only ever stores the public projection.
type Profile struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	ShopName string `json:"shop_name,omitempty"`
}

// Public returns the profile without fields that must not reach other
// clients through presence broadcasts.
func (p Profile) Public() Profile {
	p.Email = ""
	return p
}

// Entry records one connected participant. Handle is the connection id
// owning the entry; the admin entry has no participant ID.
type Entry struct {
	ID      string
	Handle  string
	Profile Profile
}

// Snapshot is a read-only view of the registry taken for broadcasting.
// The slices are copies; mutating them does not affect the registry.
type Snapshot struct {
	Sellers     []Entry
	Customers   []Entry
	AdminOnline bool
}

// Registry tracks connected customers, connected sellers and the single
// admin session. Sequences keep registration order. It is not safe for
// concurrent use; the hub's event loop is its only owner.
type Registry struct {
	customers []Entry
	sellers   []Entry
	admin     *Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterCustomer adds a customer entry unless the id is already
// present. Duplicate registration is a no-op: the earlier connection
// handle stays the one of record. Returns true if the entry was added.
func (r *Registry) RegisterCustomer(id, handle string, profile Profile) bool {
	for _, e := range r.customers {
		if e.ID == id {
			return false
		}
	}
	r.customers = append(r.customers, Entry{ID: id, Handle: handle, Profile: profile})
	return true
}

// RegisterSeller adds a seller entry unless the id is already present.
// Same duplicate semantics as RegisterCustomer.
func (r *Registry) RegisterSeller(id, handle string, profile Profile) bool {
	for _, e := range r.sellers {
		if e.ID == id {
			return false
		}
	}
	r.sellers = append(r.sellers, Entry{ID: id, Handle: handle, Profile: profile})
	return true
}

// RegisterAdmin claims the admin slot, displacing any previous admin
// session without closing its connection. Only the public profile
// projection is stored, so later broadcasts can never leak the email.
func (r *Registry) RegisterAdmin(handle string, profile Profile) {
	r.admin = &Entry{Handle: handle, Profile: profile.Public()}
}

// FindCustomer returns the customer entry for id. A miss is a normal
// outcome (recipient offline), not an error.
func (r *Registry) FindCustomer(id string) (Entry, bool) {
	for _, e := range r.customers {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// FindSeller returns the seller entry for id.
func (r *Registry) FindSeller(id string) (Entry, bool) {
	for _, e := range r.sellers {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Admin returns the admin entry if the slot is occupied.
func (r *Registry) Admin() (Entry, bool) {
	if r.admin == nil {
		return Entry{}, false
	}
	return *r.admin, true
}

// RemoveByHandle deletes every entry owned by handle from both
// sequences and clears the admin slot if it matches. The registry does
// not track which role a handle registered as, so all three structures
// are always checked. Safe to call for handles that never registered.
// Returns true if anything was removed.
func (r *Registry) RemoveByHandle(handle string) bool {
	removed := false
	r.customers, removed = dropHandle(r.customers, handle, removed)
	r.sellers, removed = dropHandle(r.sellers, handle, removed)
	if r.admin != nil && r.admin.Handle == handle {
		r.admin = nil
		removed = true
	}
	return removed
}

func dropHandle(entries []Entry, handle string, removed bool) ([]Entry, bool) {
	kept := entries[:0]
	for _, e := range entries {
		if e.Handle == handle {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	return kept, removed
}

// Snapshot copies the current state for broadcasting.
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		Sellers:     make([]Entry, len(r.sellers)),
		Customers:   make([]Entry, len(r.customers)),
		AdminOnline: r.admin != nil,
	}
	copy(snap.Sellers, r.sellers)
	copy(snap.Customers, r.customers)
	return snap
}
