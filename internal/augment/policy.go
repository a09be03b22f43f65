package augment

// Policy is the authorization gate for augmentation, independent of the
// sufficiency gate's need determination: generation may be needed but not
// permitted. A record is permitted when the global switch is on OR its id
// is allow-listed. The zero value permits nothing.
type Policy struct {
	Enabled    bool
	AllowedIDs map[string]struct{}
}

// NewPolicy builds a policy from a global flag and an explicit id
// allow-list.
func NewPolicy(enabled bool, allowedIDs []string) Policy {
	ids := make(map[string]struct{}, len(allowedIDs))
	for _, id := range allowedIDs {
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	return Policy{Enabled: enabled, AllowedIDs: ids}
}

// Permits reports whether augmentation is authorized for the record.
func (p Policy) Permits(recordID string) bool {
	if p.Enabled {
		return true
	}
	_, ok := p.AllowedIDs[recordID]
	return ok
}
