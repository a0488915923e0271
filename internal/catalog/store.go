package catalog

import "context"

// Store persists per-item index values and the reverse postings used to
// answer queries.
type Store interface {
	// Update sets the given index values of uid and drops the unset ones,
	// leaving every other index of uid untouched.
	Update(ctx context.Context, uid string, set map[string]string, unset []string) error
	// Values returns the indexed values of uid; empty when not cataloged.
	Values(ctx context.Context, uid string) (map[string]string, error)
	Remove(ctx context.Context, uid string) error
	// Match returns the uids whose values equal every criterion. No
	// criteria matches every cataloged uid.
	Match(ctx context.Context, criteria map[string]string) ([]string, error)
	Clear(ctx context.Context) error
}
