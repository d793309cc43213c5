package ports

import "context"

type PermissionService interface {
	// Grant allows grantee to read owner's directory. Self-grants fail with
	// domain.ErrSelfTarget. Granting twice is idempotent.
	Grant(ctx context.Context, owner, grantee string) error
	// Revoke withdraws grantee's read access. Same self-target guard;
	// revoking an absent grant succeeds.
	Revoke(ctx context.Context, owner, grantee string) error
	// GrantorsFor returns the owners whose directories grantee may read.
	GrantorsFor(ctx context.Context, grantee string) ([]string, error)
	// GranteesFor returns who may read owner's directory.
	GranteesFor(ctx context.Context, owner string) ([]string, error)
}

// AccessChecker is the single decision point consulted by every directory
// read operation.
type AccessChecker interface {
	CanRead(ctx context.Context, requester, owner string) (bool, error)
}
