package domain

// Permission records that Grantee may read Owner's directory. The relation is
// a flat set: at most one row per (owner, grantee) pair, owner never equal to
// grantee.
type Permission struct {
	Owner   string `json:"owner"`
	Grantee string `json:"grantee"`
}
