package x

import (
	"github.com/iov-one/barter"
)

// Authenticator tells a handler which conditions signed the current
// transaction. Handlers receive it in their constructor and never read
// signatures themselves.
type Authenticator interface {
	// GetConditions returns the conditions in signing order. The first
	// one is the main signer.
	GetConditions(barter.Context) []barter.Condition
	HasAddress(barter.Context, barter.Address) bool
}

// MultiAuth merges the conditions of several authenticators.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

func ChainAuth(auths ...Authenticator) MultiAuth {
	return MultiAuth(auths)
}

// GetConditions keeps the order of the authenticators and drops
// conditions already returned by an earlier one.
func (m MultiAuth) GetConditions(ctx barter.Context) []barter.Condition {
	var all []barter.Condition
	for _, a := range m {
	next:
		for _, c := range a.GetConditions(ctx) {
			for _, seen := range all {
				if seen.Equals(c) {
					continue next
				}
			}
			all = append(all, c)
		}
	}
	return all
}

func (m MultiAuth) HasAddress(ctx barter.Context, addr barter.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition that signed the transaction, or
// nil for an unsigned one.
func MainSigner(ctx barter.Context, auth Authenticator) barter.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}
