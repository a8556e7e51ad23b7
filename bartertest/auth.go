package bartertest

import (
	"context"

	"github.com/iov-one/barter"
)

// Auth authenticates Signer followed by Signers.
type Auth struct {
	Signer  barter.Condition
	Signers []barter.Condition
}

func (a *Auth) GetConditions(barter.Context) []barter.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]barter.Condition{a.Signer}, a.Signers...)
}

func (a *Auth) HasAddress(ctx barter.Context, addr barter.Address) bool {
	return signedBy(a.GetConditions(ctx), addr)
}

// CtxAuth reads the conditions from the context, so that every call of a
// test can be authenticated differently. Two CtxAuth with a different Key
// do not see each other's conditions.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx barter.Context, conds ...barter.Condition) barter.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx barter.Context) []barter.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]barter.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx barter.Context, addr barter.Address) bool {
	return signedBy(a.GetConditions(ctx), addr)
}

func signedBy(conds []barter.Condition, addr barter.Address) bool {
	for _, c := range conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
