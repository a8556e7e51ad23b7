package app

import (
	"reflect"

	"github.com/iov-one/barter"
)

// Decorators is an ordered stack of decorators waiting for the handler
// they wrap. The first decorator sees a transaction first:
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//	).WithHandler(router)
type Decorators []barter.Decorator

// ChainDecorators skips nil decorators, typed nil pointers included, so
// optional decorators can be listed inline.
func ChainDecorators(ds ...barter.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns a new stack with ds appended below the current ones.
func (d Decorators) Chain(ds ...barter.Decorator) Decorators {
	stack := make(Decorators, 0, len(d)+len(ds))
	stack = append(stack, d...)
	for _, dec := range ds {
		if !isNil(dec) {
			stack = append(stack, dec)
		}
	}
	return stack
}

func isNil(dec barter.Decorator) bool {
	if dec == nil {
		return true
	}
	v := reflect.ValueOf(dec)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack into a single handler.
func (d Decorators) WithHandler(h barter.Handler) barter.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = layer{dec: d[i], next: h}
	}
	return h
}

// layer is one decorator bound to the rest of the stack.
type layer struct {
	dec  barter.Decorator
	next barter.Handler
}

func (l layer) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l layer) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
