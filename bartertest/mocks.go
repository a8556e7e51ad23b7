// Package bartertest holds the mocks and fixtures used by the barter
// tests.
package bartertest

import (
	"fmt"

	"github.com/iov-one/barter"
)

// Calls counts the check and deliver calls received by a mock.
type Calls struct {
	check   int
	deliver int
}

func (c *Calls) CheckCallCount() int   { return c.check }
func (c *Calls) DeliverCallCount() int { return c.deliver }
func (c *Calls) CallCount() int        { return c.check + c.deliver }

// Handler returns the configured result or error of each phase. When
// WriteKey is set both phases write it before returning, so a test can
// tell whether the write was rolled back.
type Handler struct {
	Calls

	CheckResult   barter.CheckResult
	CheckErr      error
	DeliverResult barter.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte

	// Panic is raised by every call when set.
	Panic interface{}
}

var _ barter.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	h.check++
	if err := h.act(db, h.CheckErr); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	h.deliver++
	if err := h.act(db, h.DeliverErr); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) act(db barter.KVStore, fail error) error {
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.WriteKey != nil {
		if err := db.Set(h.WriteKey, h.WriteValue); err != nil {
			return err
		}
	}
	return fail
}

// Decorator passes every call on to the next handler, unless the error of
// that phase is set.
type Decorator struct {
	Calls

	CheckErr   error
	DeliverErr error
}

var _ barter.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns h wrapped in d.
func Decorate(h barter.Handler, d barter.Decorator) barter.Handler {
	return decorated{next: h, d: d}
}

type decorated struct {
	next barter.Handler
	d    barter.Decorator
}

func (dh decorated) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	return dh.d.Check(ctx, db, tx, dh.next)
}

func (dh decorated) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	return dh.d.Deliver(ctx, db, tx, dh.next)
}

// Tx carries a single message. GetMsg returns Err when set.
type Tx struct {
	Msg barter.Msg
	Err error
}

var _ barter.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (barter.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is routed by RoutePath. Validate returns Err.
type Msg struct {
	RoutePath string
	Err       error
}

var _ barter.Msg = (*Msg)(nil)

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return fmt.Sprintf("Msg{%s}", m.RoutePath) }
func (*Msg) ProtoMessage()    {}
func (m *Msg) Path() string   { return m.RoutePath }
func (m *Msg) Validate() error {
	return m.Err
}
