package dispatch

import "context"

// Handler declares the lifecycle callbacks a trigger handler may implement.
// Every stage is optional; embed NoopHandler and override only the stages the
// handler cares about. Gating is a handler responsibility: the dispatcher
// invokes callbacks regardless of the gate state, and handler authors guard
// their own logic against the resolved flag.
type Handler interface {
	BeforeCreate(ctx context.Context, records []Record) error
	BeforeUpdate(ctx context.Context, old, updated RecordMap) error
	BeforeDelete(ctx context.Context, old RecordMap) error
	AfterCreate(ctx context.Context, records []Record) error
	AfterUpdate(ctx context.Context, old, updated RecordMap) error
	AfterDelete(ctx context.Context, old RecordMap) error
	AfterRestore(ctx context.Context, records []Record) error
}

// NoopHandler satisfies Handler with empty callback bodies.
type NoopHandler struct{}

var _ Handler = NoopHandler{}

func (NoopHandler) BeforeCreate(context.Context, []Record) error { return nil }
func (NoopHandler) BeforeUpdate(context.Context, RecordMap, RecordMap) error { return nil }
func (NoopHandler) BeforeDelete(context.Context, RecordMap) error { return nil }
func (NoopHandler) AfterCreate(context.Context, []Record) error { return nil }
func (NoopHandler) AfterUpdate(context.Context, RecordMap, RecordMap) error { return nil }
func (NoopHandler) AfterDelete(context.Context, RecordMap) error { return nil }
func (NoopHandler) AfterRestore(context.Context, []Record) error { return nil }
