package trace

import (
	"context"

	"rowbench/internal/rowstore"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Attribute keys set on store spans.
const (
	AttrCount      = attribute.Key("rowbench.count")
	AttrRowsBefore = attribute.Key("rowbench.rows.before")
	AttrRowsAfter  = attribute.Key("rowbench.rows.after")
	AttrID         = attribute.Key("rowbench.row.id")
	AttrIndex      = attribute.Key("rowbench.row.index")
	AttrFound      = attribute.Key("rowbench.found")
)

// Store wraps a rowstore.Store and records one span per mutating call.
// Read methods are promoted from the embedded store unchanged.
type Store struct {
	*rowstore.Store
	ctx    context.Context
	tracer oteltrace.Tracer
}

// NewStore returns s wrapped so its operations are traced as children of
// any span in ctx.
func NewStore(ctx context.Context, tracer oteltrace.Tracer, s *rowstore.Store) *Store {
	return &Store{Store: s, ctx: ctx, tracer: tracer}
}

// span starts "rowstore.<op>" and returns a func that ends it with the
// resulting row count.
func (t *Store) span(op string, attrs ...attribute.KeyValue) (oteltrace.Span, func()) {
	_, sp := t.tracer.Start(t.ctx, "rowstore."+op,
		oteltrace.WithAttributes(append(attrs, AttrRowsBefore.Int(t.Len()))...))
	return sp, func() {
		sp.SetAttributes(AttrRowsAfter.Int(t.Len()))
		sp.End()
	}
}

func (t *Store) Create(count int) {
	_, end := t.span("create", AttrCount.Int(count))
	defer end()
	t.Store.Create(count)
}

func (t *Store) RunLarge(count int) {
	_, end := t.span("run_large", AttrCount.Int(count))
	defer end()
	t.Store.RunLarge(count)
}

func (t *Store) Append(count int) []*rowstore.Row {
	_, end := t.span("append", AttrCount.Int(count))
	defer end()
	return t.Store.Append(count)
}

func (t *Store) UpdateEvery(stride int) {
	_, end := t.span("update_every", attribute.Int("rowbench.stride", stride))
	defer end()
	t.Store.UpdateEvery(stride)
}

func (t *Store) Select(id rowstore.ID) {
	sp, end := t.span("select", AttrID.Int(int(id)))
	defer end()
	t.Store.Select(id)
	sp.SetAttributes(AttrFound.Bool(t.IndexOf(id) >= 0))
}

func (t *Store) DeleteRow(id rowstore.ID) bool {
	sp, end := t.span("delete_row", AttrID.Int(int(id)))
	defer end()
	ok := t.Store.DeleteRow(id)
	sp.SetAttributes(AttrFound.Bool(ok))
	return ok
}

func (t *Store) DeleteByIndex(index int) error {
	sp, end := t.span("delete_by_index", AttrIndex.Int(index))
	defer end()
	err := t.Store.DeleteByIndex(index)
	if err != nil {
		sp.RecordError(err)
		sp.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (t *Store) SwapRows(n, m int) {
	_, end := t.span("swap_rows", attribute.Int("rowbench.swap.n", n), attribute.Int("rowbench.swap.m", m))
	defer end()
	t.Store.SwapRows(n, m)
}

func (t *Store) Clear() {
	_, end := t.span("clear")
	defer end()
	t.Store.Clear()
}
