package htlc

import "context"

// Record is an entry emitted by a call for external observers (indexers,
// relays, wallets). Records are published by the host ledger only if the call
// that emitted them commits.
type Record interface {
	// RecordType returns the name under which the record is published.
	RecordType() string
}

// RecordSink collects records emitted during a call.
type RecordSink interface {
	Emit(Record)
}

// WithRecordSink sets the destination of all records emitted within the
// context.
func WithRecordSink(ctx context.Context, sink RecordSink) context.Context {
	return context.WithValue(ctx, contextKeyRecords, sink)
}

// Emit publishes given record using the sink declared in the context. Records
// emitted without a sink are dropped.
func Emit(ctx context.Context, r Record) {
	sink, ok := ctx.Value(contextKeyRecords).(RecordSink)
	if !ok || sink == nil {
		return
	}
	sink.Emit(r)
}

// RecordBuffer is a RecordSink that keeps records in memory in emission
// order.
type RecordBuffer struct {
	records []Record
}

var _ RecordSink = (*RecordBuffer)(nil)

// Emit implements RecordSink.
func (b *RecordBuffer) Emit(r Record) {
	b.records = append(b.records, r)
}

// Records returns all collected records.
func (b *RecordBuffer) Records() []Record {
	return b.records
}

// Reset drops all collected records.
func (b *RecordBuffer) Reset() {
	b.records = nil
}
