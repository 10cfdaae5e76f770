package htlc_test

import (
	"context"
	"testing"

	"github.com/iov-one/htlc"
	"github.com/stretchr/testify/assert"
)

type testRecord struct {
	name string
}

func (r testRecord) RecordType() string { return r.name }

func TestEmit(t *testing.T) {
	// Emitting without a sink must not fail.
	htlc.Emit(context.Background(), testRecord{"dropped"})

	var buf htlc.RecordBuffer
	ctx := htlc.WithRecordSink(context.Background(), &buf)
	htlc.Emit(ctx, testRecord{"first"})
	htlc.Emit(ctx, testRecord{"second"})

	assert.Equal(t, []htlc.Record{testRecord{"first"}, testRecord{"second"}}, buf.Records())

	buf.Reset()
	assert.Empty(t, buf.Records())
}

func TestMetadataValidate(t *testing.T) {
	var missing *htlc.Metadata
	assert.Error(t, missing.Validate())
	assert.Error(t, (&htlc.Metadata{}).Validate())
	assert.NoError(t, (&htlc.Metadata{Schema: 1}).Validate())

	m := &htlc.Metadata{Schema: 2}
	cpy := m.Copy()
	cpy.Schema = 3
	assert.Equal(t, uint32(2), m.Schema)
}
