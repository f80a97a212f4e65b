package ch

import (
	"context"
	"testing"
)

// TestOpen_BadDSN fails before dialing anything
func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://not-a-dsn"}); err == nil {
		t.Fatalf("Open accepted a malformed DSN")
	}
}

// TestNilClient_Guards covers the nil receiver and nil conn paths
func TestNilClient_Guards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var nilClient *CH
	if err := nilClient.Insert(ctx, "t", [][]any{{1}}); err == nil {
		t.Fatalf("Insert on nil client succeeded")
	}
	if _, err := nilClient.Query(ctx, "SELECT 1"); err == nil {
		t.Fatalf("Query on nil client succeeded")
	}
	if err := nilClient.Close(); err != nil {
		t.Fatalf("Close on nil client returned error: %v", err)
	}

	empty := &CH{}
	if err := empty.Insert(ctx, "t", [][]any{{1}}); err == nil {
		t.Fatalf("Insert without a connection succeeded")
	}
	if err := empty.Close(); err != nil {
		t.Fatalf("Close without a connection returned error: %v", err)
	}
}

// TestInsert_NoRowsIsNoOp skips the batch entirely for empty input
func TestInsert_NoRowsIsNoOp(t *testing.T) {
	t.Parallel()

	// conn is nil, so reaching PrepareBatch would panic; an empty
	// insert must return before that
	cl := &CH{}
	if err := cl.Insert(context.Background(), "t", nil); err != nil {
		t.Fatalf("empty insert returned error: %v", err)
	}
	if err := cl.Insert(context.Background(), "t", [][]any{}); err != nil {
		t.Fatalf("zero-row insert returned error: %v", err)
	}
}
