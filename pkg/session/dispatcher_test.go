package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brineloop/l2xfer/pkg/asset"
	"github.com/brineloop/l2xfer/pkg/transport"
	"github.com/brineloop/l2xfer/pkg/wire"
)

// framePipe is an in-memory duplex Transport used to run a real Requester
// against a real Responder/dispatcher in the same test process, the
// session-level equivalent of the teacher's scripted io fakes.
type framePipe struct {
	out chan wire.Frame
	in  chan wire.Frame
}

func newFramePipePair() (a, b *framePipe) {
	c1 := make(chan wire.Frame, 64)
	c2 := make(chan wire.Frame, 64)
	return &framePipe{out: c1, in: c2}, &framePipe{out: c2, in: c1}
}

func (p *framePipe) Send(f wire.Frame) error {
	p.out <- f
	return nil
}

func (p *framePipe) Recv(timeout time.Duration) (wire.Frame, error) {
	if timeout <= 0 {
		return <-p.in, nil
	}
	select {
	case f := <-p.in:
		return f, nil
	case <-time.After(timeout):
		return wire.Frame{}, transport.ErrWouldBlock
	}
}

func TestDispatcherDownloadEndToEnd(t *testing.T) {
	dir := t.TempDir()
	payload := make([]byte, wire.ContentLen*3+10)
	for i := range payload {
		payload[i] = byte(i)
	}
	if err := os.WriteFile(filepath.Join(dir, "f.bin"), payload, 0o644); err != nil {
		t.Fatal(err)
	}
	root := asset.Root(dir)

	reqSide, respSide := newFramePipePair()

	done := make(chan error, 1)
	go func() {
		done <- serveOne(respSide, root, WithReplyTimeout(200*time.Millisecond))
	}()

	sink := &bufSink{}
	r := NewRequester(reqSide, TypeDownload, "f.bin", sink)
	out, err := r.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Completed {
		t.Fatalf("expected Completed")
	}
	if sink.data.Len() != len(payload) {
		t.Fatalf("got %d bytes, want %d", sink.data.Len(), len(payload))
	}
	for i, b := range sink.data.Bytes() {
		if b != payload[i] {
			t.Fatalf("byte %d mismatch: got %x want %x", i, b, payload[i])
		}
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serveOne: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("responder did not finish")
	}
}

func TestDispatcherLsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	root := asset.Root(dir)

	reqSide, respSide := newFramePipePair()

	done := make(chan error, 1)
	go func() {
		done <- serveOne(respSide, root, WithReplyTimeout(200*time.Millisecond))
	}()

	sink := &bufSink{}
	r := NewRequester(reqSide, TypeLS, "", sink)
	out, err := r.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Completed {
		t.Fatalf("expected Completed")
	}
	if len(sink.entries) != 3 {
		t.Fatalf("got entries %v, want 3", sink.entries)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serveOne: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("responder did not finish")
	}
}

func TestDispatcherLsEmptyDirectoryEndToEnd(t *testing.T) {
	dir := t.TempDir()
	root := asset.Root(dir)

	reqSide, respSide := newFramePipePair()

	done := make(chan error, 1)
	go func() {
		done <- serveOne(respSide, root, WithReplyTimeout(200*time.Millisecond))
	}()

	sink := &bufSink{}
	r := NewRequester(reqSide, TypeLS, "", sink)
	out, err := r.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Completed {
		t.Fatalf("expected Completed for an empty directory listing")
	}
	if len(sink.entries) != 0 {
		t.Fatalf("got entries %v, want none", sink.entries)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serveOne: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("responder did not finish listing an empty directory")
	}
}

func TestDispatcherDownloadExactFrameMultipleEndToEnd(t *testing.T) {
	dir := t.TempDir()
	payload := make([]byte, wire.ContentLen*2)
	for i := range payload {
		payload[i] = byte(i)
	}
	if err := os.WriteFile(filepath.Join(dir, "f.bin"), payload, 0o644); err != nil {
		t.Fatal(err)
	}
	root := asset.Root(dir)

	reqSide, respSide := newFramePipePair()

	done := make(chan error, 1)
	go func() {
		done <- serveOne(respSide, root, WithReplyTimeout(200*time.Millisecond))
	}()

	sink := &bufSink{}
	r := NewRequester(reqSide, TypeDownload, "f.bin", sink)
	out, err := r.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Completed {
		t.Fatalf("expected Completed")
	}
	if sink.data.Len() != len(payload) {
		t.Fatalf("got %d bytes, want %d", sink.data.Len(), len(payload))
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serveOne: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("responder did not finish a content-length-multiple download")
	}
}

func TestDispatcherRejectsUnknownAsset(t *testing.T) {
	dir := t.TempDir()
	root := asset.Root(dir)

	reqSide, respSide := newFramePipePair()

	done := make(chan error, 1)
	go func() {
		done <- serveOne(respSide, root, WithReplyTimeout(200*time.Millisecond), WithFinalizeAttempts(3))
	}()

	sink := &bufSink{}
	r := NewRequester(reqSide, TypeDownload, "missing.bin", sink)
	out, err := r.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.ServerError == "" {
		t.Fatalf("expected a server error for a missing asset")
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serveOne: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("responder did not finish")
	}
}
