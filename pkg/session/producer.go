// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"io"

	"github.com/brineloop/l2xfer/pkg/asset"
	"github.com/brineloop/l2xfer/pkg/wire"
)

// Producer yields the successive payloads a Responder packs into DATA or
// SHOW frames. eof is true once the source is found exhausted; a payload
// returned together with it is the last one, and a nil payload with eof
// true means nothing was left at all. A producer may return its last
// payload with eof false and report exhaustion only on the following call
// (lsProducer always does; fileProducer does when the source ends exactly
// at a chunk boundary).
type Producer interface {
	Produce() (payload []byte, eof bool, err error)
	MessageType() wire.MessageType
	// FillLimit bounds how many slots one call to fillWindow may populate
	// in a single round: WindowSize for DOWNLOAD (the responder pipelines
	// ahead), 1 for LS (one directory entry is read per round, matching
	// context_ls_update_with_ack).
	FillLimit(windowSize int) int
	Close() error
}

// fileProducer reads successive byte-stuffed chunks from an open asset
// file, the Go equivalent of fill_context_buf_from_index's pkgread loop.
type fileProducer struct {
	f io.ReadCloser
}

func newFileProducer(f io.ReadCloser) *fileProducer { return &fileProducer{f: f} }

func (p *fileProducer) Produce() ([]byte, bool, error) {
	content, eof, err := wire.ReadStuffedChunk(p.f)
	if err != nil {
		return nil, false, err
	}
	return content, eof, nil
}

func (p *fileProducer) MessageType() wire.MessageType { return wire.TypeData }

func (p *fileProducer) FillLimit(windowSize int) int { return windowSize }

func (p *fileProducer) Close() error { return p.f.Close() }

// lsProducer walks a directory lister, one entry at a time, the Go
// equivalent of context_ls_update_with_ack's directory iteration.
type lsProducer struct {
	l *asset.Lister
}

func newLsProducer(l *asset.Lister) *lsProducer { return &lsProducer{l: l} }

func (p *lsProducer) Produce() ([]byte, bool, error) {
	name, ok := p.l.Next()
	if !ok {
		return nil, true, nil
	}
	return []byte(name), false, nil
}

func (p *lsProducer) MessageType() wire.MessageType { return wire.TypeShow }

func (p *lsProducer) FillLimit(windowSize int) int { return 1 }

func (p *lsProducer) Close() error { return nil }
