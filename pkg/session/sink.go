// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"os"

	"github.com/fatih/color"
)

// Sink receives the requester's side of a session: DATA payloads for a
// DOWNLOAD, or entry names for an LS.
type Sink interface {
	WriteData(p []byte) error
	ShowEntry(name string) error
	Close() error
}

// FileSink writes DOWNLOAD payloads to a file, the Go equivalent of
// client/src/context.c's fwrite(pkg->data.content, ...) calls.
type FileSink struct {
	f *os.File
}

// NewFileSink creates or truncates path and returns a Sink that appends
// DATA payloads to it in order.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileSink{f: f}, nil
}

func (s *FileSink) WriteData(p []byte) error {
	_, err := s.f.Write(p)
	return err
}

func (s *FileSink) ShowEntry(name string) error { return nil }

func (s *FileSink) Close() error { return s.f.Close() }

// ListSink prints LS entries to stdout in red, replacing the reference's
// RED/RESET ANSI macros (client/src/context.c: context_update_with_show)
// with github.com/fatih/color.
type ListSink struct {
	red *color.Color
}

// NewListSink returns a Sink that prints SHOW entries as colorized lines.
func NewListSink() *ListSink {
	return &ListSink{red: color.New(color.FgRed)}
}

func (s *ListSink) WriteData(p []byte) error { return nil }

func (s *ListSink) ShowEntry(name string) error {
	_, err := s.red.Println("-", name)
	return err
}

func (s *ListSink) Close() error { return nil }
