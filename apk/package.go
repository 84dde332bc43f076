// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package apk

import (
	"archive/tar"
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"alpkit.dev/fileinfo"
	"alpkit.dev/pkginfo"
)

// pkginfoName is the control entry holding the package metadata.
const pkginfoName = ".PKGINFO"

// Package is the content of an APKv2 package file.
type Package struct {
	Signatures []SignatureInfo     `json:"signatures" yaml:"signatures" toml:"signatures" validate:"required,dive"`
	PkgInfo    pkginfo.PkgInfo     `json:"pkginfo" yaml:"pkginfo" toml:"pkginfo"`
	Scripts    []Script            `json:"scripts" yaml:"scripts" toml:"scripts" validate:"dive,oneof=pre-install post-install pre-upgrade post-upgrade pre-deinstall post-deinstall"`
	Files      []fileinfo.FileInfo `json:"files" yaml:"files" toml:"files"`
}

// Load reads a whole package from r: signatures, control data and the
// description of every file in the data segment.
//
// Errors are a [*SegmentError] naming the segment that failed. It wraps
// [ErrMissingSignature], [ErrMissingPkgInfo], a .PKGINFO parse error or a
// gzip/tar read error.
func Load(r io.Reader) (*Package, error) {
	sr := newSegmentReader(r)

	pkg, err := loadControl(sr)
	if err != nil {
		return nil, err
	}

	data, err := sr.next()
	if err != nil {
		return nil, &SegmentError{Segment: "data", Err: err}
	}
	files, err := fileinfo.ReadTar(data)
	if err != nil {
		return nil, &SegmentError{Segment: "data", Err: err}
	}
	pkg.Files = files

	return pkg, nil
}

// LoadWithoutFiles is like [Load] but stops after the control segment.
// Files is left nil.
func LoadWithoutFiles(r io.Reader) (*Package, error) {
	return loadControl(newSegmentReader(r))
}

// LoadFile opens the package at path and loads it with [Load].
func LoadFile(path string) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open package: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func loadControl(sr *segmentReader) (*Package, error) {
	sig, err := sr.next()
	if err != nil {
		return nil, &SegmentError{Segment: "signature", Err: err}
	}
	signs, err := readSignatures(sig)
	if err != nil {
		return nil, &SegmentError{Segment: "signature", Err: err}
	}

	ctl, err := sr.next()
	if err != nil {
		return nil, &SegmentError{Segment: "control", Err: err}
	}
	info, scripts, err := readControl(ctl)
	if err != nil {
		return nil, &SegmentError{Segment: "control", Err: err}
	}

	return &Package{Signatures: signs, PkgInfo: *info, Scripts: scripts}, nil
}

func readSignatures(r io.Reader) ([]SignatureInfo, error) {
	var signs []SignatureInfo
	err := eachEntry(r, func(h *tar.Header, _ io.Reader) error {
		if sign, ok := signatureFromName(h.Name); ok {
			signs = append(signs, sign)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(signs) == 0 {
		return nil, ErrMissingSignature
	}

	return signs, nil
}

func readControl(r io.Reader) (*pkginfo.PkgInfo, []Script, error) {
	var (
		info    *pkginfo.PkgInfo
		scripts []Script
	)
	err := eachEntry(r, func(h *tar.Header, body io.Reader) error {
		if h.Name == pkginfoName {
			parsed, err := pkginfo.ParseReader(body)
			if err != nil {
				return fmt.Errorf("invalid .PKGINFO: %w", err)
			}
			info = parsed

			return nil
		}
		if sc, err := ParseScript(strings.TrimPrefix(h.Name, ".")); err == nil {
			scripts = append(scripts, sc)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if info == nil {
		return nil, nil, ErrMissingPkgInfo
	}

	return info, scripts, nil
}

// eachEntry calls fn for every entry of the tar stream r.
func eachEntry(r io.Reader, fn func(h *tar.Header, body io.Reader) error) error {
	tr := tar.NewReader(r)
	for {
		h, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar: %w", err)
		}
		if err := fn(h, tr); err != nil {
			return err
		}
	}
}

// segmentReader splits a stream of concatenated gzip members. Each call to
// next returns the decompressed content of the following member.
type segmentReader struct {
	br *bufio.Reader
	zr *gzip.Reader
}

func newSegmentReader(r io.Reader) *segmentReader {
	return &segmentReader{br: bufio.NewReader(r)}
}

func (s *segmentReader) next() (io.Reader, error) {
	if s.zr == nil {
		zr, err := gzip.NewReader(s.br)
		if err != nil {
			return nil, truncated(err)
		}
		s.zr = zr
	} else {
		// The previous tar segment may end before its gzip member does.
		if _, err := io.Copy(io.Discard, s.zr); err != nil {
			return nil, err
		}
		if err := s.zr.Reset(s.br); err != nil {
			return nil, truncated(err)
		}
	}
	s.zr.Multistream(false)

	return s.zr, nil
}

// truncated reports a missing gzip member as [io.ErrUnexpectedEOF].
func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}

	return err
}
