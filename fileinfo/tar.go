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

package fileinfo

import (
	"archive/tar"
	"cmp"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
)

// PAX record keys read from package archives.
const (
	paxChecksum    = "APK-TOOLS.checksum.SHA1"
	paxXattrPrefix = "SCHILY.xattr."
)

// ErrUnsupportedEntry is returned for tar entries that have no [FileType].
var ErrUnsupportedEntry = errors.New("unsupported tar entry type")

// FromTarHeader describes the entry of a package archive.
func FromTarHeader(h *tar.Header) (FileInfo, error) {
	typ, err := fileType(h.Typeflag)
	if err != nil {
		return FileInfo{}, fmt.Errorf("%s: %w", h.Name, err)
	}

	fi := FileInfo{
		Path:  path.Join("/", h.Name),
		Type:  typ,
		Uname: cmp.Or(h.Uname, DefaultOwner),
		Gname: cmp.Or(h.Gname, DefaultOwner),
		Mode:  Mode(h.Mode & 0o7777),
	}
	if h.Linkname != "" {
		target := h.Linkname
		fi.LinkTarget = &target
	}
	if typ != Directory {
		size := uint64(h.Size)
		fi.Size = &size
	}
	if typ == Char || typ == Block {
		fi.Device = makedev(uint64(h.Devmajor), uint64(h.Devminor))
	}
	if sum, ok := h.PAXRecords[paxChecksum]; ok {
		fi.Digest = &sum
	}
	fi.Xattrs = xattrs(h.PAXRecords)

	return fi, nil
}

// ReadTar describes every entry of a tar stream, in archive order.
func ReadTar(r io.Reader) ([]FileInfo, error) {
	tr := tar.NewReader(r)

	var out []FileInfo
	for {
		h, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar: %w", err)
		}

		fi, err := FromTarHeader(h)
		if err != nil {
			return nil, err
		}
		out = append(out, fi)
	}
}

func fileType(flag byte) (FileType, error) {
	switch flag {
	case tar.TypeReg, tar.TypeCont, '\x00':
		return Regular, nil
	case tar.TypeLink:
		return Link, nil
	case tar.TypeSymlink:
		return Symlink, nil
	case tar.TypeChar:
		return Char, nil
	case tar.TypeBlock:
		return Block, nil
	case tar.TypeDir:
		return Directory, nil
	case tar.TypeFifo:
		return Fifo, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedEntry, flag)
}

// xattrs collects the SCHILY.xattr records, sorted by name.
func xattrs(records map[string]string) Xattrs {
	var out Xattrs
	for key, value := range records {
		if name, ok := strings.CutPrefix(key, paxXattrPrefix); ok {
			out = append(out, Xattr{Name: name, Value: []byte(value)})
		}
	}
	slices.SortFunc(out, func(a, b Xattr) int {
		return strings.Compare(a.Name, b.Name)
	})

	return out
}

// makedev combines device IDs the way glibc does.
func makedev(major, minor uint64) uint64 {
	return (major&0x00000fff)<<8 |
		(major&0xfffff000)<<32 |
		(minor & 0x000000ff) |
		(minor&0xffffff00)<<12
}
