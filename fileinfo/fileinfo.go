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
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"alpkit.dev/keyvalue"
	"alpkit.dev/kvlist"
)

// DefaultOwner is the user and group assumed when an entry names none.
const DefaultOwner = "root"

// DefaultMode is the mode of a zero-configured [FileInfo].
const DefaultMode Mode = 0o644

// FileType is the type of an archive entry, encoded as a single letter.
type FileType string

// File types.
const (
	Regular   FileType = "r"
	Link      FileType = "H" // hard link
	Symlink   FileType = "l"
	Char      FileType = "c" // character device
	Block     FileType = "b" // block device
	Directory FileType = "d"
	Fifo      FileType = "p" // named pipe
)

var parseFileType = keyvalue.EnumConverter(Regular, Link, Symlink, Char, Block, Directory, Fifo)

// ParseFileType parses a one-letter file type.
func ParseFileType(s string) (FileType, error) {
	return parseFileType(s)
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *FileType) UnmarshalText(text []byte) error {
	v, err := ParseFileType(string(text))
	if err != nil {
		return err
	}
	*t = v

	return nil
}

// Mode holds the file mode bits, including setuid, setgid and sticky.
// Its text form is octal with a leading zero, e.g. "0644" or "04755".
type Mode uint32

// Perm returns the permission bits as an [fs.FileMode].
func (m Mode) Perm() fs.FileMode {
	return fs.FileMode(m) & fs.ModePerm
}

// String returns the octal text form.
func (m Mode) String() string {
	return "0" + strconv.FormatUint(uint64(m), 8)
}

// MarshalText implements [encoding.TextMarshaler].
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 8, 32)
	if err != nil {
		return fmt.Errorf("invalid value: `%s`, expected octal number", text)
	}
	*m = Mode(v)

	return nil
}

// FileInfo is a file, directory, link or device in an APK package archive.
type FileInfo struct {
	// Path is absolute.
	Path string `json:"path" yaml:"path" toml:"path" msgpack:"path"`

	Type FileType `json:"type" yaml:"type" toml:"type" msgpack:"type"`

	// LinkTarget is the path a symlink or hard link points to.
	LinkTarget *string `json:"link_target,omitempty" yaml:"link_target,omitempty" toml:"link_target,omitempty" msgpack:"link_target,omitempty"`

	Uname string `json:"uname,omitempty" yaml:"uname,omitempty" toml:"uname,omitempty" msgpack:"uname"`
	Gname string `json:"gname,omitempty" yaml:"gname,omitempty" toml:"gname,omitempty" msgpack:"gname"`

	// Size is nil for directories.
	Size *uint64 `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty" msgpack:"size,omitempty"`

	Mode Mode `json:"mode" yaml:"mode" toml:"mode" msgpack:"mode"`

	// Device combines the major and minor IDs of a device file, and is 0
	// for everything else.
	Device uint64 `json:"device,omitempty" yaml:"device,omitempty" toml:"device,omitempty" msgpack:"device,omitempty"`

	// Digest is the hex SHA-1 of the content.
	Digest *string `json:"digest,omitempty" yaml:"digest,omitempty" toml:"digest,omitempty" msgpack:"digest,omitempty"`

	Xattrs Xattrs `json:"xattrs,omitempty" yaml:"xattrs,omitempty" toml:"xattrs,omitempty" msgpack:"xattrs,omitempty"`
}

// New returns a FileInfo with the default owner and mode.
func New(path string, typ FileType) FileInfo {
	return FileInfo{
		Path:  path,
		Type:  typ,
		Uname: DefaultOwner,
		Gname: DefaultOwner,
		Mode:  DefaultMode,
	}
}

// document is FileInfo without its encoding methods.
type document FileInfo

// compact drops owner fields equal to [DefaultOwner].
func (fi FileInfo) compact() document {
	doc := document(fi)
	if doc.Uname == DefaultOwner {
		doc.Uname = ""
	}
	if doc.Gname == DefaultOwner {
		doc.Gname = ""
	}

	return doc
}

// defaults returns a document with the owner fields preset.
func defaults() document {
	return document{Uname: DefaultOwner, Gname: DefaultOwner}
}

// MarshalJSON implements [json.Marshaler].
func (fi FileInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(fi.compact())
}

// UnmarshalJSON implements [json.Unmarshaler]. Missing owner fields
// default to [DefaultOwner].
func (fi *FileInfo) UnmarshalJSON(data []byte) error {
	doc := defaults()
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*fi = FileInfo(doc)

	return nil
}

// MarshalYAML implements [yaml.Marshaler].
func (fi FileInfo) MarshalYAML() (any, error) {
	return fi.compact(), nil
}

// UnmarshalYAML implements [yaml.Unmarshaler]. Missing owner fields
// default to [DefaultOwner].
func (fi *FileInfo) UnmarshalYAML(node *yaml.Node) error {
	doc := defaults()
	if err := node.Decode(&doc); err != nil {
		return err
	}
	*fi = FileInfo(doc)

	return nil
}

// Xattr is an extended file attribute.
type Xattr struct {
	Name  string
	Value []byte
}

// XattrCodec converts extended attributes to a mapping of name to
// base64-encoded value. There is no token form.
var XattrCodec = kvlist.Codec[Xattr, string]{
	KeyValue: func(x Xattr) (string, string) {
		return x.Name, base64.StdEncoding.EncodeToString(x.Value)
	},
	FromKeyValue: func(name, value string) (Xattr, error) {
		raw, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return Xattr{}, fmt.Errorf("invalid base64 value: %w", err)
		}

		return Xattr{Name: name, Value: raw}, nil
	},
}

// Xattrs is an ordered collection of extended attributes.
type Xattrs []Xattr

// Get returns the value of the attribute called name.
func (xs Xattrs) Get(name string) ([]byte, bool) {
	for _, x := range xs {
		if x.Name == name {
			return x.Value, true
		}
	}

	return nil, false
}

// MarshalJSON implements [json.Marshaler].
func (xs Xattrs) MarshalJSON() ([]byte, error) {
	return XattrCodec.MarshalJSON(xs)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (xs *Xattrs) UnmarshalJSON(data []byte) error {
	return xs.set(XattrCodec.UnmarshalJSON(data))
}

// MarshalYAML implements [yaml.Marshaler].
func (xs Xattrs) MarshalYAML() (any, error) {
	return XattrCodec.MarshalYAML(xs)
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (xs *Xattrs) UnmarshalYAML(node *yaml.Node) error {
	return xs.set(XattrCodec.UnmarshalYAML(node))
}

// MarshalTOML implements [toml.Marshaler].
func (xs Xattrs) MarshalTOML() ([]byte, error) {
	return XattrCodec.MarshalTOML(xs)
}

// UnmarshalTOML implements [toml.Unmarshaler].
func (xs *Xattrs) UnmarshalTOML(data any) error {
	return xs.set(XattrCodec.UnmarshalTOML(data))
}

// EncodeMsgpack implements [msgpack.CustomEncoder].
func (xs Xattrs) EncodeMsgpack(enc *msgpack.Encoder) error {
	return XattrCodec.EncodeMsgpack(enc, xs)
}

// DecodeMsgpack implements [msgpack.CustomDecoder].
func (xs *Xattrs) DecodeMsgpack(dec *msgpack.Decoder) error {
	return xs.set(XattrCodec.DecodeMsgpack(dec))
}

func (xs *Xattrs) set(items []Xattr, err error) error {
	if err != nil {
		return err
	}
	*xs = items

	return nil
}

var (
	_ yaml.Marshaler        = FileInfo{}
	_ yaml.Unmarshaler      = (*FileInfo)(nil)
	_ yaml.Marshaler        = Xattrs(nil)
	_ toml.Marshaler        = Xattrs(nil)
	_ msgpack.CustomEncoder = Xattrs(nil)
	_ yaml.Unmarshaler      = (*Xattrs)(nil)
	_ toml.Unmarshaler      = (*Xattrs)(nil)
	_ msgpack.CustomDecoder = (*Xattrs)(nil)
)
