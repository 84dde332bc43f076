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

package keyvalue

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	// RCU pattern: atomic pointer to immutable map
	structInfoCachePtr atomic.Pointer[map[cacheKey]*structInfo]

	// Write-side lock (only for cache updates)
	structInfoCacheMu sync.Mutex
)

func init() {
	m := make(map[cacheKey]*structInfo)
	structInfoCachePtr.Store(&m)
}

// cacheKey is the key for the struct cache.
type cacheKey struct {
	typ reflect.Type
	tag string
}

// getStructInfo retrieves or parses struct information from the cache.
// It is safe for concurrent use; concurrent misses for the same key parse
// only once. Types with invalid tags are never cached.
func getStructInfo(typ reflect.Type, tag string) (*structInfo, error) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %s", ErrOutMustBePointer, typ.Kind())
	}

	key := cacheKey{typ: typ, tag: tag}

	// Lock-free read from current map
	m := structInfoCachePtr.Load()
	if si, ok := (*m)[key]; ok {
		return si, nil
	}

	structInfoCacheMu.Lock()
	defer structInfoCacheMu.Unlock()

	// Double-check: another goroutine might have populated it
	m = structInfoCachePtr.Load()
	if si, ok := (*m)[key]; ok {
		return si, nil
	}

	si, err := parseStructInfo(typ, tag)
	if err != nil {
		return nil, err
	}

	// Copy-on-write
	newMap := make(map[cacheKey]*structInfo, len(*m)+1)
	maps.Copy(newMap, *m)
	newMap[key] = si
	structInfoCachePtr.Store(&newMap)

	return si, nil
}

// WarmupCache pre-parses record types for the default tag.
// It returns the first tag error encountered.
//
// Example:
//
//	if err := keyvalue.WarmupCache(pkginfo.PkgInfo{}, apkbuild.Apkbuild{}); err != nil {
//	    log.Fatal(err)
//	}
func WarmupCache(types ...any) error {
	for _, t := range types {
		typ := reflect.TypeOf(t)
		if typ == nil {
			continue
		}
		if _, err := getStructInfo(typ, TagKV); err != nil {
			return err
		}
	}

	return nil
}

// parseStructInfo builds field metadata and the key index for a struct type.
func parseStructInfo(t reflect.Type, tagName string) (*structInfo, error) {
	info := &structInfo{byKey: make(map[string]int)}
	if err := parseStructType(info, t, tagName, nil); err != nil {
		return nil, err
	}

	for i, f := range info.fields {
		for _, k := range append([]string{f.key}, f.aliases...) {
			if prev, dup := info.byKey[k]; dup {
				return nil, fmt.Errorf("%w: key %q used by both %s and %s",
					ErrInvalidTag, k, info.fields[prev].name, f.name)
			}
			info.byKey[k] = i
		}
	}

	return info, nil
}

// parseStructType walks the exported fields of t, flattening embedded structs.
func parseStructType(info *structInfo, t reflect.Type, tagName string, indexPrefix []int) error {
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		index := append(slices.Clone(indexPrefix), i)
		tag, tagged := field.Tag.Lookup(tagName)

		// Embedded structs are flattened; embedded pointers are skipped
		// since there is nothing to allocate them from.
		if field.Anonymous && !tagged {
			if field.Type.Kind() == reflect.Struct {
				if err := parseStructType(info, field.Type, tagName, index); err != nil {
					return err
				}
			}

			continue
		}

		if !tagged || tag == "-" {
			continue
		}

		key, optional, aliases := parseTag(tag)
		if key == "" {
			return fmt.Errorf("%w: field %s has an empty key", ErrInvalidTag, field.Name)
		}

		fieldType := field.Type
		isPtr := fieldType.Kind() == reflect.Pointer
		base := fieldType
		if isPtr {
			base = fieldType.Elem()
		}
		isSlice := base.Kind() == reflect.Slice && !isScalarType(base)

		info.fields = append(info.fields, fieldInfo{
			index:     index,
			name:      field.Name,
			key:       key,
			aliases:   aliases,
			fieldType: fieldType,
			isPtr:     isPtr,
			isSlice:   isSlice,
			optional:  optional || isPtr,
		})
	}

	return nil
}

// parseTag splits `name[,optional][,alias...]`.
func parseTag(tag string) (key string, optional bool, aliases []string) {
	parts := strings.Split(tag, ",")
	key = strings.TrimSpace(parts[0])
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		switch part {
		case "":
		case "optional":
			optional = true
		default:
			aliases = append(aliases, part)
		}
	}

	return key, optional, aliases
}
