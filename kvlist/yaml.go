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

package kvlist

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a YAML mapping, sequence or string node into entries.
// Mapping entries are decoded in document order. A null node yields nil.
func (c Codec[T, V]) UnmarshalYAML(node *yaml.Node) ([]T, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return c.UnmarshalYAML(node.Content[0])
	case yaml.AliasNode:
		return c.UnmarshalYAML(node.Alias)
	case yaml.MappingNode:
		return c.decodeYAMLMapping(node)
	case yaml.SequenceNode:
		return c.decodeYAMLSequence(node)
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil, nil
		}

		return c.decodeScalar(node.Value)
	}

	return nil, shapeError(fmt.Sprintf("YAML node kind %d at line %d", node.Kind, node.Line))
}

func (c Codec[T, V]) decodeYAMLMapping(node *yaml.Node) ([]T, error) {
	entries := make([]Entry[V], 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Content[i].Line, err)
		}

		var value V
		if err := node.Content[i+1].Decode(&value); err != nil {
			return nil, &EntryError{Key: key, Err: err}
		}
		entries = append(entries, Entry[V]{Key: key, Value: value})
	}

	return c.FromEntries(entries)
}

func (c Codec[T, V]) decodeYAMLSequence(node *yaml.Node) ([]T, error) {
	if c.ParseToken == nil {
		return nil, ErrSequenceUnsupported
	}

	tokens := make([]string, 0, len(node.Content))
	for i, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, &EntryError{Index: i, Err: shapeError(fmt.Sprintf("YAML node kind %d at line %d", item.Kind, item.Line))}
		}
		tokens = append(tokens, item.Value)
	}

	return c.FromTokens(tokens)
}

// MarshalYAML encodes items as a YAML mapping node. Nil or empty input
// encodes as {}.
func (c Codec[T, V]) MarshalYAML(items []T) (*yaml.Node, error) {
	entries := c.Entries(items)
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if len(entries) == 0 {
		node.Style = yaml.FlowStyle
	}

	for _, e := range entries {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(e.Key); err != nil {
			return nil, err
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(e.Value); err != nil {
			return nil, &EntryError{Key: e.Key, Err: err}
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}

	return node, nil
}
