// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/tankobon/internal/catalog/seed"
)

// # Catalogue Sources

// Source produces the raw records the [Store] is built from.
//
// Implementations are read exactly once, at startup. A Source reports an
// error only when the whole input is unusable; individual bad records are
// left to the store's drop-and-log policy.
type Source interface {
	Load(ctx context.Context) ([]TitleRecord, error)
}

// document is the on-disk layout of a catalogue file.
type document struct {
	Titles []TitleRecord `json:"titles" yaml:"titles"`
}

// FileSource reads a catalogue document from disk. Files ending in .json are
// decoded as JSON, everything else as YAML.
type FileSource struct {
	Path string
}

// NewFileSource returns a [FileSource] for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load implements [Source].
func (source *FileSource) Load(ctx context.Context) ([]TitleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(source.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", source.Path, err)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(source.Path), ".json") {
		format = "json"
	}

	records, err := Decode(raw, format)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", source.Path, err)
	}
	return records, nil
}

// EmbeddedSource serves the seed catalogue compiled into the binary.
type EmbeddedSource struct{}

// Load implements [Source].
func (EmbeddedSource) Load(ctx context.Context) ([]TitleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := Decode(seed.Catalog, "yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog: embedded seed: %w", err)
	}
	return records, nil
}

/*
Decode parses a catalogue document in the given format ("yaml" or "json").

Description: Each entry of titles is decoded on its own. An entry that does
not fit the record layout (a rating of "alta", an id given as a list) is still
returned at its position, marked malformed, so [NewStore] drops and logs it
like any other invalid record. View counts may be written in their display
form ("14.5M", "145.8K"); see [ParseViews].

Returns:
  - []TitleRecord: One entry per input element, in input order
  - error: Only when the document as a whole cannot be parsed
*/
func Decode(raw []byte, format string) ([]TitleRecord, error) {
	switch format {
	case "json":
		return decodeJSON(raw)
	case "yaml":
		return decodeYAML(raw)
	}
	return nil, fmt.Errorf("unsupported catalogue format %q", format)
}

func decodeYAML(raw []byte) ([]TitleRecord, error) {
	var doc struct {
		Titles []yaml.Node `yaml:"titles"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	records := make([]TitleRecord, len(doc.Titles))
	for index := range doc.Titles {
		node := &doc.Titles[index]
		normalizeViewCountNode(node)

		// yaml.v3 keeps decoding past a type mismatch, so id and title survive for the log
		if err := node.Decode(&records[index]); err != nil {
			records[index].malformed = fmt.Errorf("decode yaml: %w", err)
		}
	}
	return records, nil
}

func decodeJSON(raw []byte) ([]TitleRecord, error) {
	var doc struct {
		Titles []json.RawMessage `json:"titles"`
	}
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	records := make([]TitleRecord, len(doc.Titles))
	for index, element := range doc.Titles {
		element = normalizeViewCountJSON(element)

		if err := json.Unmarshal(element, &records[index]); err != nil {
			records[index].malformed = fmt.Errorf("decode json: %w", err)
		}
	}
	return records, nil
}

// normalizeViewCountNode rewrites a string view_count such as "14.5M" into
// an integer scalar. Unparsable values are left for the decoder to reject.
func normalizeViewCountNode(node *yaml.Node) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Value != FieldViewCount || value.Kind != yaml.ScalarNode || value.ShortTag() != "!!str" {
			continue
		}
		if views, err := ParseViews(value.Value); err == nil {
			value.Value = strconv.FormatInt(views, 10)
			value.Tag = "!!int"
			value.Style = 0
		}
	}
}

// normalizeViewCountJSON is the JSON counterpart of [normalizeViewCountNode].
func normalizeViewCountJSON(element json.RawMessage) json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(element, &fields); err != nil {
		return element
	}

	var text string
	if err := json.Unmarshal(fields[FieldViewCount], &text); err != nil {
		return element
	}
	views, err := ParseViews(text)
	if err != nil {
		return element
	}

	fields[FieldViewCount] = json.RawMessage(strconv.FormatInt(views, 10))
	rewritten, err := json.Marshal(fields)
	if err != nil {
		return element
	}
	return rewritten
}

// Encode renders records as a catalogue document.
func Encode(records []TitleRecord, format string) ([]byte, error) {
	doc := document{Titles: records}

	switch format {
	case "json":
		return json.MarshalIndent(doc, "", "  ")
	case "yaml":
		return yaml.Marshal(doc)
	}
	return nil, fmt.Errorf("unsupported catalogue format %q", format)
}

// LoadStore reads source once and builds the [Store].
func LoadStore(ctx context.Context, source Source, logger *slog.Logger) (*Store, error) {
	records, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(records, logger), nil
}
