package population

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/apportionment/internal/apportion"
)

// ErrInvalidTable is returned when a population file cannot be turned into a
// usable distribution.
var ErrInvalidTable = errors.New("invalid population table")

type tableFile struct {
	Regions []apportion.Region `yaml:"regions"`
}

// LoadFile reads a population table from a YAML file. See Parse for the
// accepted layouts.
func LoadFile(path string) (apportion.Distribution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	dist, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dist, nil
}

// Parse decodes a population table. Two layouts are accepted, and both keep
// document order:
//
//	regions:
//	  - name: California
//	    population: 38332521
//
// or a plain mapping of region name to population:
//
//	California: 38332521
func Parse(data []byte) (apportion.Distribution, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrInvalidTable)
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping at the top level", ErrInvalidTable)
	}

	var (
		dist apportion.Distribution
		err  error
	)
	if hasKey(doc, "regions") {
		dist, err = decodeRegionList(doc)
	} else {
		dist, err = decodeRegionMap(doc)
	}
	if err != nil {
		return nil, err
	}

	if err := apportion.Validate(dist, 1); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	return dist, nil
}

func decodeRegionList(doc *yaml.Node) (apportion.Distribution, error) {
	var file tableFile
	if err := doc.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	return apportion.Distribution(file.Regions), nil
}

func decodeRegionMap(doc *yaml.Node) (apportion.Distribution, error) {
	dist := make(apportion.Distribution, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		var pop int64
		if err := value.Decode(&pop); err != nil {
			return nil, fmt.Errorf("%w: region %q: %w", ErrInvalidTable, key.Value, err)
		}
		dist = append(dist, apportion.Region{Name: key.Value, Population: pop})
	}
	return dist, nil
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}
