// Copyright 2025 Poiesic Systems
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


package repair

import (
	"fmt"
	"strings"

	goyaml "github.com/goccy/go-yaml"
	"gopkg.in/yaml.v3"
)

// Oracle is a strict parser used only to accept or reject text.
// The returned value tree is never inspected by this package.
type Oracle interface {
	Parse(text string) (any, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(text string) (any, error)

// Parse calls f(text).
func (f OracleFunc) Parse(text string) (any, error) {
	return f(text)
}

// YAMLv3Oracle validates text with gopkg.in/yaml.v3. It rejects duplicate
// mapping keys.
type YAMLv3Oracle struct{}

// Parse decodes text into a generic value tree.
func (YAMLv3Oracle) Parse(text string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// GoccyOracle validates text with github.com/goccy/go-yaml.
type GoccyOracle struct{}

// Parse decodes text into a generic value tree.
func (GoccyOracle) Parse(text string) (any, error) {
	var v any
	if err := goyaml.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Oracle names accepted by NewOracle.
const (
	OracleYAMLv3 = "yamlv3"
	OracleGoccy  = "goccy"
)

// NewOracle returns the oracle registered under name. An empty name selects
// the yaml.v3 oracle.
func NewOracle(name string) (Oracle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", OracleYAMLv3:
		return YAMLv3Oracle{}, nil
	case OracleGoccy:
		return GoccyOracle{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOracle, name)
	}
}
