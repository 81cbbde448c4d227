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

import "log/slog"

// Repairer validates text with an Oracle and, when it is rejected, runs
// Normalize followed by Dedupe and validates once more.
type Repairer struct {
	oracle Oracle
	logger *slog.Logger
}

// Option configures a Repairer.
type Option func(*Repairer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repairer) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRepairer creates a Repairer validating with oracle. A nil oracle
// selects YAMLv3Oracle.
func NewRepairer(oracle Oracle, opts ...Option) *Repairer {
	if oracle == nil {
		oracle = YAMLv3Oracle{}
	}
	r := &Repairer{
		oracle: oracle,
		logger: slog.Default().With("component", "yaml-repairer"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Repair returns text unchanged if the oracle accepts it. Otherwise it
// returns the normalized, deduplicated text if the oracle accepts that, or an
// *Error wrapping the second parse failure.
//
// There is exactly one repair attempt.
func (r *Repairer) Repair(text string) (string, error) {
	_, err := r.oracle.Parse(text)
	if err == nil {
		r.logger.Info("YAML validation successful")
		return text, nil
	}

	r.logger.Warn("YAML validation failed", "err", err)
	r.logger.Info("attempting to fix YAML indentation issues")

	fixed, dropped := DedupeLines(Normalize(text))
	for _, d := range dropped {
		r.logger.Debug("dropped duplicate key", "line", d.Line, "key", d.Key)
	}

	if _, perr := r.oracle.Parse(fixed); perr != nil {
		r.logger.Warn("could not fix YAML automatically", "err", perr)
		return "", &Error{Err: perr, Original: err}
	}

	r.logger.Info("YAML fixed successfully", "dropped", len(dropped))
	return fixed, nil
}
