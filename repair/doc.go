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


// Package repair turns almost-YAML produced by a language model into text a
// strict YAML parser accepts.
//
// Repair runs in two passes:
//
//   - Normalize rebuilds indentation from the shape of each line. The
//     original whitespace is ignored.
//   - Dedupe drops lines that repeat a mapping key already seen in the same
//     scope, where a scope is an indentation width inside one mapping block
//     or sequence item.
//
// A Repairer ties both passes to an Oracle, a strict parser used only as an
// accept/reject test. Input the oracle already accepts is returned untouched;
// otherwise the passes run once and the result is validated again.
//
//	repairer := repair.NewRepairer(repair.YAMLv3Oracle{})
//	fixed, err := repairer.Repair(text)
//	if err != nil {
//	    var rerr *repair.Error
//	    if errors.As(err, &rerr) {
//	        log.Println("first parse failure:", rerr.Original)
//	    }
//	}
//
// All functions are pure and safe for concurrent use on independent inputs.
package repair
