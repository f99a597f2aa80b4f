// SPDX-License-Identifier: AGPL-3.0-or-later

package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// presets maps the ship modes offered to users onto answers-file overrides.
var presets = map[string]string{
	"standard":   "answers.ci.json",
	"enterprise": "answers.enterprise.ci.json",
}

// PresetAnswers returns the answers-file override for a named preset.
func PresetAnswers(name string) (string, error) {
	file, ok := presets[name]
	if !ok {
		return "", fmt.Errorf("%w: %q (known: %v)", ErrUnknownPreset, name, PresetNames())
	}
	return file, nil
}

// PresetNames lists the defined presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// resolveAnswers returns the path the ship script should read. An override
// is used as given, without checking that it exists.
func (r *Runner) resolveAnswers(dir, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	for _, candidate := range r.layout.AnswersCandidates {
		if _, err := os.Stat(filepath.Join(dir, candidate)); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: please run the questionnaire first", ErrNoAnswersFile)
}

func answersArg(path string) string {
	return "--answers=" + path
}
