// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"maps"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/format"
)

// maxConfigFileSize bounds the config files read into memory.
const maxConfigFileSize = 1 << 20

// decodeCUE validates data against the #Config schema and decodes it to a map
// suitable for viper.MergeConfigMap.
//
// Concrete(false) is used because every config field is optional.
func decodeCUE(data []byte, path string) (map[string]any, error) {
	if len(data) > maxConfigFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", path, len(data), maxConfigFileSize)
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return nil, formatCUEError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return nil, formatCUEError(err, path)
	}
	return configMap, nil
}

// encodeExtra renders extra as a CUE struct literal with sorted keys.
// rez_packages is written as a string list so the result satisfies #Config.
func encodeExtra(extra map[string]any) (string, error) {
	normalized := maps.Clone(extra)
	if packages, ok := normalized["rez_packages"]; ok {
		list := toStringList(packages)
		if list == nil {
			list = []string{}
		}
		normalized["rez_packages"] = list
	}

	value := cuecontext.New().Encode(normalized)
	if value.Err() != nil {
		return "", value.Err()
	}
	out, err := format.Node(value.Syntax(cue.Final(), cue.Concrete(true)))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// formatCUEError formats a CUE error as "<file>: <field path>: <message>",
// one line per underlying error.
func formatCUEError(err error, path string) error {
	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", path, err)
	}

	lines := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		field := fieldPath(cueerrors.Path(e))
		msg := e.Error()
		if field != "" {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, field), ":"))
			msg = field + ": " + msg
		}
		lines = append(lines, msg)
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", path, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", path, strings.Join(lines, "\n  "))
}

// fieldPath renders a CUE error path like ["launcher", "parent_variables", "0"]
// as "launcher.parent_variables[0]".
func fieldPath(parts []string) string {
	var sb strings.Builder
	for i, part := range parts {
		if i > 0 && isIndex(part) {
			sb.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
