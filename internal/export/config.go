// Package export drives the decompilation export pipeline: filtering,
// artifact collection, and final document assembly.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"cexport/internal/assemble"
)

// Config holds one run's options. Built once from flat key/value
// input, never mutated while the pipeline runs.
type Config struct {
	OutputDir  string
	BaseName   string
	EmitC      bool
	EmitHeader bool
	Comments   assemble.CommentStyle

	EmitTypes     bool
	EmitGlobals   bool
	EmitFuncDecls bool

	TagFilter     []string
	TagExclude    bool
	AddressFilter string // raw comma-separated ranges, parsed at run time
	NameAllowList []string

	FailureComments bool // emit comment-only artifacts for failed decompiles
	RunParameterID  bool
	Timeout         time.Duration // per-function decompile budget
}

// DefaultConfig mirrors the exporter's historical defaults.
func DefaultConfig() Config {
	return Config{
		OutputDir:       ".",
		BaseName:        "",
		EmitC:           true,
		EmitHeader:      false,
		Comments:        assemble.CPPStyle,
		EmitTypes:       true,
		EmitGlobals:     true,
		EmitFuncDecls:   true,
		TagExclude:      true,
		FailureComments: true,
		RunParameterID:  true,
		Timeout:         30 * time.Second,
	}
}

// Scoped reports whether the export is restricted to a subset of
// functions. A scoped run computes the type closure; an unscoped run
// emits the entire type database instead.
func (c *Config) Scoped() bool {
	return strings.TrimSpace(c.AddressFilter) != "" || len(c.NameAllowList) > 0
}

// Set applies one key/value option. Unknown keys are an error;
// malformed values are an error (range strings are validated later, at
// run time, where they degrade instead).
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "output_dir":
		c.OutputDir = value
	case "base_name":
		c.BaseName = value
	case "create_c_file":
		c.EmitC, err = parseBool(value)
	case "create_header_file":
		c.EmitHeader, err = parseBool(value)
	case "use_cpp_style_comments":
		var b bool
		if b, err = parseBool(value); err == nil {
			if b {
				c.Comments = assemble.CPPStyle
			} else {
				c.Comments = assemble.CStyle
			}
		}
	case "emit_type_definitions":
		c.EmitTypes, err = parseBool(value)
	case "emit_referenced_globals":
		c.EmitGlobals, err = parseBool(value)
	case "emit_function_declarations":
		c.EmitFuncDecls, err = parseBool(value)
	case "function_tag_filters":
		c.TagFilter = splitList(value)
	case "function_tag_exclude":
		c.TagExclude, err = parseBool(value)
	case "address_set_str":
		c.AddressFilter = value
	case "include_functions_only":
		c.NameAllowList = splitList(value)
	case "emit_failure_comments":
		c.FailureComments, err = parseBool(value)
	case "run_decompiler_parameter_id":
		c.RunParameterID, err = parseBool(value)
	case "decompile_timeout":
		c.Timeout, err = time.ParseDuration(value)
	default:
		return fmt.Errorf("export: unknown option %q", key)
	}
	if err != nil {
		return fmt.Errorf("export: option %s: %w", key, err)
	}
	return nil
}

// LoadConfigFile applies key=value pairs from a dotenv-style file.
// Keys are applied in sorted order so repeated loads behave the same.
func LoadConfigFile(path string, c *Config) error {
	kv, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("export: read config %s: %w", path, err)
	}
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.Set(strings.ToLower(k), kv[k]); err != nil {
			return err
		}
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on", "enable", "enabled":
		return true, nil
	case "false", "0", "no", "off", "disable", "disabled":
		return false, nil
	}
	return false, fmt.Errorf("boolean value expected, got %q", s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
