package export

import (
	"github.com/charmbracelet/log"

	"cexport/internal/program"
)

// Filter decides which candidate functions are selected for export.
type Filter struct {
	tags    map[string]bool
	exclude bool
	allow   map[string]bool
}

// NewFilter compiles the configured tag and name filters. Tag names
// absent from the program's tag registry are warned about and dropped,
// matching the permissive degradation for configuration errors.
func NewFilter(cfg *Config, prog *program.Program) *Filter {
	f := &Filter{exclude: cfg.TagExclude}
	if len(cfg.TagFilter) > 0 {
		f.tags = make(map[string]bool)
		for _, name := range cfg.TagFilter {
			if prog != nil && !prog.HasTag(name) {
				log.Warn("unknown function tag in filter", "tag", name)
				continue
			}
			f.tags[name] = true
		}
	}
	if len(cfg.NameAllowList) > 0 {
		f.allow = make(map[string]bool, len(cfg.NameAllowList))
		for _, name := range cfg.NameAllowList {
			f.allow[name] = true
		}
	}
	return f
}

// Include reports whether fn survives the filters. The name allow
// list, when configured, excludes unlisted functions unconditionally.
// Tag filtering is an XNOR gate between "filter is exclusionary" and
// "function matches the filter": both true or both false excludes.
func (f *Filter) Include(fn *program.Function) bool {
	if f.allow != nil && !f.allow[fn.Name] {
		return false
	}
	if len(f.tags) == 0 {
		return true
	}
	matches := false
	for _, t := range fn.Tags {
		if f.tags[t] {
			matches = true
			break
		}
	}
	return f.exclude != matches
}
