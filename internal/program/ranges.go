package program

import (
	"fmt"
	"strings"
)

// AddressRange is an inclusive address interval.
type AddressRange struct {
	Start Address
	End   Address
}

// Contains reports whether a lies inside the range.
func (r AddressRange) Contains(a Address) bool { return a >= r.Start && a <= r.End }

func (r AddressRange) String() string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// ParseRanges parses a comma-separated address filter: "start-end" for
// a range or a single address. Malformed parts are skipped and
// reported as warnings; they never fail the parse. An entirely empty
// result means "no filter" and callers fall back to the full address
// space.
func ParseRanges(s string) ([]AddressRange, []string) {
	var ranges []AddressRange
	var warnings []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i := strings.Index(part, "-"); i >= 0 {
			start, err1 := ParseAddress(part[:i])
			end, err2 := ParseAddress(part[i+1:])
			if err1 != nil || err2 != nil {
				warnings = append(warnings, fmt.Sprintf("invalid address range %q", part))
				continue
			}
			if end < start {
				start, end = end, start
			}
			ranges = append(ranges, AddressRange{Start: start, End: end})
			continue
		}
		addr, err := ParseAddress(part)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid address %q", part))
			continue
		}
		ranges = append(ranges, AddressRange{Start: addr, End: addr})
	}
	return ranges, warnings
}
