package config

import "strings"

const (
	Marker    = "#"
	Separator = "&"
)

// Encode writes p as a marker-prefixed list of entries. True flags appear as
// bare codes, false flags are omitted, numbers are written as code=value.
func Encode(p Params) string {
	entries := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f.Kind {
		case KindBool:
			if *f.flag(&p) {
				entries = append(entries, f.Code)
			}
		case KindNumber:
			entries = append(entries, f.Code+"="+f.format(p))
		}
	}
	return Marker + strings.Join(entries, Separator)
}

// Decode parses a configuration string. It never fails: unknown entries are
// dropped and numeric fields without a usable value keep their default.
// Anything up to and including the last marker is ignored, so full links
// decode as well as bare fragments.
func Decode(s string) Params {
	p := DefaultParams()

	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, Marker); i >= 0 {
		s = s[i+len(Marker):]
	}

	present := make(map[string]bool)
	values := make(map[string][]string)
	for _, entry := range strings.Split(s, Separator) {
		if entry == "" {
			continue
		}
		code, value, hasValue := strings.Cut(entry, "=")
		present[code] = true
		if hasValue {
			values[code] = append(values[code], value)
		}
	}

	for _, f := range fields {
		switch f.Kind {
		case KindBool:
			*f.flag(&p) = present[f.Code]
		case KindNumber:
			for _, v := range values[f.Code] {
				if f.parse(&p, strings.TrimSpace(v)) {
					break
				}
			}
		}
	}
	return p
}
