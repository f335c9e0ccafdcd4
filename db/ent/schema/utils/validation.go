package utils

import "fmt"

// EnumValidator restricts a string field to the pipeline's stored enum
// values (document types, job statuses).
func EnumValidator(allowed ...string) func(string) error {
	set := map[string]struct{}{}
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(s string) error {
		if _, ok := set[s]; ok {
			return nil
		}
		return fmt.Errorf("%q is not an allowed document pipeline value", s)
	}
}
