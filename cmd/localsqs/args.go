package main

import (
	"strings"

	"github.com/urfave/cli/v3"
)

// MissingArgumentsError is returned before any request is made when
// required positional arguments are absent or empty.
type MissingArgumentsError struct {
	Names []string
}

// Message returns the user facing text of the error.
func (e *MissingArgumentsError) Message() string {
	return "Missing required argument(s): " + strings.Join(e.Names, ", ")
}

// Error implements error.
func (e *MissingArgumentsError) Error() string {
	return "localsqs; " + strings.ToLower(e.Message()[:1]) + e.Message()[1:]
}

// requireArgs returns the leading positional arguments, one per name, or a
// [MissingArgumentsError] naming every one that is missing or empty.
func requireArgs(c *cli.Command, names ...string) ([]string, error) {
	values := make([]string, len(names))
	var missing []string
	for index, name := range names {
		values[index] = strings.TrimSpace(c.Args().Get(index))
		if values[index] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingArgumentsError{Names: missing}
	}
	return values, nil
}

// requireArgsAndRest is [requireArgs] for commands that take one or more
// trailing values after their named arguments.
func requireArgsAndRest(c *cli.Command, rest string, names ...string) ([]string, []string, error) {
	values, err := requireArgs(c, names...)
	var missing *MissingArgumentsError
	if err != nil {
		missing = err.(*MissingArgumentsError)
	}
	var trailing []string
	if c.Args().Len() > len(names) {
		for _, value := range c.Args().Slice()[len(names):] {
			if value = strings.TrimSpace(value); value != "" {
				trailing = append(trailing, value)
			}
		}
	}
	if len(trailing) == 0 {
		if missing == nil {
			missing = new(MissingArgumentsError)
		}
		missing.Names = append(missing.Names, rest)
	}
	if missing != nil {
		return nil, nil, missing
	}
	return values, trailing, nil
}
