package cli

import "strings"

// NoArgs rejects any positional arg.
func NoArgs(args []string) error {
	if len(args) > 0 {
		return usageErrorf("unexpected arg %q", args[0])
	}
	return nil
}

// Inputs returns an ArgsFunc for commands taking one input path per name, in order. A path may be "-" for stdin, but only one of them: stdin can be
// read once.
func Inputs(names ...string) ArgsFunc {
	return func(args []string) error {
		if len(args) < len(names) {
			return usageErrorf("missing %s", strings.Join(names[len(args):], " "))
		}
		if len(args) > len(names) {
			return usageErrorf("expected %s, got %d args", strings.Join(names, " "), len(args))
		}
		stdin := ""
		for i, arg := range args {
			switch {
			case arg == "":
				return usageErrorf("%s is empty", names[i])
			case arg != "-":
			case stdin != "":
				return usageErrorf("only one of %s and %s may be -", stdin, names[i])
			default:
				stdin = names[i]
			}
		}
		return nil
	}
}
