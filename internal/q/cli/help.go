package cli

import (
	"fmt"
	"io"
	"strings"
)

// writeHelp prints cmd's title, description, usage line, subcommands, flags and examples.
func writeHelp(w io.Writer, root, cmd *Command) {
	title := commandDisplayName(root, cmd)
	if cmd.Short != "" {
		title += " - " + cmd.Short
	}
	fmt.Fprintln(w, title)
	if long := strings.TrimRight(cmd.Long, "\n"); long != "" {
		fmt.Fprintf(w, "\n%s\n", long)
	}

	fmt.Fprintf(w, "\nUsage:\n  %s\n", usageLine(root, cmd))

	if len(cmd.children) > 0 {
		fmt.Fprintln(w, "\nCommands:")
		writeCommandList(w, cmd.children)
	}

	if flags := flagsForHelp(cmd); len(flags) > 0 {
		fmt.Fprintln(w, "\nFlags:")
		for _, fh := range flags {
			fmt.Fprintln(w, formatFlagHelpLine(fh))
		}
	}

	if ex := strings.TrimRight(cmd.Example, "\n"); ex != "" {
		fmt.Fprintln(w, "\nExample:")
		for _, line := range strings.Split(ex, "\n") {
			if line != "" {
				line = "  " + line
			}
			fmt.Fprintln(w, line)
		}
	}
}

// writeCommandList prints children in the order they were added, names padded to a common column.
func writeCommandList(w io.Writer, children []*Command) {
	width := 0
	for _, child := range children {
		width = max(width, len(child.Name))
	}
	for _, child := range children {
		line := "  " + child.Name
		desc := child.Short
		if len(child.Aliases) > 0 {
			desc = strings.TrimSpace(desc + " (alias: " + strings.Join(child.Aliases, ", ") + ")")
		}
		if desc != "" {
			line += strings.Repeat(" ", width-len(child.Name)+2) + desc
		}
		fmt.Fprintln(w, line)
	}
}

func commandDisplayName(root, cmd *Command) string {
	names := []string{root.Name}
	for _, node := range cmd.pathFromRoot()[1:] {
		names = append(names, node.Name)
	}
	return strings.Join(names, " ")
}

// usageLine is e.g. "splitdiff svg [flags] OLD NEW".
func usageLine(root, cmd *Command) string {
	parts := []string{commandDisplayName(root, cmd)}
	if len(flagsForHelp(cmd)) > 0 {
		parts = append(parts, "[flags]")
	}
	if len(cmd.children) > 0 {
		if cmd.Run == nil {
			parts = append(parts, "<command>")
		} else {
			parts = append(parts, "[command]")
		}
	}
	switch {
	case cmd.Use != "":
		parts = append(parts, cmd.Use)
	case cmd.Run != nil:
		parts = append(parts, "[args]")
	}
	return strings.Join(parts, " ")
}

func formatFlagHelpLine(fh flagHelp) string {
	def := fh.def
	names := "    --" + def.name
	if def.shorthand != 0 {
		names = fmt.Sprintf("-%c, --%s", def.shorthand, def.name)
	}
	if def.kind != flagBool {
		names += " <" + fh.kind + ">"
	}
	if usage := strings.TrimSpace(def.usage); usage != "" {
		return "  " + names + "\t" + usage
	}
	return "  " + names
}
