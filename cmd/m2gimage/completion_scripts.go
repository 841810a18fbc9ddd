package main

import (
	"fmt"
	"io"
	"strings"
)

// completionShells lists the shells the completion command accepts, in the
// order they appear in generated help.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// commandNames returns the registered command names in registry order.
func commandNames() []string {
	cmds := getCommands()
	names := make([]string, len(cmds))
	for i, cmd := range cmds {
		names[i] = cmd.Name
	}
	return names
}

// flagForms returns the spellings of a flag as typed on the command line,
// long form first.
func flagForms(f flagDef) []string {
	forms := []string{"--" + f.Long}
	if f.Short != "" {
		forms = append(forms, "-"+f.Short)
	}
	return forms
}

// allFlagForms returns every flag spelling of a command, space-joined.
func allFlagForms(cmd commandDef) string {
	var forms []string
	for _, f := range cmd.Flags {
		forms = append(forms, flagForms(f)...)
	}
	return strings.Join(forms, " ")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

// generateBash writes a bash completion script. Command and flag names come
// from the registry; enum flags complete their values, file and directory
// flags fall back to compgen path completion.
func generateBash(w io.Writer) error {
	var b strings.Builder
	cmds := getCommands()
	names := strings.Join(commandNames(), " ")

	b.WriteString("# bash completion for m2gimage\n")
	b.WriteString("# Install: eval \"$(m2gimage completion bash)\"\n\n")
	b.WriteString("_m2gimage_completions() {\n")
	b.WriteString("    local cur prev cmd i\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    cmd=\"\"\n")
	b.WriteString("    for ((i = 1; i < COMP_CWORD; i++)); do\n")
	b.WriteString("        case \"${COMP_WORDS[i]}\" in\n")
	fmt.Fprintf(&b, "        %s)\n", strings.Join(commandNames(), "|"))
	b.WriteString("            cmd=\"${COMP_WORDS[i]}\"\n")
	b.WriteString("            break\n")
	b.WriteString("            ;;\n")
	b.WriteString("        esac\n")
	b.WriteString("    done\n\n")
	b.WriteString("    if [[ -z \"$cmd\" ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", names)
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, cmd := range cmds {
		// help and completion complete positional words, not flags.
		switch cmd.Name {
		case "help":
			b.WriteString("    help)\n")
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", names)
			b.WriteString("        ;;\n")
			continue
		case "completion":
			b.WriteString("    completion)\n")
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(completionShells, " "))
			b.WriteString("        ;;\n")
			continue
		}
		if len(cmd.Flags) == 0 && !cmd.TakesFiles {
			continue
		}

		fmt.Fprintf(&b, "    %s)\n", cmd.Name)
		writeBashFlagValueCases(&b, cmd)
		b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", allFlagForms(cmd))
		b.WriteString("            return\n")
		b.WriteString("        fi\n")
		if cmd.TakesFiles {
			b.WriteString("        COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _m2gimage_completions m2gimage\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// writeBashFlagValueCases emits a $prev case block completing the values of
// enum, file, and directory flags. Commands without such flags get nothing.
func writeBashFlagValueCases(b *strings.Builder, cmd commandDef) {
	var enums []flagDef
	var fileForms, dirForms []string
	for _, f := range cmd.Flags {
		switch f.Type {
		case flagEnum:
			enums = append(enums, f)
		case flagFile:
			fileForms = append(fileForms, flagForms(f)...)
		case flagDir:
			dirForms = append(dirForms, flagForms(f)...)
		}
	}
	if len(enums)+len(fileForms)+len(dirForms) == 0 {
		return
	}

	b.WriteString("        case \"$prev\" in\n")
	for _, f := range enums {
		fmt.Fprintf(b, "        %s)\n", strings.Join(flagForms(f), "|"))
		fmt.Fprintf(b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(f.Values, " "))
		b.WriteString("            return\n")
		b.WriteString("            ;;\n")
	}
	if len(fileForms) > 0 {
		fmt.Fprintf(b, "        %s)\n", strings.Join(fileForms, "|"))
		b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		b.WriteString("            return\n")
		b.WriteString("            ;;\n")
	}
	if len(dirForms) > 0 {
		fmt.Fprintf(b, "        %s)\n", strings.Join(dirForms, "|"))
		b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
		b.WriteString("            return\n")
		b.WriteString("            ;;\n")
	}
	b.WriteString("        esac\n")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

// generateZsh writes a zsh completion script using _arguments and _describe.
func generateZsh(w io.Writer) error {
	var b strings.Builder
	cmds := getCommands()

	b.WriteString("#compdef m2gimage\n")
	b.WriteString("# zsh completion for m2gimage\n")
	b.WriteString("# Install: eval \"$(m2gimage completion zsh)\"\n\n")
	b.WriteString("_m2gimage() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", cmd.Name, zshEscape(cmd.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    _arguments -C \\\n")
	b.WriteString("        '1: :->command' \\\n")
	b.WriteString("        '*:: :->args'\n\n")
	b.WriteString("    case $state in\n")
	b.WriteString("    command)\n")
	b.WriteString("        _describe -t commands 'm2gimage command' commands\n")
	b.WriteString("        ;;\n")
	b.WriteString("    args)\n")
	b.WriteString("        case $words[1] in\n")

	for _, cmd := range cmds {
		switch cmd.Name {
		case "help":
			b.WriteString("        help)\n")
			fmt.Fprintf(&b, "            _values 'command' %s\n", strings.Join(commandNames(), " "))
			b.WriteString("            ;;\n")
			continue
		case "completion":
			b.WriteString("        completion)\n")
			fmt.Fprintf(&b, "            _values 'shell' %s\n", strings.Join(completionShells, " "))
			b.WriteString("            ;;\n")
			continue
		}
		if len(cmd.Flags) == 0 && !cmd.TakesFiles {
			continue
		}

		fmt.Fprintf(&b, "        %s)\n", cmd.Name)
		b.WriteString("            _arguments")
		for _, f := range cmd.Flags {
			for _, form := range flagForms(f) {
				b.WriteString(" \\\n                ")
				fmt.Fprintf(&b, "'%s'", zshOptSpec(form, f))
			}
		}
		if cmd.TakesFiles {
			b.WriteString(" \\\n                ")
			fmt.Fprintf(&b, "'*:dataset:_files -g \"%s\"'", zshFileGlob(cmd.FilePattern))
		}
		b.WriteString("\n            ;;\n")
	}

	b.WriteString("        esac\n")
	b.WriteString("        ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_m2gimage \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshOptSpec renders one _arguments option spec for a single flag spelling.
func zshOptSpec(form string, f flagDef) string {
	desc := zshEscape(f.Desc)
	switch f.Type {
	case flagBool:
		return fmt.Sprintf("%s[%s]", form, desc)
	case flagEnum:
		return fmt.Sprintf("%s[%s]:value:(%s)", form, desc, strings.Join(f.Values, " "))
	case flagFile:
		return fmt.Sprintf("%s[%s]:file:_files -g \"%s\"", form, desc, zshFileGlob(f.FileGlob))
	case flagDir:
		return fmt.Sprintf("%s[%s]:directory:_files -/", form, desc)
	default:
		return fmt.Sprintf("%s[%s]:value", form, desc)
	}
}

// zshEscape keeps descriptions safe inside an optspec's bracket section.
func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "[", "(")
	s = strings.ReplaceAll(s, "]", ")")
	return strings.ReplaceAll(s, "'", "")
}

// zshFileGlob converts a comma-separated glob list like "*.json,*.yaml" to
// the zsh alternation form "*.(json|yaml)".
func zshFileGlob(globs string) string {
	parts := strings.Split(globs, ",")
	if len(parts) == 1 {
		return globs
	}
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		exts = append(exts, strings.TrimPrefix(p, "*."))
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

// generateFish writes a fish completion script. Fish completions are flat
// complete statements guarded by helper conditions.
func generateFish(w io.Writer) error {
	var b strings.Builder
	cmds := getCommands()

	b.WriteString("# fish completion for m2gimage\n")
	b.WriteString("# Install: m2gimage completion fish > ~/.config/fish/completions/m2gimage.fish\n\n")
	b.WriteString("function __fish_m2gimage_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_m2gimage_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $argv[1] = $cmd[2]\n")
	b.WriteString("end\n\n")

	b.WriteString("# Commands\n")
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "complete -c m2gimage -f -n __fish_m2gimage_needs_command -a %s -d '%s'\n",
			cmd.Name, fishEscape(cmd.Desc))
	}
	b.WriteString("\n")

	for _, cmd := range cmds {
		switch cmd.Name {
		case "help":
			b.WriteString("# help positional arguments\n")
			fmt.Fprintf(&b, "complete -c m2gimage -f -n '__fish_m2gimage_using_command help' -a '%s'\n\n",
				strings.Join(commandNames(), " "))
			continue
		case "completion":
			b.WriteString("# completion positional arguments\n")
			fmt.Fprintf(&b, "complete -c m2gimage -f -n '__fish_m2gimage_using_command completion' -a '%s'\n\n",
				strings.Join(completionShells, " "))
			continue
		}
		if len(cmd.Flags) == 0 {
			continue
		}

		fmt.Fprintf(&b, "# %s flags\n", cmd.Name)
		for _, f := range cmd.Flags {
			fmt.Fprintf(&b, "complete -c m2gimage -n '__fish_m2gimage_using_command %s' -l %s", cmd.Name, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagBool:
				// no argument
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagDir:
				b.WriteString(" -r -a '(__fish_complete_directories)'")
			default:
				b.WriteString(" -r")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscape(f.Desc))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// fishEscape keeps descriptions safe inside single-quoted fish strings.
func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

// generatePowerShell writes a PowerShell argument completer. The completer
// offers command names first, then the chosen command's flags.
func generatePowerShell(w io.Writer) error {
	var b strings.Builder
	cmds := getCommands()

	b.WriteString("# PowerShell completion for m2gimage\n")
	b.WriteString("# Install: m2gimage completion powershell | Out-String | Invoke-Expression\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName m2gimage -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $commands = @(\n")
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "        @{ Name = '%s'; Desc = '%s' }\n", cmd.Name, psEscape(cmd.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    $flags = @{\n")
	for _, cmd := range cmds {
		if len(cmd.Flags) == 0 {
			continue
		}
		forms := strings.Split(allFlagForms(cmd), " ")
		fmt.Fprintf(&b, "        '%s' = @('%s')\n", cmd.Name, strings.Join(forms, "', '"))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    $elements = $commandAst.CommandElements | Select-Object -Skip 1 | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    $command = $elements | Where-Object { -not $_.StartsWith('-') } | Select-Object -First 1\n\n")
	b.WriteString("    if (-not $command -or $command -eq $wordToComplete) {\n")
	b.WriteString("        $commands | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterValue', $_.Desc)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    if ($wordToComplete.StartsWith('-') -and $flags.ContainsKey($command)) {\n")
	b.WriteString("        $flags[$command] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// psEscape doubles single quotes for PowerShell single-quoted strings.
func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
