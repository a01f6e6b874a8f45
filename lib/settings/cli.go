package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
)

// RunConfigCommand implements `geocontent config <show|dump|env|get|init>`.
// Settings must have been read before show, dump and get.
func RunConfigCommand(out io.Writer, args []string) error {
	if len(args) < 1 {
		printConfigHelp(out)
		return fmt.Errorf("missing config command")
	}

	ApplyRegistryDefaults()
	switch args[0] {
	case "show":
		configShow(out)
	case "dump":
		return configDump(out)
	case "env":
		configEnv(out)
	case "get":
		return configGet(out, args[1:])
	case "init":
		return configInit(out)
	default:
		printConfigHelp(out)
		return fmt.Errorf("unknown config command: %s", args[0])
	}
	return nil
}

func configShow(out io.Writer) {
	_, _ = fmt.Fprintf(out,
		"%-30s %-40s %-20s %-20s %s\n",
		"JSON KEY",
		"ENV VAR",
		"CURRENT",
		"DEFAULT",
		"DESCRIPTION",
	)

	for _, c := range Registry {
		current := viper.Get(c.Key)
		if c.Key == DBSettingsPassword && viper.GetString(c.Key) != "" {
			current = "********"
		}
		_, _ = fmt.Fprintf(out,
			"%-30s %-40s %-20v %-20v %s\n",
			c.Key,
			EnvVar(c.Key),
			current,
			c.Default,
			c.Description,
		)
	}
}

func configDump(out io.Writer) error {
	encoded, err := json.MarshalIndent(viper.AllSettings(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}

func configEnv(out io.Writer) {
	_, _ = fmt.Fprintf(out, "%-40s %s\n", "ENV VAR", "JSON KEY")

	for _, c := range Registry {
		_, _ = fmt.Fprintf(out, "%-40s %s\n", EnvVar(c.Key), c.Key)
	}
}

func configGet(out io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: geocontent config get <json-key>")
	}

	key := args[0]
	for _, c := range Registry {
		if c.Key == key {
			_, err := fmt.Fprintln(out, viper.Get(key))
			return err
		}
	}
	return fmt.Errorf("unknown config key: %s", key)
}

// configInit prints a settings.json holding every default, nested by key
// path.
func configInit(out io.Writer) error {
	root := map[string]any{}
	for _, c := range Registry {
		setNested(root, c.Key, c.Default)
	}

	encoded, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}

func setNested(root map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	current := root
	for _, part := range parts[:len(parts)-1] {
		child, ok := current[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			current[part] = child
		}
		current = child
	}
	current[parts[len(parts)-1]] = value
}

func printConfigHelp(out io.Writer) {
	_, _ = fmt.Fprintln(out, `Usage:
  geocontent config show
  geocontent config dump
  geocontent config env
  geocontent config get <json-key>
  geocontent config init`)
}
