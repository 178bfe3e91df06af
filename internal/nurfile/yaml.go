package nurfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rawFile mirrors the on-disk shape of a .nur.yaml task file. It exists only
// to decode YAML into something Load can translate into the core's File
// type; the core never sees this struct.
type rawFile struct {
	Env     map[string]string `yaml:"env"`
	Options struct {
		Output struct {
			Prefix string `yaml:"prefix"`
			Style  string `yaml:"style"`
		} `yaml:"output"`
	} `yaml:"options"`
	Tasks map[string]struct {
		Description  string            `yaml:"description"`
		Dependencies []string          `yaml:"dependencies"`
		Env          map[string]string `yaml:"env"`
		Cancellable  *bool             `yaml:"cancellable"`
		Commands     []struct {
			Sh           string            `yaml:"sh"`
			IgnoreResult bool              `yaml:"ignore_result"`
			Env          map[string]string `yaml:"env"`
		} `yaml:"commands"`
	} `yaml:"tasks"`
}

// Load reads and decodes a task file from path.
//
// This is intentionally a minimal loader: a flat YAML document with a
// `tasks` map and an optional `env`/`options.output` block. It exists so
// that cmd/nur links against a real reader end to end; yaml_test.go covers
// only its basic cases (see SPEC_FULL.md §6).
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read task file %q: %w", path, err)
	}

	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return File{}, fmt.Errorf("parse task file %q: %w", path, err)
	}

	f := File{
		Tasks:   make(map[string]Task, len(raw.Tasks)),
		Env:     raw.Env,
		Options: Options{Output: DefaultOutputOptions()},
	}

	if p := raw.Options.Output.Prefix; p != "" {
		style, err := parsePrefixStyle(p)
		if err != nil {
			return File{}, err
		}
		f.Options.Output.Prefix = style
	}
	if s := raw.Options.Output.Style; s != "" {
		style, err := parseOutputStyle(s)
		if err != nil {
			return File{}, err
		}
		f.Options.Output.Style = style
	}

	for name, rt := range raw.Tasks {
		task := Task{
			Description:  rt.Description,
			Dependencies: rt.Dependencies,
			Env:          rt.Env,
			Cancellable:  true,
		}
		if rt.Cancellable != nil {
			task.Cancellable = *rt.Cancellable
		}
		for _, rc := range rt.Commands {
			task.Commands = append(task.Commands, Command{
				Sh:           rc.Sh,
				IgnoreResult: rc.IgnoreResult,
				Env:          rc.Env,
			})
		}
		f.Tasks[name] = task
	}

	return f, nil
}

func parsePrefixStyle(s string) (PrefixStyle, error) {
	switch s {
	case "none":
		return NoPrefix, nil
	case "always":
		return Always, nil
	case "aligned":
		return Aligned, nil
	default:
		return 0, fmt.Errorf("unsupported options.output.prefix %q (want one of: none, always, aligned)", s)
	}
}

func parseOutputStyle(s string) (OutputStyle, error) {
	switch s {
	case "streamed":
		return Streamed, nil
	case "grouped":
		return Grouped, nil
	default:
		return 0, fmt.Errorf("unsupported options.output.style %q (want one of: streamed, grouped)", s)
	}
}
