package script

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how a script is read.
type Format string

const (
	FormatAuto  Format = ""
	FormatYAML  Format = "yaml"
	FormatLines Format = "lines"
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, "auto":
		return FormatAuto, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatLines:
		return FormatLines, nil
	default:
		return "", fmt.Errorf("unknown script format %q (want yaml or lines)", s)
	}
}

// Parse reads a script in the given format. FormatAuto picks YAML when the
// first meaningful line starts with "steps:" or is a flow mapping ("{").
func Parse(r io.Reader, format Format) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	if format == FormatAuto {
		format = detect(data)
	}
	if format == FormatYAML {
		return ParseYAML(bytes.NewReader(data))
	}
	return ParseLines(bytes.NewReader(data))
}

func detect(data []byte) Format {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || line == "---" {
			continue
		}
		if strings.HasPrefix(line, "steps:") || strings.HasPrefix(line, "{") {
			return FormatYAML
		}
		return FormatLines
	}
	return FormatLines
}

// ParseLines reads the line form: "op [args...]" per line, blank lines and
// # comments ignored.
func ParseLines(r io.Reader) (*Script, error) {
	sc := &Script{}
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		at := atLine(n)
		op, args := fields[0], fields[1:]
		spec, ok := opArgs[Op(op)]
		if !ok {
			return nil, at.errorf("unknown op %q", op)
		}
		if len(args) > len(spec) {
			return nil, at.errorf("%s: takes at most %d arguments, got %d", op, len(spec), len(args))
		}
		vals := make(map[string]int, len(args))
		for i, a := range args {
			v, err := strconv.Atoi(a)
			if err != nil {
				return nil, at.errorf("%s: %s %q is not an integer", op, spec[i].name, a)
			}
			vals[spec[i].name] = v
		}
		st, err := resolve(at, op, vals)
		if err != nil {
			return nil, err
		}
		sc.Steps = append(sc.Steps, st)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return sc, nil
}

// yamlScript is the on-disk YAML shape.
type yamlScript struct {
	Steps []yamlStep `yaml:"steps"`
}

type yamlStep struct {
	Op     string `yaml:"op"`
	Count  *int   `yaml:"count"`
	Stride *int   `yaml:"stride"`
	ID     *int   `yaml:"id"`
	Index  *int   `yaml:"index"`
	N      *int   `yaml:"n"`
	M      *int   `yaml:"m"`
}

func (y yamlStep) values() map[string]int {
	vals := make(map[string]int)
	for name, p := range map[string]*int{
		"count": y.Count, "stride": y.Stride, "id": y.ID,
		"index": y.Index, "n": y.N, "m": y.M,
	} {
		if p != nil {
			vals[name] = *p
		}
	}
	return vals
}

// ParseYAML reads the YAML form. Unknown keys are rejected. Step errors
// carry the 1-based step number in place of a line.
func ParseYAML(r io.Reader) (*Script, error) {
	var doc yamlScript
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Script{}, nil
		}
		return nil, fmt.Errorf("parse yaml script: %v: %w", err, ErrSyntax)
	}
	sc := &Script{Steps: make([]Step, 0, len(doc.Steps))}
	for i, ys := range doc.Steps {
		st, err := resolve(atStep(i+1), ys.Op, ys.values())
		if err != nil {
			return nil, err
		}
		sc.Steps = append(sc.Steps, st)
	}
	return sc, nil
}
