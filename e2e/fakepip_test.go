//go:build e2e

package e2e_test

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// failingPackage cannot be installed by the fake pip.
const failingPackage = "broken"

// valueFlags take an argument in pip install and uninstall.
var valueFlags = []string{"-f", "-i", "--extra-index-url", "--trusted-host", "--prefix"}

var pinPattern = regexp.MustCompile(`^([A-Za-z0-9._-]+)(?:\[[^\]]*\])?\s*(?:[=<>!~]=?=?\s*([0-9][^,;\s]*))?`)

// fakePython emulates `python -m pip` on a site-packages listing made of
// "name==version" lines. Every invocation is appended to $FAKE_PIP_LOG.
func fakePython(args []string) int {
	if len(args) < 3 || args[0] != "-m" || args[1] != "pip" {
		fmt.Fprintln(os.Stderr, "fake python only runs pip")
		return 2
	}
	args = args[2:]

	if err := appendLog(strings.Join(args, " ")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	pkgs, err := loadPackages()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	quiet := slices.Contains(args, "-q")

	switch args[0] {
	case "inspect":
		return inspect(pkgs)
	case "uninstall":
		for _, name := range positional(args[1:]) {
			delete(pkgs, strings.ToLower(name))
			if !quiet {
				fmt.Printf("Successfully uninstalled %s\n", name)
			}
		}
	case "install":
		added, code := install(pkgs, args[1:])
		if code != 0 {
			return code
		}
		if !quiet {
			fmt.Printf("Successfully installed %s\n", strings.Join(added, " "))
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown pip command %q\n", args[0])
		return 2
	}

	if err := savePackages(pkgs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func inspect(pkgs map[string]string) int {
	type metadata struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	type entry struct {
		Metadata metadata `json:"metadata"`
	}
	report := struct {
		Version   string  `json:"version"`
		Installed []entry `json:"installed"`
	}{Version: "1"}

	for _, name := range slices.Sorted(maps.Keys(pkgs)) {
		report.Installed = append(report.Installed, entry{Metadata: metadata{Name: name, Version: pkgs[name]}})
	}
	if err := json.NewEncoder(os.Stdout).Encode(report); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func install(pkgs map[string]string, args []string) ([]string, int) {
	var added []string
	for i := 0; i < len(args); i++ {
		if args[i] == "-e" && i+1 < len(args) {
			i++
			name := strings.ToLower(filepath.Base(args[i]))
			pkgs[name] = "0.0.0"
			added = append(added, name+"-0.0.0")
			continue
		}
		if slices.Contains(valueFlags, args[i]) {
			i++
			continue
		}
		if strings.HasPrefix(args[i], "-") {
			continue
		}

		m := pinPattern.FindStringSubmatch(args[i])
		if m == nil {
			fmt.Fprintf(os.Stderr, "cannot parse requirement %q\n", args[i])
			return nil, 1
		}
		if strings.EqualFold(m[1], failingPackage) {
			fmt.Fprintf(os.Stderr, "ERROR: No matching distribution found for %s\n", args[i])
			return nil, 1
		}
		version := m[2]
		if version == "" {
			version = "1.0"
		}
		pkgs[strings.ToLower(m[1])] = version
		added = append(added, m[1]+"-"+version)
	}
	return added, 0
}

func positional(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		switch {
		case slices.Contains(valueFlags, args[i]):
			i++
		case strings.HasPrefix(args[i], "-"):
		default:
			out = append(out, args[i])
		}
	}
	return out
}

func loadPackages() (map[string]string, error) {
	data, err := os.ReadFile(os.Getenv("FAKE_PIP_STATE"))
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	pkgs := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		name, version, ok := strings.Cut(strings.TrimSpace(line), "==")
		if ok {
			pkgs[strings.ToLower(name)] = version
		}
	}
	return pkgs, nil
}

func savePackages(pkgs map[string]string) error {
	var b strings.Builder
	for _, name := range slices.Sorted(maps.Keys(pkgs)) {
		b.WriteString(name + "==" + pkgs[name] + "\n")
	}
	return os.WriteFile(os.Getenv("FAKE_PIP_STATE"), []byte(b.String()), 0o600)
}

func appendLog(line string) error {
	f, err := os.OpenFile(os.Getenv("FAKE_PIP_LOG"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, line)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
