package knap

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// OR-Library text format:
//
//	# optimal: 9147        (optional comment header)
//	# instance: p01        (optional comment header)
//	n capacity
//	value weight           (n lines)
var optimalRe = regexp.MustCompile(`(?i)optimal[:\s]+(\d+)`)

// Load reads an instance from an OR-Library format file. The instance name
// defaults to the file's base name without extension.
func Load(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open instance file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read instance file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var optimal *int
	start := 0
	for i, line := range lines {
		if !strings.HasPrefix(line, "#") {
			start = i
			break
		}
		if m := optimalRe.FindStringSubmatch(line); m != nil {
			v, err := strconv.Atoi(m[1])
			if err == nil {
				optimal = &v
			}
		}
		start = i + 1
	}

	if start >= len(lines) {
		return nil, fmt.Errorf("malformed instance file %s: no header line", path)
	}

	header := strings.Fields(lines[start])
	if len(header) < 2 {
		return nil, fmt.Errorf("malformed instance file %s: header %q", path, lines[start])
	}
	n, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, fmt.Errorf("malformed instance file %s: item count %q", path, header[0])
	}
	capacity, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, fmt.Errorf("malformed instance file %s: capacity %q", path, header[1])
	}

	values := make([]int, 0, n)
	weights := make([]int, 0, n)
	for i := start + 1; i < start+1+n; i++ {
		if i >= len(lines) {
			return nil, fmt.Errorf("malformed instance file %s: expected %d items, found %d", path, n, len(values))
		}
		fields := strings.Fields(lines[i])
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed instance file %s: line %d %q", path, i+1, lines[i])
		}
		v, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("malformed instance file %s: value %q", path, fields[0])
		}
		w, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("malformed instance file %s: weight %q", path, fields[1])
		}
		values = append(values, v)
		weights = append(weights, w)
	}

	inst, err := NewInstance(capacity, weights, values)
	if err != nil {
		return nil, fmt.Errorf("invalid instance in %s: %w", path, err)
	}
	inst.Name = name
	inst.Optimal = optimal
	return inst, nil
}

// Save writes the instance in OR-Library format. The known optimal and name
// are written as comment headers when present.
func Save(inst *Instance, path string) error {
	var b strings.Builder
	if inst.Optimal != nil {
		fmt.Fprintf(&b, "# optimal: %d\n", *inst.Optimal)
	}
	if inst.Name != "" && inst.Name != "unnamed" {
		fmt.Fprintf(&b, "# instance: %s\n", inst.Name)
	}
	fmt.Fprintf(&b, "%d %d\n", inst.N(), inst.Capacity)
	for i := 0; i < inst.N(); i++ {
		fmt.Fprintf(&b, "%d %d\n", inst.Values[i], inst.Weights[i])
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write instance file: %w", err)
	}
	return nil
}

// LoadDir loads every .txt instance in a directory, skipping documentation
// files. Unparseable files are logged and skipped rather than aborting the
// sweep.
func LoadDir(dir string) ([]*Instance, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read instance directory: %w", err)
	}

	var instances []*Instance
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		lower := strings.ToLower(entry.Name())
		if strings.Contains(lower, "readme") || strings.Contains(lower, "info") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		inst, err := Load(path)
		if err != nil {
			slog.Warn("Skipping unreadable instance", "path", path, "error", err)
			continue
		}
		instances = append(instances, inst)
	}
	return instances, nil
}
