// ABOUTME: Parsing of training entries typed on the command line.
// ABOUTME: Accepts name=count pairs or parallel comma-separated lists.
package main

import (
	"fmt"
	"strconv"
	"strings"
)

// fullWidthComma is what CJK input methods type for ','.
const fullWidthComma = "，"

// parseEntries parses args of the form name=count. A bare name counts as one group.
func parseEntries(args []string) ([]string, []int, error) {
	names := make([]string, 0, len(args))
	counts := make([]int, 0, len(args))
	for _, arg := range args {
		name, countStr, hasCount := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, nil, fmt.Errorf("invalid entry %q: missing exercise name", arg)
		}
		count := 1
		if hasCount {
			n, err := parseCount(countStr)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid entry %q: %w", arg, err)
			}
			count = n
		}
		names = append(names, name)
		counts = append(counts, count)
	}
	return names, counts, nil
}

// parseLists parses the comma-separated form: "squat,bench" with "3,4".
// Full-width commas are accepted in both lists.
func parseLists(exercises, counts string) ([]string, []int, error) {
	names := splitList(exercises)
	rawCounts := splitList(counts)
	if len(names) != len(rawCounts) {
		return nil, nil, fmt.Errorf("%d exercises but %d group counts", len(names), len(rawCounts))
	}
	nums := make([]int, len(rawCounts))
	for i, c := range rawCounts {
		n, err := parseCount(c)
		if err != nil {
			return nil, nil, fmt.Errorf("group count for %s: %w", names[i], err)
		}
		nums[i] = n
	}
	return names, nums, nil
}

func splitList(s string) []string {
	s = strings.ReplaceAll(s, fullWidthComma, ",")
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("group count must be a whole number, got %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("group count must not be negative, got %d", n)
	}
	return n, nil
}
