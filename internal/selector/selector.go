package selector

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/gitlive/gitlive/internal/errors"
	"github.com/gitlive/gitlive/internal/git"
)

// RuleKind distinguishes an additive rule from a subtractive one.
type RuleKind int

const (
	Add RuleKind = iota
	Remove
)

// Rule is one compiled entry of an ordered file-selection list.
type Rule struct {
	Kind    RuleKind
	Pattern string
	re      *regexp.Regexp
}

// ParseRule parses a single rule specification of the form "+ <glob>" or
// "- <glob>".
func ParseRule(spec string) (Rule, error) {
	trimmed := strings.TrimSpace(spec)
	if len(trimmed) < 2 {
		return Rule{}, errors.Errorf("invalid file-selection rule %q", spec)
	}
	var kind RuleKind
	switch trimmed[0] {
	case '+':
		kind = Add
	case '-':
		kind = Remove
	default:
		return Rule{}, errors.Errorf("file-selection rule %q must start with '+' or '-'", spec)
	}
	pattern := strings.TrimSpace(trimmed[1:])
	if pattern == "" {
		return Rule{}, errors.Errorf("file-selection rule %q has an empty pattern", spec)
	}
	re, err := compileGlob(pattern)
	if err != nil {
		return Rule{}, errors.Wrapf(err, "compiling glob %q", pattern)
	}
	return Rule{Kind: kind, Pattern: pattern, re: re}, nil
}

// CompileRules parses every spec in order.
func CompileRules(specs []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for _, spec := range specs {
		rule, err := ParseRule(spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// compileGlob compiles an Ant-style glob into an anchored, case-sensitive
// regular expression.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	if strings.HasSuffix(pattern, "/") {
		pattern = strings.TrimSuffix(pattern, "/") + "/**"
	}

	var out strings.Builder
	out.WriteString("^")

	switch {
	case pattern == "**":
		out.WriteString(".*")
		pattern = ""
	case strings.HasPrefix(pattern, "**/"):
		out.WriteString(`(?:[^/]+/)*`)
		pattern = strings.TrimPrefix(pattern, "**/")
	}

	trailingAny := strings.HasSuffix(pattern, "/**")
	if trailingAny {
		pattern = strings.TrimSuffix(pattern, "/**")
	}

	for i, part := range strings.Split(pattern, "/**/") {
		if i > 0 {
			out.WriteString(`/(?:[^/]+/)*`)
		}
		out.WriteString(compileSegment(part))
	}

	if trailingAny {
		out.WriteString(`(?:/.*)?`)
	}
	out.WriteString("$")

	return regexp.Compile(out.String())
}

// compileSegment handles the single-character tokens * and ? plus
// literal escaping; "**" as a whole segment is handled by the caller
// before this function ever sees it.
func compileSegment(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*':
			b.WriteString(`[^/]*`)
		case '?':
			b.WriteString(`[^/]`)
		case '/':
			b.WriteString(`/`)
		default:
			b.WriteString(regexp.QuoteMeta(string(s[i])))
		}
	}
	return b.String()
}

// Entry is one row of `git ls-tree -r`.
type Entry struct {
	Mode string
	Type string
	SHA  string
	Path string
}

// ParseLsTree parses the tab-separated output of `ls-tree -r`.
func ParseLsTree(output string) ([]Entry, error) {
	var entries []Entry
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		tab := strings.IndexByte(line, '\t')
		if tab < 0 {
			return nil, errors.Errorf("malformed ls-tree line: %q", line)
		}
		meta := strings.Fields(line[:tab])
		if len(meta) != 3 {
			return nil, errors.Errorf("malformed ls-tree metadata: %q", line)
		}
		path := strings.ReplaceAll(line[tab+1:], `\`, "/")
		entries = append(entries, Entry{Mode: meta[0], Type: meta[1], SHA: meta[2], Path: path})
	}
	return entries, nil
}

// Evaluate applies rules in order to entries and returns the selected
// subset, sorted by path for determinism. An empty rule list is treated
// as "no filtering configured" and returns entries unchanged.
func Evaluate(entries []Entry, rules []Rule) []Entry {
	if len(rules) == 0 {
		out := make([]Entry, len(entries))
		copy(out, entries)
		return out
	}

	selected := map[string]Entry{}
	if rules[0].Kind == Remove {
		for _, e := range entries {
			selected[e.Path] = e
		}
	}

	for _, rule := range rules {
		for _, e := range entries {
			if !rule.re.MatchString(e.Path) {
				continue
			}
			switch rule.Kind {
			case Add:
				selected[e.Path] = e
			case Remove:
				delete(selected, e.Path)
			}
		}
	}

	out := make([]Entry, 0, len(selected))
	for _, e := range selected {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// FilterTree reconstructs treeSHA through rules using plumbing only:
// enumerate with ls-tree, evaluate rules in memory, then
// materialize the result with read-tree --empty, update-index
// --cacheinfo per selected blob, and write-tree. No checkout happens and
// no working-tree file is ever touched. An empty rules list returns
// treeSHA unchanged without invoking git at all.
func FilterTree(ctx context.Context, runner git.Runner, treeSHA string, rules []Rule) (string, error) {
	if len(rules) == 0 {
		return treeSHA, nil
	}

	listing, err := runner.Run(ctx, "ls-tree", "-r", treeSHA)
	if err != nil {
		return "", err
	}
	entries, err := ParseLsTree(listing)
	if err != nil {
		return "", err
	}
	selected := Evaluate(entries, rules)

	if _, err := runner.Run(ctx, "read-tree", "--empty"); err != nil {
		return "", err
	}
	for _, e := range selected {
		cacheinfo := e.Mode + "," + e.SHA + "," + e.Path
		if _, err := runner.Run(ctx, "update-index", "--add", "--cacheinfo", cacheinfo); err != nil {
			return "", err
		}
	}
	return runner.Run(ctx, "write-tree")
}
