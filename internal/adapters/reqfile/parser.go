package reqfile

import (
	"bufio"
	"bytes"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/reqsync/internal/core/domain"
	"go.trai.ch/zerr"
)

var (
	// inlineComment matches a '#' that starts a line or follows whitespace.
	// "#egg=" fragments inside URLs are preserved.
	inlineComment = regexp.MustCompile(`(^|\s+)#.*$`)

	// projectName matches a bare project name.
	projectName = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?$`)

	// namedRequirement matches "name[extras] rest".
	namedRequirement = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(?:\[([^\]]*)\])?\s*(.*)$`)

	// directReference matches "name[extras] @ url".
	directReference = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(?:\[([^\]]*)\])?\s*@\s*(\S.*)$`)

	// archiveName matches sdist and wheel file names: name-version(-tags).ext
	archiveName = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*?[A-Za-z0-9])?)-\d[^/]*\.(?:tar\.gz|tar\.bz2|tgz|zip|whl)$`)

	// urlMarker matches the separator between a URL and its marker.
	urlMarker = regexp.MustCompile(`\s+;`)

	// eggVersion matches the version suffix of an old-style egg name: name-1.0
	eggVersion = regexp.MustCompile(`-\d.*$`)

	vcsPrefixes     = []string{"git+", "hg+", "svn+", "bzr+"}
	archiveSuffixes = []string{".tar.gz", ".tar.bz2", ".tgz", ".zip", ".whl"}
)

// entry is one meaningful line of a requirements file: a requirement, an include,
// or neither when the line only carried installer options.
type entry struct {
	requirement *domain.Requirement
	include     string
}

// logicalLine is a line after continuation joining.
type logicalLine struct {
	number int
	text   string
}

// parser turns one file's content into entries and embedded options.
type parser struct {
	path    string
	options domain.InstallOptions
}

func parse(filePath string, data []byte) ([]entry, domain.InstallOptions, error) {
	p := &parser{path: filePath}

	var entries []entry
	for _, line := range logicalLines(data) {
		text := strings.TrimSpace(inlineComment.ReplaceAllString(line.text, ""))
		if text == "" {
			continue
		}

		e, err := p.parseLine(text, line.number)
		if err != nil {
			return nil, domain.InstallOptions{}, zerr.With(zerr.With(zerr.With(err,
				"file", filePath), "line", line.number), "text", text)
		}
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, p.options, nil
}

// logicalLines splits data into lines, joining those that end with a backslash.
func logicalLines(data []byte) []logicalLine {
	var (
		lines   []logicalLine
		pending strings.Builder
		start   int
	)

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		raw := strings.TrimRight(sc.Text(), "\r")
		if pending.Len() == 0 {
			start = n
		}

		if body, ok := strings.CutSuffix(raw, `\`); ok {
			pending.WriteString(body)
			// Keep a placeholder so an empty continuation still counts as pending.
			if pending.Len() == 0 {
				pending.WriteByte(' ')
			}
			continue
		}

		pending.WriteString(raw)
		lines = append(lines, logicalLine{number: start, text: pending.String()})
		pending.Reset()
	}
	if pending.Len() > 0 {
		lines = append(lines, logicalLine{number: start, text: pending.String()})
	}
	return lines
}

func (p *parser) parseLine(text string, number int) (*entry, error) {
	tokens := strings.Fields(text)
	if strings.HasPrefix(tokens[0], "-") {
		return p.parseOption(tokens)
	}

	// Per-requirement options such as --hash start at the first dash token.
	reqTokens := tokens
	for i, tok := range tokens {
		if strings.HasPrefix(tok, "-") {
			reqTokens = tokens[:i]
			break
		}
	}

	req, err := parseRequirement(strings.Join(reqTokens, " "))
	if err != nil {
		return nil, err
	}
	req.Origin = p.path + ":" + strconv.Itoa(number)
	return &entry{requirement: &req}, nil
}

// parseOption handles a line that starts with an option.
func (p *parser) parseOption(tokens []string) (*entry, error) {
	name, value, hasValue := strings.Cut(tokens[0], "=")
	rest := tokens[1:]

	// Short options may be glued to their value: -rbase.txt
	if !hasValue && len(name) > 2 && name[1] != '-' {
		name, value, hasValue = name[:2], name[2:], true
	}

	arg := func() (string, error) {
		if hasValue {
			return value, nil
		}
		if len(rest) == 0 {
			return "", zerr.With(domain.ErrMalformedRequirement, "option", name)
		}
		return rest[0], nil
	}

	switch name {
	case "-r", "--requirement":
		v, err := arg()
		if err != nil {
			return nil, err
		}
		return &entry{include: v}, nil

	case "-c", "--constraint":
		return nil, zerr.With(domain.ErrUnsupportedOption, "option", name)

	case "-e", "--editable":
		v, err := arg()
		if err != nil {
			return nil, err
		}
		req, err := p.parseEditable(v)
		if err != nil {
			return nil, err
		}
		return &entry{requirement: &req}, nil

	case "-f", "--find-links":
		v, err := arg()
		if err != nil {
			return nil, err
		}
		p.options.FindLinks = append(p.options.FindLinks, v)

	case "--trusted-host":
		v, err := arg()
		if err != nil {
			return nil, err
		}
		p.options.TrustedHosts = append(p.options.TrustedHosts, v)

	case "-i", "--index-url":
		v, err := arg()
		if err != nil {
			return nil, err
		}
		p.options.IndexURL = v

	case "--extra-index-url":
		v, err := arg()
		if err != nil {
			return nil, err
		}
		p.options.ExtraIndexURLs = append(p.options.ExtraIndexURLs, v)

	case "--no-index":
		p.options.NoIndex = true

	case "--pre", "--prefer-binary", "--require-hashes", "--no-binary", "--only-binary", "--use-feature":
		// Resolution options; the input is already resolved.

	default:
		return nil, zerr.With(domain.ErrUnsupportedOption, "option", name)
	}
	return nil, nil
}

// parseEditable builds an editable requirement. The package name comes from the
// #egg= fragment or, for local paths, from the directory name.
func (p *parser) parseEditable(src string) (domain.Requirement, error) {
	name := eggName(src)
	if name == "" && isLocalPath(src) {
		dir := src
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(p.path), dir)
		}
		if abs, err := filepath.Abs(dir); err == nil {
			name = filepath.Base(abs)
		}
	}
	if !projectName.MatchString(name) {
		return domain.Requirement{}, domain.ErrMissingPackageName
	}
	return domain.NewSourceRequirement(name, src, true), nil
}

// parseRequirement parses a requirement specifier, a direct reference, a URL or a
// local archive.
func parseRequirement(text string) (domain.Requirement, error) {
	body, marker := splitMarker(text)

	if m := directReference.FindStringSubmatch(body); m != nil {
		req := domain.NewSourceRequirement(m[1], m[3], false)
		req.Extras = splitExtras(m[2])
		req.Marker = marker
		return req, nil
	}

	if looksLikeSource(body) {
		name := eggName(body)
		if name == "" {
			name = archiveProject(body)
		}
		if name == "" {
			return domain.Requirement{}, domain.ErrMissingPackageName
		}
		req := domain.NewSourceRequirement(name, body, false)
		req.Marker = marker
		return req, nil
	}

	m := namedRequirement.FindStringSubmatch(body)
	if m == nil {
		return domain.Requirement{}, domain.ErrMalformedRequirement
	}

	spec := strings.TrimSpace(m[3])
	if inner, ok := strings.CutPrefix(spec, "("); ok {
		spec = strings.TrimSuffix(inner, ")")
	}
	normalized, err := domain.ValidateSpecifier(spec)
	if err != nil {
		return domain.Requirement{}, zerr.Wrap(err, domain.ErrMalformedRequirement.Error())
	}

	req := domain.NewVersionRequirement(m[1], normalized)
	req.Extras = splitExtras(m[2])
	req.Marker = marker
	return req, nil
}

// splitMarker separates an environment marker. After a URL the ';' must be
// preceded by whitespace, otherwise it belongs to the URL.
func splitMarker(text string) (string, string) {
	if strings.Contains(text, "://") || strings.Contains(text, "@") {
		loc := urlMarker.FindStringIndex(text)
		if loc == nil {
			return strings.TrimSpace(text), ""
		}
		return strings.TrimSpace(text[:loc[0]]), strings.TrimSpace(text[loc[1]:])
	}

	body, marker, _ := strings.Cut(text, ";")
	return strings.TrimSpace(body), strings.TrimSpace(marker)
}

func splitExtras(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	extras := make([]string, 0, len(parts))
	for _, e := range parts {
		if e = strings.TrimSpace(e); e != "" {
			extras = append(extras, strings.ToLower(e))
		}
	}
	return extras
}

func looksLikeSource(text string) bool {
	if strings.Contains(text, "://") || isLocalPath(text) {
		return true
	}
	for _, prefix := range vcsPrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	lower := strings.ToLower(text)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func isLocalPath(text string) bool {
	return strings.HasPrefix(text, ".") || strings.HasPrefix(text, "/") ||
		strings.HasPrefix(text, "~") || strings.HasPrefix(text, "file:")
}

// eggName returns the #egg= fragment of a source, if any.
func eggName(src string) string {
	_, fragment, ok := strings.Cut(src, "#")
	if !ok {
		return ""
	}
	values, err := url.ParseQuery(fragment)
	if err != nil {
		return ""
	}
	name := eggVersion.ReplaceAllString(values.Get("egg"), "")
	if !projectName.MatchString(name) {
		return ""
	}
	return name
}

// archiveProject derives the project name from an sdist or wheel file name.
func archiveProject(src string) string {
	trimmed, _, _ := strings.Cut(src, "#")
	trimmed, _, _ = strings.Cut(trimmed, "?")
	m := archiveName.FindStringSubmatch(path.Base(filepath.ToSlash(trimmed)))
	if m == nil {
		return ""
	}
	return m[1]
}
