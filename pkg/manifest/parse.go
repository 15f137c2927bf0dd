package manifest

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/arthur-debert/podkeeper/pkg/types"
)

// Contents is what Parse recovers from a Podfile.
type Contents struct {
	Declarations []string
	Sources      []string
	Pods         []types.Pod
}

// statement is how Parse reads one trimmed Podfile line.
type statement int

const (
	stmtBlank statement = iota
	stmtComment
	stmtBoilerplate
	stmtSource
	stmtPod
	stmtDeclaration
)

func (s statement) String() string {
	switch s {
	case stmtBlank:
		return "blank line"
	case stmtComment:
		return "comment"
	case stmtBoilerplate:
		return "platform, target, project or end line"
	case stmtSource:
		return "source line"
	case stmtPod:
		return "pod line"
	default:
		return "declaration"
	}
}

// classify maps a trimmed line to its statement and keyword.
func classify(line string) (statement, string) {
	keyword, _, _ := strings.Cut(line, " ")
	switch {
	case line == "":
		return stmtBlank, ""
	case strings.HasPrefix(line, "#"):
		return stmtComment, ""
	case line == "end", keyword == "platform", keyword == "target", keyword == "project":
		return stmtBoilerplate, keyword
	case keyword == "source":
		return stmtSource, keyword
	case keyword == "pod":
		return stmtPod, keyword
	default:
		return stmtDeclaration, keyword
	}
}

// Parse reads a Podfile in the format Bytes produces. Comments, the
// platform line, target/project lines and "end" are boilerplate; any other
// statement is kept as a declaration.
func Parse(data []byte) (*Contents, error) {
	c := &Contents{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		stmt, keyword := classify(line)

		switch stmt {
		case stmtSource:
			tokens, err := tokenize(line[len(keyword):])
			if err != nil || len(tokens) != 1 || tokens[0].kind != tokString {
				return nil, fmt.Errorf("line %d: malformed source statement", lineNo)
			}
			c.Sources = append(c.Sources, tokens[0].text)
		case stmtPod:
			pod, err := parsePod(line[len(keyword):])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			c.Pods = append(c.Pods, pod)
		case stmtDeclaration:
			c.Declarations = append(c.Declarations, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// CheckDeclaration returns an error unless text is read back by Parse as
// the same declaration after Bytes writes it.
func CheckDeclaration(text string) error {
	if strings.ContainsAny(text, "\r\n") {
		return fmt.Errorf("%q spans more than one line", text)
	}
	if text != strings.TrimSpace(text) {
		return fmt.Errorf("%q has leading or trailing whitespace", text)
	}
	if stmt, _ := classify(text); stmt != stmtDeclaration {
		return fmt.Errorf("%q would be read back as a %s", text, stmt)
	}
	return nil
}

// CheckValue returns an error unless s survives as a quoted Podfile string.
func CheckValue(s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return fmt.Errorf("%q spans more than one line", s)
	}
	return nil
}

func parsePod(rest string) (types.Pod, error) {
	tokens, err := tokenize(rest)
	if err != nil {
		return types.Pod{}, err
	}
	if len(tokens) == 0 || tokens[0].kind != tokString {
		return types.Pod{}, fmt.Errorf("pod statement without a name")
	}

	pod := types.Pod{Name: tokens[0].text}
	tokens = tokens[1:]

	if len(tokens) > 0 && tokens[0].kind == tokString {
		pod.Spec = tokens[0].text
		tokens = tokens[1:]
	}

	for len(tokens) > 0 {
		if len(tokens) < 2 || tokens[0].kind != tokSymbol || tokens[1].kind != tokString {
			return types.Pod{}, fmt.Errorf("pod %q: expected :option => 'value'", pod.Name)
		}
		value := tokens[1].text
		switch tokens[0].text {
		case "git":
			pod.Git = value
		case "tag":
			pod.Tag = value
		case "commit":
			pod.Commit = value
		case "branch":
			pod.Branch = value
		default:
			return types.Pod{}, fmt.Errorf("pod %q: unsupported option :%s", pod.Name, tokens[0].text)
		}
		tokens = tokens[2:]
	}

	return pod, nil
}

type tokenKind int

const (
	tokString tokenKind = iota
	tokSymbol
)

type token struct {
	kind tokenKind
	text string
}

// tokenize splits the argument list of a statement into single-quoted
// strings and :symbols. Commas and "=>" are separators.
func tokenize(s string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(s) {
		switch c := s[i]; {
		case c == ' ' || c == '\t' || c == ',':
			i++
		case strings.HasPrefix(s[i:], "=>"):
			i += 2
		case c == '\'':
			text, n, err := unquote(s[i:])
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokString, text: text})
			i += n
		case c == ':':
			j := i + 1
			for j < len(s) && isIdent(s[j]) {
				j++
			}
			if j == i+1 {
				return nil, fmt.Errorf("empty symbol at offset %d", i)
			}
			tokens = append(tokens, token{kind: tokSymbol, text: s[i+1 : j]})
			i = j
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d", c, i)
		}
	}
	return tokens, nil
}

func isIdent(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// quote renders s as a single-quoted Ruby string.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// unquote reads a single-quoted Ruby string at the start of s and returns
// its value and the number of bytes consumed.
func unquote(s string) (string, int, error) {
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '\'') {
				b.WriteByte(s[i+1])
				i++
				continue
			}
			b.WriteByte('\\')
		case '\'':
			return b.String(), i + 1, nil
		default:
			b.WriteByte(s[i])
		}
	}
	return "", 0, fmt.Errorf("unterminated string")
}
