package dochooks

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Statement is one line of a hooks dump.
type Statement struct {
	Type     HookType
	Name     string
	Class    string
	Method   string
	Priority int
	ArgCount int
}

// statementPattern matches the lines written by Statement.String.
var statementPattern = regexp.MustCompile(
	`^register_(action|filter|shortcode)\('([^']*)', \[objects\['([^']+)'\], '([\p{L}_][\p{L}\p{N}_]*)'\], (-?\d+), (\d+)\);$`)

// StatementFor builds the dump statement replaying rec.
func StatementFor(rec Record) Statement {
	return Statement{
		Type:     rec.Type,
		Name:     rec.Name,
		Class:    rec.Class,
		Method:   rec.Method,
		Priority: rec.Priority,
		ArgCount: rec.ArgCount,
	}
}

func (s Statement) String() string {
	return fmt.Sprintf("register_%s('%s', [objects['%s'], '%s'], %d, %d);",
		s.Type, s.Name, s.Class, s.Method, s.Priority, s.ArgCount)
}

// ParseError reports a line of a dump that is not a statement.
type ParseError struct {
	Path string
	Line int
	Text string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: invalid hook statement %q", e.Line, e.Text)
	}
	return fmt.Sprintf("%s:%d: invalid hook statement %q", e.Path, e.Line, e.Text)
}

// ParseDump reads the statements of a hooks dump. Blank lines and
// // comments are skipped.
func ParseDump(r io.Reader) ([]Statement, error) {
	var statements []Statement

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		m := statementPattern.FindStringSubmatch(line)
		if m == nil {
			return nil, &ParseError{Line: lineNo, Text: line}
		}
		priority, err := strconv.Atoi(m[5])
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line}
		}
		argCount, err := strconv.Atoi(m[6])
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line}
		}

		statements = append(statements, Statement{
			Type:     HookType(m[1]),
			Name:     m[2],
			Class:    m[3],
			Method:   m[4],
			Priority: priority,
			ArgCount: argCount,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	return statements, nil
}
