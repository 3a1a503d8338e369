package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// An EntityStore holds the raw entity statements of a STEP exchange file,
// keyed by entity ID. Definitions are kept unparsed; only the handful of
// entity kinds we care about are ever interpreted, and only on demand.
type EntityStore struct {
	// IDs lists entity IDs in declaration order.
	IDs []int

	text map[int]string
	line map[int]int

	// Duplicates records IDs that were declared more than once. The
	// first declaration wins.
	Duplicates []*DuplicateEntityError
}

// Text returns the definition of entity id, starting at the entity name
// and including the terminating ';'.
func (s *EntityStore) Text(id int) (string, bool) {
	t, ok := s.text[id]
	return t, ok
}

// Line returns the 1-based line on which entity id was declared.
func (s *EntityStore) Line(id int) int {
	return s.line[id]
}

func (s *EntityStore) Len() int {
	return len(s.IDs)
}

// ReadSTEP reads a STEP exchange file and indexes its entity statements.
func ReadSTEP(r io.Reader) (*EntityStore, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	// B-spline statements with many control points can run long.
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ParseEntities(lines)
}

// ParseEntities builds an EntityStore from the lines of an exchange file.
//
// A line that starts with '#' and contains '=' begins an entity
// statement. The statement continues over following lines until a line
// ends with ';'. Everything else (header section, ENDSEC, comments) is
// ignored.
func ParseEntities(lines []string) (*EntityStore, error) {
	s := &EntityStore{
		text: make(map[int]string),
		line: make(map[int]int),
	}
	for i := 0; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(l, "#") || !strings.Contains(l, "=") {
			continue
		}

		// Join continuation lines.
		start := i
		stmt := l
		for !strings.HasSuffix(stmt, ";") {
			i++
			if i >= len(lines) {
				return nil, &MalformedFileError{Line: start + 1, Reason: "unterminated entity statement"}
			}
			stmt += strings.TrimSpace(lines[i])
		}

		lhs, def, _ := strings.Cut(stmt, "=")
		id, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(lhs, "#")))
		if err != nil || id <= 0 {
			return nil, &MalformedFileError{Line: start + 1, Reason: "invalid entity ID " + strconv.Quote(lhs)}
		}
		if _, ok := s.text[id]; ok {
			s.Duplicates = append(s.Duplicates, &DuplicateEntityError{ID: id, Line: start + 1})
			continue
		}
		s.IDs = append(s.IDs, id)
		s.text[id] = strings.TrimSpace(def)
		s.line[id] = start + 1
	}
	return s, nil
}

// entityKind returns the entity name at the start of a definition, such
// as "CARTESIAN_POINT". Complex entities, which start with '(', have no
// kind.
func entityKind(def string) string {
	end := strings.IndexAny(def, "( ;")
	if end < 0 {
		return def
	}
	return def[:end]
}
