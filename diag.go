package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// MalformedFileError reports a structural problem in the exchange file
// that prevents building the entity store at all.
type MalformedFileError struct {
	Line   int // 1-based line where the offending statement starts
	Reason string
}

func (e *MalformedFileError) Error() string {
	return fmt.Sprintf("malformed file: line %d: %s", e.Line, e.Reason)
}

// CyclicReferenceError reports an entity that (transitively) references
// itself. Path lists the entity IDs from the outermost entity down to the
// repeated one.
type CyclicReferenceError struct {
	Path []int
}

func (e *CyclicReferenceError) Error() string {
	ids := make([]string, len(e.Path))
	for i, id := range e.Path {
		ids[i] = fmt.Sprintf("#%d", id)
	}
	return "cyclic reference: " + strings.Join(ids, " -> ")
}

type UnresolvedReferenceError struct {
	From, Ref int
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("entity #%d references undefined entity #%d", e.From, e.Ref)
}

type MalformedPointError struct {
	ID int
}

func (e *MalformedPointError) Error() string {
	return fmt.Sprintf("entity #%d: expected three coordinates", e.ID)
}

type DuplicateEntityError struct {
	ID, Line int
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("line %d: entity #%d redefined, keeping first definition", e.Line, e.ID)
}

// MalformedCableError reports a cable whose rails have a different
// number of splines. Start is the entity ID of the cable's first spline.
type MalformedCableError struct {
	Start        int
	Rail1, Rail2 int
}

func (e *MalformedCableError) Error() string {
	return fmt.Sprintf("cable at #%d: rail lengths differ (%d != %d)", e.Start, e.Rail1, e.Rail2)
}

// RunawayChainError reports that a chaining loop hit its iteration cap.
// The partial chain is still emitted.
type RunawayChainError struct {
	Stage string // "chain" or "stitch"
	Steps int
}

func (e *RunawayChainError) Error() string {
	return fmt.Sprintf("%s: stopped after %d steps", e.Stage, e.Steps)
}

type DiagKind string

const (
	DiagUnresolvedReference DiagKind = "unresolved-reference"
	DiagCyclicReference     DiagKind = "cyclic-reference"
	DiagMalformedCable      DiagKind = "malformed-cable"
	DiagRunawayChain        DiagKind = "runaway-chain"
	DiagMalformedPoint      DiagKind = "malformed-point"
	DiagDuplicateEntity     DiagKind = "duplicate-entity"
)

// A Diagnostic is a recoverable problem found during reconstruction. The
// offending unit (reference, entity, or cable) was skipped; everything
// else was still processed.
type Diagnostic struct {
	Kind DiagKind

	// Entity is the entity the diagnostic is about. For a cable it is
	// the first spline of the cable's first rail, which stays valid
	// through stitching and noise filtering.
	Entity int

	Err error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: #%d: %v", d.Kind, d.Entity, d.Err)
}

// diagSink accumulates diagnostics and mirrors each one to the log.
type diagSink struct {
	log   *zap.Logger
	m     *runMetrics
	diags []Diagnostic
}

func (s *diagSink) add(d Diagnostic) {
	s.diags = append(s.diags, d)
	s.log.Warn(d.Err.Error(),
		zap.String("kind", string(d.Kind)),
		zap.Int("entity", d.Entity))
	s.m.diagnostic(d.Kind)
}

func (s *diagSink) entity(kind DiagKind, id int, err error) {
	s.add(Diagnostic{Kind: kind, Entity: id, Err: err})
}

func (s *diagSink) cable(kind DiagKind, c *Cable, err error) {
	s.add(Diagnostic{Kind: kind, Entity: c.Start(), Err: err})
}
