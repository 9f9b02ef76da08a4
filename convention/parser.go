// Package convention turns "Controller@action" route targets into the
// fully-qualified controller class and the action to call on it.
//
// Grammar:
//
//	(Namespace\)*NameController@action
//
// Namespace and Name segments are UpperCamel words ([A-Z][a-z]+), the
// controller always ends in the literal "Controller" and the action matches
// [a-z][a-zA-Z0-9_-]*.
package convention

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Separator joins namespace segments.
const Separator = `\`

// DefaultRoot is the namespace every parsed controller is looked up under.
const DefaultRoot = `App\Controllers`

// ExpectedPattern is reported back to callers that pass a malformed target.
const ExpectedPattern = "XxxController@action"

var (
	ErrInvalidConvention = errors.New("invalid controller/action")
	ErrClassNotFound     = errors.New("namespace or class does not exist")
)

// Namespace segments always end in a separator and the class name never
// contains one, so every segment before the last separator is namespace.
var conventionPattern = regexp.MustCompile(`^((?:[A-Z][a-z]+\\)*([A-Z][a-z]+)+Controller)@([a-z][a-zA-Z0-9_-]*)$`)

// InvalidConventionError carries the offending subject and whatever fragments
// could be pulled out of it.
type InvalidConventionError struct {
	Subject    string
	Controller string
	Action     string
}

func (e *InvalidConventionError) Error() string {
	return fmt.Sprintf("invalid controller/action %q (controller=%q action=%q): expected a string like %s",
		e.Subject, e.Controller, e.Action, ExpectedPattern)
}

func (e *InvalidConventionError) Unwrap() error { return ErrInvalidConvention }

// Target is a parsed and verified convention string.
type Target struct {
	// Controller is the fully-qualified class name, root included.
	Controller string
	// Action is the raw action segment as written in the route.
	Action string
}

// Method is the exported Go method name bound to the action.
func (t Target) Method() string { return MethodName(t.Action) }

func (t Target) String() string { return t.Controller + "@" + t.Action }

// Parse validates subject against the grammar and splits it. It never returns
// partial output: ok is false and both strings are empty on mismatch.
func Parse(subject string) (controller, action string, ok bool) {
	m := conventionPattern.FindStringSubmatch(subject)
	if m == nil || m[0] == "" {
		return "", "", false
	}
	return m[1], m[3], true
}

// ClassLookup answers whether a fully-qualified class name is known.
type ClassLookup interface {
	Exists(name string) bool
}

// Parser resolves convention strings against a root namespace and a class table.
type Parser struct {
	root    string
	classes ClassLookup
}

func NewParser(root string, classes ClassLookup) *Parser {
	if root == "" {
		root = DefaultRoot
	}
	return &Parser{root: Join(root), classes: classes}
}

func (p *Parser) Root() string { return p.root }

// Resolve parses subject, prefixes the root namespace and verifies the class
// exists. Nothing is instantiated here.
func (p *Parser) Resolve(subject string) (Target, error) {
	controller, action, ok := Parse(subject)
	if !ok || controller == "" || action == "" {
		return Target{}, &InvalidConventionError{Subject: subject, Controller: controller, Action: action}
	}

	fqn := Join(p.root, controller)
	if p.classes == nil || !p.classes.Exists(fqn) {
		return Target{}, fmt.Errorf("%w: %s", ErrClassNotFound, fqn)
	}

	return Target{Controller: fqn, Action: action}, nil
}

// Join builds a namespace from segments, dropping empty ones and stray separators.
func Join(parts ...string) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, Separator)
		if p != "" {
			segs = append(segs, p)
		}
	}
	return strings.Join(segs, Separator)
}

// MethodName maps an action onto an exported Go method: "index" -> "Index",
// "list-all" -> "ListAll", "show_item" -> "ShowItem".
func MethodName(action string) string {
	var b strings.Builder
	b.Grow(len(action))

	upper := true
	for _, r := range action {
		if r == '-' || r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
