// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package chc

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/consensys/go-horn/pkg/chc/term"
)

// ParseInstance parses an instance from its textual representation.  The
// format is a sequence of s-expressions:
//
//	(declare-pred even (Int))
//	(rule ((x Int) (y Int)) ((even x) (= y (+ x 2))) (even y))
//	(rule ((x Int)) ((even x) (= x 1)) false)
//
// A rule declares its variables, then gives its body (predicate applications
// and side-condition terms, distinguished by their head symbol) and finally
// its head ("false" for a negative clause).
func ParseInstance(input string) (*Instance, error) {
	sexps, err := parseSExps(input)
	if err != nil {
		return nil, err
	}
	//
	parser := &instanceParser{NewInstance(), make(map[string]PredIndex)}
	//
	for _, s := range sexps {
		if err := parser.parseDecl(s); err != nil {
			return nil, err
		}
	}
	//
	return parser.instance, nil
}

// ============================================================================
// S-Expressions
// ============================================================================

// sexp is either a symbol or a list of s-expressions.
type sexp interface{ isSExp() }

type symbol string

func (s symbol) isSExp() {}

type list []sexp

func (l list) isSExp() {}

// parseSExps reads all top-level s-expressions of the input.
func parseSExps(input string) ([]sexp, error) {
	runes := []rune(input)
	index := 0
	sexps := []sexp{}
	//
	for {
		index = skipSpace(runes, index)
		//
		if index >= len(runes) {
			return sexps, nil
		}
		//
		s, next, err := parseSExp(runes, index)
		if err != nil {
			return nil, err
		}
		//
		sexps = append(sexps, s)
		index = next
	}
}

func parseSExp(runes []rune, index int) (sexp, int, error) {
	index = skipSpace(runes, index)
	//
	if index >= len(runes) {
		return nil, index, fmt.Errorf("unexpected end of input")
	}
	//
	switch runes[index] {
	case '(':
		elements := list{}
		index++
		//
		for {
			index = skipSpace(runes, index)
			//
			if index >= len(runes) {
				return nil, index, fmt.Errorf("unclosed bracket")
			} else if runes[index] == ')' {
				return elements, index + 1, nil
			}
			//
			element, next, err := parseSExp(runes, index)
			if err != nil {
				return nil, index, err
			}
			//
			elements = append(elements, element)
			index = next
		}
	case ')':
		return nil, index, fmt.Errorf("unexpected closing bracket")
	default:
		start := index
		//
		for index < len(runes) && !unicode.IsSpace(runes[index]) &&
			runes[index] != '(' && runes[index] != ')' {
			index++
		}
		//
		return symbol(runes[start:index]), index, nil
	}
}

// skipSpace advances over whitespace and line comments (";" to end of line).
func skipSpace(runes []rune, index int) int {
	for index < len(runes) {
		switch {
		case unicode.IsSpace(runes[index]):
			index++
		case runes[index] == ';':
			for index < len(runes) && runes[index] != '\n' {
				index++
			}
		default:
			return index
		}
	}
	//
	return index
}

// ============================================================================
// Instance construction
// ============================================================================

type instanceParser struct {
	instance *Instance
	preds    map[string]PredIndex
}

func (p *instanceParser) parseDecl(s sexp) error {
	items, ok := s.(list)
	//
	if !ok || len(items) == 0 {
		return fmt.Errorf("malformed declaration %s", render(s))
	}
	//
	switch items[0] {
	case symbol("declare-pred"):
		return p.parsePredDecl(items)
	case symbol("rule"):
		return p.parseRule(items)
	default:
		return fmt.Errorf("unknown declaration %s", render(items[0]))
	}
}

func (p *instanceParser) parsePredDecl(items list) error {
	if len(items) != 3 {
		return fmt.Errorf("malformed predicate declaration %s", render(items))
	}
	//
	name, ok := items[1].(symbol)
	sorts, okSorts := items[2].(list)
	//
	if !ok || !okSorts {
		return fmt.Errorf("malformed predicate declaration %s", render(items))
	} else if _, exists := p.preds[string(name)]; exists {
		return fmt.Errorf("predicate %s declared twice", name)
	}
	//
	sig := make([]term.Sort, len(sorts))
	//
	for i, s := range sorts {
		sort, err := parseSort(s)
		if err != nil {
			return err
		}
		//
		sig[i] = sort
	}
	//
	p.preds[string(name)] = p.instance.AddPredicate(NewPredicate(string(name), sig...))
	//
	return nil
}

func (p *instanceParser) parseRule(items list) error {
	if len(items) != 4 {
		return fmt.Errorf("malformed rule %s", render(items))
	}
	//
	vars, err := p.parseVarDecls(items[1])
	if err != nil {
		return err
	}
	//
	env := make(map[string]term.Var, len(vars))
	//
	for _, v := range vars {
		env[v.Name] = v
	}
	// Body
	body, ok := items[2].(list)
	if !ok {
		return fmt.Errorf("malformed rule body %s", render(items[2]))
	}
	//
	var (
		apps  []PredApp
		terms []term.Term
	)
	//
	for _, element := range body {
		if app, ok, err := p.parseApp(element, env); err != nil {
			return err
		} else if ok {
			apps = append(apps, app)
		} else {
			t, err := p.parseTerm(element, env)
			if err != nil {
				return err
			}
			//
			terms = append(terms, t)
		}
	}
	// Head
	if items[3] == symbol("false") {
		p.instance.AddClause(NewNegClause(vars, apps, terms))
		return nil
	}
	//
	head, ok, err := p.parseApp(items[3], env)
	//
	if err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("rule head must be a predicate application or false, got %s", render(items[3]))
	}
	//
	p.instance.AddClause(NewClause(vars, apps, terms, head))
	//
	return nil
}

func (p *instanceParser) parseVarDecls(s sexp) ([]term.Var, error) {
	decls, ok := s.(list)
	if !ok {
		return nil, fmt.Errorf("malformed variable declarations %s", render(s))
	}
	//
	vars := make([]term.Var, len(decls))
	//
	for i, decl := range decls {
		pair, ok := decl.(list)
		//
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("malformed variable declaration %s", render(decl))
		}
		//
		name, ok := pair[0].(symbol)
		if !ok {
			return nil, fmt.Errorf("malformed variable name %s", render(pair[0]))
		}
		//
		sort, err := parseSort(pair[1])
		if err != nil {
			return nil, err
		}
		//
		vars[i] = term.NewVar(string(name), sort)
	}
	//
	return vars, nil
}

// parseApp attempts to parse an s-expression as an application of a declared
// predicate.  The boolean distinguishes "not an application" from an error.
func (p *instanceParser) parseApp(s sexp, env map[string]term.Var) (PredApp, bool, error) {
	items, ok := s.(list)
	//
	if !ok || len(items) == 0 {
		return PredApp{}, false, nil
	}
	//
	name, ok := items[0].(symbol)
	if !ok {
		return PredApp{}, false, nil
	}
	//
	pred, ok := p.preds[string(name)]
	if !ok {
		return PredApp{}, false, nil
	}
	//
	sig := p.instance.Predicate(pred).Sig
	//
	if len(items)-1 != len(sig) {
		return PredApp{}, false, fmt.Errorf("predicate %s applied to %d arguments, expected %d",
			name, len(items)-1, len(sig))
	}
	//
	args := make([]term.Term, len(sig))
	//
	for i, item := range items[1:] {
		arg, err := p.parseTerm(item, env)
		if err != nil {
			return PredApp{}, false, err
		}
		//
		args[i] = arg
	}
	//
	return NewPredApp(pred, args...), true, nil
}

func (p *instanceParser) parseTerm(s sexp, env map[string]term.Var) (term.Term, error) {
	switch s := s.(type) {
	case symbol:
		switch s {
		case "true":
			return term.Bool(true), nil
		case "false":
			return term.Bool(false), nil
		}
		//
		if v, ok := env[string(s)]; ok {
			return v, nil
		}
		//
		if val, err := strconv.ParseInt(string(s), 10, 64); err == nil {
			return term.Int(val), nil
		}
		//
		return nil, fmt.Errorf("unknown symbol %s", s)
	case list:
		return p.parseTermApp(s, env)
	default:
		return nil, fmt.Errorf("malformed term %s", render(s))
	}
}

func (p *instanceParser) parseTermApp(items list, env map[string]term.Var) (term.Term, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("malformed term ()")
	}
	//
	op, ok := items[0].(symbol)
	if !ok {
		return nil, fmt.Errorf("malformed operator %s", render(items[0]))
	}
	//
	args := make([]term.Term, len(items)-1)
	//
	for i, item := range items[1:] {
		arg, err := p.parseTerm(item, env)
		if err != nil {
			return nil, err
		}
		//
		args[i] = arg
	}
	//
	switch op {
	case "and":
		return term.And(args...), nil
	case "or":
		return term.Or(args...), nil
	case "not":
		if len(args) != 1 {
			return nil, fmt.Errorf("not expects one argument")
		}
		//
		return term.Neg(args[0]), nil
	}
	//
	if len(args) != 2 {
		return nil, fmt.Errorf("operator %s expects two arguments", op)
	}
	//
	switch op {
	case "+":
		return term.Add(args[0], args[1]), nil
	case "-":
		return term.Sub(args[0], args[1]), nil
	case "*":
		return term.Mul(args[0], args[1]), nil
	case "=":
		return term.Eq(args[0], args[1]), nil
	case "<":
		return term.Lt(args[0], args[1]), nil
	case "<=":
		return term.Leq(args[0], args[1]), nil
	case ">":
		return term.Gt(args[0], args[1]), nil
	case ">=":
		return term.Geq(args[0], args[1]), nil
	default:
		return nil, fmt.Errorf("unknown operator %s", op)
	}
}

func parseSort(s sexp) (term.Sort, error) {
	switch s {
	case symbol("Int"):
		return term.INT, nil
	case symbol("Bool"):
		return term.BOOL, nil
	default:
		return term.INT, fmt.Errorf("unknown sort %s", render(s))
	}
}

func render(s sexp) string {
	switch s := s.(type) {
	case symbol:
		return string(s)
	case list:
		str := "("
		//
		for i, element := range s {
			if i != 0 {
				str += " "
			}
			//
			str += render(element)
		}
		//
		return str + ")"
	default:
		return "?"
	}
}
