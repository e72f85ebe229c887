package ast

import "fmt"

// SourceWrapped pairs a root expression with the text it was parsed from and
// a label for where that text lives. Every operation delegates to the root.
type SourceWrapped struct {
	AST      Expression
	Source   string
	Location string
}

// NewSourceWrapped returns a SourceWrapped.
func NewSourceWrapped(root Expression, source, location string) *SourceWrapped {
	return &SourceWrapped{AST: root, Source: source, Location: location}
}

func (s *SourceWrapped) Eval(scope any) (any, error) { return s.AST.Eval(scope) }

func (s *SourceWrapped) Assign(scope, value any) (any, error) { return s.AST.Assign(scope, value) }

func (s *SourceWrapped) IsAssignable() bool { return s.AST.IsAssignable() }

// Visit visits the root; the wrapper itself is never dispatched.
func (s *SourceWrapped) Visit(v Visitor) any { return s.AST.Visit(v) }

// String renders the diagnostic label used in error reports.
func (s *SourceWrapped) String() string {
	return fmt.Sprintf("%s in %s", s.Source, s.Location)
}

// TemplateBinding describes one attribute of a structural directive, as
// produced by the template parser. When KeyIsVar is set the attribute
// declares the local Name; otherwise it binds Expression.
type TemplateBinding struct {
	Key        string
	KeyIsVar   bool
	Name       string
	Expression *SourceWrapped
}

// NewVariableBinding declares name as a local of the directive frame. key is
// the directive attribute the declaration came from and is not bound.
func NewVariableBinding(key, name string) *TemplateBinding {
	return &TemplateBinding{Key: key, KeyIsVar: true, Name: name}
}

// NewExpressionBinding binds expr under key.
func NewExpressionBinding(key string, expr *SourceWrapped) *TemplateBinding {
	return &TemplateBinding{Key: key, Expression: expr}
}
