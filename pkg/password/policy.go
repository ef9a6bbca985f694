// Package password provides the replaceable strength policy used by signup
// shaped forms. A policy returns every violated rule in a stable order; an
// empty result means the candidate satisfies the policy.
package password

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Policy checks a candidate password.
type Policy interface {
	Check(candidate string) []string
}

// PolicyFunc adapts a function into a Policy.
type PolicyFunc func(candidate string) []string

// Check delegates to the underlying function.
func (fn PolicyFunc) Check(candidate string) []string {
	return fn(candidate)
}

// Rule is a single named requirement.
type Rule struct {
	Name    string
	Message string
	Test    func(candidate string) bool
}

// RulePolicy evaluates rules in declaration order.
type RulePolicy struct {
	rules []Rule
}

var _ Policy = (*RulePolicy)(nil)

// Messages overrides the default rule messages of the built-in policy.
type Messages struct {
	MinLength string
	Lowercase string
	Uppercase string
	Digit     string
	Symbol    string
}

const defaultMinLength = 8

// DefaultMessages returns the English messages used by DefaultPolicy. The
// MinLength message is a format string receiving the minimum length.
func DefaultMessages() Messages {
	return Messages{
		MinLength: "Password must be at least %d characters long",
		Lowercase: "Password must contain a lowercase letter",
		Uppercase: "Password must contain an uppercase letter",
		Digit:     "Password must contain a number",
		Symbol:    "Password must contain a special character",
	}
}

// Option configures NewPolicy.
type Option func(*config)

type config struct {
	minLength int
	messages  Messages
	extra     []Rule
}

// WithMinLength overrides the minimum length (default 8). Values below 1
// are ignored.
func WithMinLength(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.minLength = n
		}
	}
}

// WithMessages replaces the built-in messages; empty entries keep the
// default text.
func WithMessages(messages Messages) Option {
	return func(cfg *config) {
		if messages.MinLength != "" {
			cfg.messages.MinLength = messages.MinLength
		}
		if messages.Lowercase != "" {
			cfg.messages.Lowercase = messages.Lowercase
		}
		if messages.Uppercase != "" {
			cfg.messages.Uppercase = messages.Uppercase
		}
		if messages.Digit != "" {
			cfg.messages.Digit = messages.Digit
		}
		if messages.Symbol != "" {
			cfg.messages.Symbol = messages.Symbol
		}
	}
}

// WithRule appends a custom rule evaluated after the built-in ones.
func WithRule(rule Rule) Option {
	return func(cfg *config) {
		if rule.Test != nil {
			cfg.extra = append(cfg.extra, rule)
		}
	}
}

// DefaultPolicy requires 8 characters, a lowercase and an uppercase letter,
// a digit and a symbol.
func DefaultPolicy() *RulePolicy {
	return NewPolicy()
}

// NewPolicy builds the built-in rule set with the given overrides.
func NewPolicy(options ...Option) *RulePolicy {
	cfg := config{
		minLength: defaultMinLength,
		messages:  DefaultMessages(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	minLength := cfg.minLength
	rules := []Rule{
		{
			Name:    "minLength",
			Message: fmt.Sprintf(cfg.messages.MinLength, minLength),
			Test: func(candidate string) bool {
				return utf8.RuneCountInString(candidate) >= minLength
			},
		},
		{Name: "lowercase", Message: cfg.messages.Lowercase, Test: containsFunc(unicode.IsLower)},
		{Name: "uppercase", Message: cfg.messages.Uppercase, Test: containsFunc(unicode.IsUpper)},
		{Name: "digit", Message: cfg.messages.Digit, Test: containsFunc(unicode.IsDigit)},
		{Name: "symbol", Message: cfg.messages.Symbol, Test: containsFunc(isSymbol)},
	}
	rules = append(rules, cfg.extra...)
	return &RulePolicy{rules: rules}
}

// NewRulePolicy builds a policy from an explicit rule list.
func NewRulePolicy(rules ...Rule) *RulePolicy {
	out := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.Test != nil {
			out = append(out, rule)
		}
	}
	return &RulePolicy{rules: out}
}

// Rules returns the rules in evaluation order.
func (p *RulePolicy) Rules() []Rule {
	if p == nil {
		return nil
	}
	return append([]Rule(nil), p.rules...)
}

// Check returns the message of every failed rule, in rule order.
func (p *RulePolicy) Check(candidate string) []string {
	if p == nil {
		return nil
	}
	var violations []string
	for _, rule := range p.rules {
		if !rule.Test(candidate) {
			violations = append(violations, rule.Message)
		}
	}
	return violations
}

func containsFunc(match func(rune) bool) func(string) bool {
	return func(candidate string) bool {
		for _, r := range candidate {
			if match(r) {
				return true
			}
		}
		return false
	}
}

func isSymbol(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
