// Package validate implements the per-endpoint field rules that gate every
// mutating request. A rule set is applied to the raw submitted values and
// yields a field -> message map; an empty result means the request may
// proceed. Messages are looked up by "field.rule" with a generic fallback.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	decimalTwoRegex = regexp.MustCompile(`^\d+\.\d{2}$`)
	emailRegex      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type RuleSet struct {
	Rules    map[string][]string
	Messages map[string]string
}

// Apply checks every field of the rule set against the submitted values.
// Rules other than "required" are skipped for empty values, so a missing
// optional-format field reports only its absence.
func (rs RuleSet) Apply(values map[string]string) map[string]string {
	errs := make(map[string]string)
	for field, rules := range rs.Rules {
		value := strings.TrimSpace(values[field])
		for _, rule := range rules {
			if rule != "required" && value == "" {
				continue
			}
			if ruleOK(rule, value) {
				continue
			}
			errs[field] = rs.message(field, rule)
			break
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ruleOK(rule, value string) bool {
	name, arg, _ := strings.Cut(rule, ":")
	switch name {
	case "required":
		return value != ""
	case "decimal":
		// only decimal:2 is used; the argument is kept for symmetry with
		// the rule syntax
		return decimalTwoRegex.MatchString(value)
	case "date":
		_, err := time.Parse("2006-01-02", value)
		return err == nil
	case "email":
		return emailRegex.MatchString(value)
	case "min":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(value) >= n
	default:
		return false
	}
}

func (rs RuleSet) message(field, rule string) string {
	name, _, _ := strings.Cut(rule, ":")
	if msg, ok := rs.Messages[field+"."+name]; ok {
		return msg
	}
	return fmt.Sprintf("The %s field is invalid!", field)
}

var BillRules = RuleSet{
	Rules: map[string][]string{
		"name":       {"required"},
		"bill_value": {"required", "decimal:2"},
		"due_date":   {"required", "date"},
	},
	Messages: map[string]string{
		"name.required":       "The name field is required!",
		"bill_value.required": "The value field is required!",
		"bill_value.decimal":  "The value field must be a decimal with two digits!",
		"due_date.required":   "The due date field is required!",
		"due_date.date":       "The due date field must be a date!",
	},
}

var UserCreateRules = RuleSet{
	Rules: map[string][]string{
		"name":     {"required"},
		"email":    {"required", "email"},
		"password": {"required", "min:6"},
	},
	Messages: map[string]string{
		"name.required":     "The name field is required!",
		"email.required":    "The email field is required!",
		"email.email":       "The email field must be a valid email!",
		"password.required": "The password field is required!",
		"password.min":      "The password must be at least 6 characters!",
	},
}

var UserUpdateRules = RuleSet{
	Rules: map[string][]string{
		"name":  {"required"},
		"email": {"required", "email"},
	},
	Messages: map[string]string{
		"name.required":  "The name field is required!",
		"email.required": "The email field is required!",
		"email.email":    "The email field must be a valid email!",
	},
}

var PasswordRules = RuleSet{
	Rules: map[string][]string{
		"password": {"required", "min:6"},
	},
	Messages: map[string]string{
		"password.required": "The password field is required!",
		"password.min":      "The password must be at least 6 characters!",
	},
}
