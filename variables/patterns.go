package variables

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

// Predefined definition families for the values that recur in routing
// templates: domains, URLs, paths, ports, percentages.

var domainPattern = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// Domain defines a string variable constrained to a DNS domain name.
func Domain(name string) Definition {
	return String(name).Validate(func(value any) error {
		s := value.(string)
		if !domainPattern.MatchString(s) {
			return fmt.Errorf("not a valid domain name: %q", s)
		}
		return nil
	})
}

// URL defines a string variable constrained to an absolute URL.
func URL(name string) Definition {
	return String(name).Validate(func(value any) error {
		s := value.(string)
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("not a valid URL: %q", s)
		}
		return nil
	})
}

// Email defines a string variable constrained to an email address.
func Email(name string) Definition {
	return String(name).Validate(func(value any) error {
		s := value.(string)
		if _, err := mail.ParseAddress(s); err != nil {
			return fmt.Errorf("not a valid email address: %q", s)
		}
		return nil
	})
}

// PathValue defines a string variable constrained to an absolute
// URL path.
func PathValue(name string) Definition {
	return String(name).Validate(func(value any) error {
		s := value.(string)
		if !strings.HasPrefix(s, "/") {
			return fmt.Errorf("path must start with '/': %q", s)
		}
		return nil
	})
}

// Pattern defines a string variable constrained by a regular
// expression. The pattern must compile; Pattern panics otherwise, so
// call it only with literal patterns at registry-setup time.
func Pattern(name, pattern string) Definition {
	re := regexp.MustCompile(pattern)
	return String(name).Validate(func(value any) error {
		s := value.(string)
		if !re.MatchString(s) {
			return fmt.Errorf("value %q does not match pattern %q", s, pattern)
		}
		return nil
	})
}

// Port defines a numeric variable constrained to a TCP/UDP port.
func Port(name string) Definition {
	return Number(name).Validate(func(value any) error {
		v, _ := numericValue(value)
		if v < 1 || v > 65535 || v != float64(int64(v)) {
			return fmt.Errorf("not a valid port: %v", value)
		}
		return nil
	})
}

// Positive defines a numeric variable that must be greater than zero.
func Positive(name string) Definition {
	return Number(name).Validate(func(value any) error {
		v, _ := numericValue(value)
		if v <= 0 {
			return fmt.Errorf("must be positive: %v", value)
		}
		return nil
	})
}

// NonNegative defines a numeric variable that must not be negative.
func NonNegative(name string) Definition {
	return Number(name).Validate(func(value any) error {
		v, _ := numericValue(value)
		if v < 0 {
			return fmt.Errorf("must not be negative: %v", value)
		}
		return nil
	})
}

// Percentage defines a numeric variable in the range [0, 100].
func Percentage(name string) Definition {
	return Number(name).Validate(func(value any) error {
		v, _ := numericValue(value)
		if v < 0 || v > 100 {
			return fmt.Errorf("must be between 0 and 100: %v", value)
		}
		return nil
	})
}
