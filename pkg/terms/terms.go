// Package terms holds the static identifier lists that steer a conversion.
//
// A [Terms] value names the classes to ignore (spliced out, their children
// inherit their parents) and the classes to remove (deleted together with
// their whole subtree), plus the names of the two node states. Terms are read
// from TOML:
//
//	ignore = ["owl:Thing", "Entidade"]
//	remove = ["Obsoleto"]
//	states = ["Sim", "Não"]
//
// Matching goes through [Fold], which lowercases and strips diacritics, so
// "Entidade", "ENTIDADE" and "Entidadé" all match the same entry.
package terms

import (
	_ "embed"
	"os"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/owlnet/pkg/errors"
)

//go:embed default.toml
var defaultTOML []byte

// DefaultStates are the state names used when a terms file sets none.
var DefaultStates = [2]string{"Yes", "No"}

// Terms is the static configuration of a conversion.
type Terms struct {
	Ignore []string `toml:"ignore" json:"ignore"`
	Remove []string `toml:"remove" json:"remove"`
	States []string `toml:"states" json:"states,omitempty"`
}

// Default returns the embedded default terms.
func Default() Terms {
	t, err := Parse(defaultTOML)
	if err != nil {
		panic("terms: embedded default.toml is invalid: " + err.Error())
	}
	return t
}

// Parse decodes TOML terms and validates them.
func Parse(data []byte) (Terms, error) {
	var t Terms
	md, err := toml.Decode(string(data), &t)
	if err != nil {
		return Terms{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse terms")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Terms{}, errors.New(errors.ErrCodeInvalidConfig, "unknown terms key %q", undecoded[0].String())
	}
	if err := t.Validate(); err != nil {
		return Terms{}, err
	}
	return t, nil
}

// Load reads terms from a TOML file.
func Load(path string) (Terms, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Terms{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read terms %s", path)
		}
		return Terms{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read terms %s", path)
	}
	return Parse(data)
}

// Validate checks the state names.
func (t Terms) Validate() error {
	switch len(t.States) {
	case 0:
		return nil
	case 2:
		if strings.TrimSpace(t.States[0]) == "" || strings.TrimSpace(t.States[1]) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "state names must not be empty")
		}
		if t.States[0] == t.States[1] {
			return errors.New(errors.ErrCodeInvalidConfig, "state names must differ, got %q twice", t.States[0])
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidConfig, "expected exactly 2 states, got %d", len(t.States))
}

// StatePair returns the configured states, or [DefaultStates].
func (t Terms) StatePair() [2]string {
	if len(t.States) != 2 {
		return DefaultStates
	}
	return [2]string{t.States[0], t.States[1]}
}

// IgnoreMatcher returns a matcher over the ignore list.
func (t Terms) IgnoreMatcher() Matcher { return NewMatcher(t.Ignore) }

// RemoveMatcher returns a matcher over the remove list.
func (t Terms) RemoveMatcher() Matcher { return NewMatcher(t.Remove) }

// Matcher tests identifiers against a folded list.
// The zero value matches nothing.
type Matcher struct {
	set map[string]struct{}
}

// NewMatcher folds every entry of list.
func NewMatcher(list []string) Matcher {
	m := Matcher{set: make(map[string]struct{}, len(list))}
	for _, s := range list {
		m.set[Fold(s)] = struct{}{}
	}
	return m
}

// Match reports whether the folded id is on the list.
func (m Matcher) Match(id string) bool {
	if len(m.set) == 0 {
		return false
	}
	_, ok := m.set[Fold(id)]
	return ok
}

// Len returns the number of distinct folded entries.
func (m Matcher) Len() int { return len(m.set) }

// Fold lowercases s and strips combining marks, so "Náusea" folds to "nausea".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
