package exfor

import (
	"github.com/exfortools/exfortab/pkg/config"
	"github.com/exfortools/exfortab/pkg/errors"
)

// CategoryField is the one-hot vocabulary for a single categorical
// record field. Each category produces an indicator column named
// "<prefix>_<category>"; the indicator is 1 when the record's field
// equals the category text exactly.
type CategoryField struct {
	Field      string   `yaml:"field" json:"field"`
	Prefix     string   `yaml:"prefix" json:"prefix"`
	Categories []string `yaml:"categories" json:"categories"`
}

// Vocabulary is the full set of categorical fields used by the encoder.
type Vocabulary struct {
	Fields []CategoryField `yaml:"fields" json:"fields"`
}

// LoadVocabulary reads a vocabulary override from a YAML file.
func LoadVocabulary(path string) (*Vocabulary, error) {
	var v Vocabulary
	if err := config.Load(path, &v); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "loading encoding vocabulary").
			WithDetail("path", path)
	}
	if len(v.Fields) == 0 {
		return nil, errors.New(errors.ErrorTypeConfig, "vocabulary file defines no fields").
			WithDetail("path", path)
	}
	return &v, nil
}

// DefaultVocabulary returns the built-in closed vocabulary for proton
// reaction libraries. The category lists are fixed: values outside them
// encode as all-zero indicators rather than new columns, which keeps the
// encoded column set identical across records.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{Fields: []CategoryField{
		{
			Field:      "projectile",
			Prefix:     "projectile",
			Categories: []string{"p"},
		},
		{
			Field:      "final_state",
			Prefix:     "final_state",
			Categories: []string{"+", "1", "2", "G", "M"},
		},
		{
			Field:      "frame",
			Prefix:     "frame",
			Categories: []string{"C", "L"},
		},
		{
			Field:  "quantity",
			Prefix: "qty",
			Categories: []string{
				"Angular distribution",
				"Cross section",
				"Cross section ratio",
				"Delayed nubar",
				"Differential cross section",
				"Fission yields",
				"Prompt nubar",
				"Resonance Parameters",
				"Total nubar",
			},
		},
		{
			Field:  "reaction",
			Prefix: "reaction",
			Categories: []string{
				"(n, )",
				"(p, el)", "(p, f)", "(p, x)",
				"(p, xa)", "(p, xd)", "(p, xg)", "(p, xh)",
				"(p, xn)", "(p, xp)", "(p, xt)",
				"(p,2a)", "(p,2n)", "(p,2n)g", "(p,2n)m",
				"(p,2na)", "(p,2np)",
				"(p,2p)", "(p,2p)g", "(p,2p)m",
				"(p,3a)", "(p,3n)", "(p,3n)g", "(p,3n)m", "(p,3n)n",
				"(p,3na)", "(p,3np)", "(p,3np)g", "(p,3np)m",
				"(p,4n)", "(p,4n)g", "(p,4n)m",
				"(p,a)", "(p,a)g", "(p,a)m",
				"(p,d)", "(p,d2a)", "(p,da)",
				"(p,f)", "(p,f)g", "(p,f)m", "(p,f)n",
				"(p,g)", "(p,g)g", "(p,g)m",
				"(p,h)", "(p,h)g",
				"(p,n')", "(p,n')g", "(p,n')m", "(p,n')n",
				"(p,n'_01)", "(p,n'_40)",
				"(p,n2a)", "(p,n2p)", "(p,n3a)",
				"(p,na)", "(p,na)g", "(p,na)m",
				"(p,non)",
				"(p,np)", "(p,np)g", "(p,np)m", "(p,npa)",
				"(p,p)", "(p,p)m",
				"(p,pa)", "(p,pd)", "(p,pt)",
				"(p,t)",
				"(p,xa)", "(p,xd)", "(p,xg)", "(p,xh)",
				"(p,xn)", "(p,xp)", "(p,xt)",
				"Exchange_scattering",
				"Inelastic_scattering",
				"ratio",
			},
		},
		{
			Field:      "target_state",
			Prefix:     "target_state",
			Categories: []string{"m"},
		},
	}}
}
