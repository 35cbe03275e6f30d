package learner

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nkatzz/oledgo/internal/logic"
)

// rawAtom is the on-disk shape of a single ground literal: a predicate
// symbol applied to constant arguments. Negation and variables have no
// place in an example stream — every fact and query atom is ground.
type rawAtom struct {
	Predicate string        `yaml:"predicate"`
	Args      []interface{} `yaml:"args"`
}

func (a rawAtom) literal() *logic.Literal {
	args := make([]*logic.Term, len(a.Args))
	for i, v := range a.Args {
		args[i] = logic.NewConstant(v)
	}
	return logic.NewLiteral(a.Predicate, args...)
}

// rawExample is the on-disk shape of one Example.
type rawExample struct {
	ID          string    `yaml:"id"`
	AxiomModule string    `yaml:"axiom_module"`
	Facts       []rawAtom `yaml:"facts"`
	QueryAtoms  []rawAtom `yaml:"query_atoms"`
}

// LoadExamples reads a YAML example stream from path: a top-level list of
// examples, each a set of ground facts and the ground query atoms the
// learner is expected to explain. There is no textual clause/term parser
// in this repository (parsing is left to an injected Parser); an example
// stream is already in this structured, ground-only shape.
func LoadExamples(path string) ([]*Example, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "learner: reading example stream %s", path)
	}

	var decoded []rawExample
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.Wrapf(err, "learner: parsing example stream %s", path)
	}

	examples := make([]*Example, len(decoded))
	for i, re := range decoded {
		facts := make([]*logic.Literal, len(re.Facts))
		for j, f := range re.Facts {
			facts[j] = f.literal()
		}
		query := make([]*logic.Literal, len(re.QueryAtoms))
		for j, q := range re.QueryAtoms {
			query[j] = q.literal()
		}
		examples[i] = &Example{
			ID:          re.ID,
			AxiomModule: re.AxiomModule,
			Facts:       facts,
			QueryAtoms:  query,
		}
	}
	return examples, nil
}
