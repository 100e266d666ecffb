package component

import (
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type stub string

func (s stub) Name() string       { return string(s) }
func (s stub) Routes() chi.Router { return chi.NewRouter() }

func TestRegistrySortedAndReplacing(t *testing.T) {
	var reg Registry
	reg.Register(stub("newsletter"))
	reg.Register(stub("jurnal"))
	reg.Register(stub("membrii"))
	reg.Register(stub("jurnal"))

	var names []string
	for _, c := range reg.All() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"jurnal", "membrii", "newsletter"}, names)
}
