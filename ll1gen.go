// Package ll1gen is the root façade tying the analysis pipeline together:
// wrap the grammar's start symbol, run the nullable/FIRST/FOLLOW fixed
// points, build the LL(1) table, and hand back everything a caller needs
// to build a runtime.Driver. Grounded on the teacher's own top-level
// pattern of small packages wired together by a thin orchestrating layer
// (cow-lang-go's lang/runner, which sequences lexer -> parser -> eval the
// same way this sequences startwrap -> analysis -> table).
package ll1gen

import (
	"github.com/shadowCow/ll1gen/analysis"
	"github.com/shadowCow/ll1gen/ir"
	"github.com/shadowCow/ll1gen/runtime"
	"github.com/shadowCow/ll1gen/startwrap"
	"github.com/shadowCow/ll1gen/table"
)

// Generated holds every artifact produced while generating a grammar: the
// wrapped IR and the three analyses, plus the conflict-free table. A
// caller only needs NewParser to turn this into a working runtime.Driver,
// but the individual fields are exported for diagnostics and tooling that
// want to inspect the pipeline's intermediate state.
type Generated struct {
	Grammar  ir.Grammar
	Nullable *analysis.Nullable
	First    *analysis.First
	Follow   *analysis.Follow
	Table    *table.Table
}

// Generate runs the full analysis pipeline over a grammar: start-wrapping,
// nullable/FIRST/FOLLOW, and LL(1) table construction. It fails with the
// first error any stage returns — a malformed grammar, a missing or
// duplicated public start symbol, a reserved name collision, or an LL(1)
// conflict.
func Generate(g ir.Grammar) (*Generated, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	wrapped, err := startwrap.Wrap(g)
	if err != nil {
		return nil, err
	}

	nullable := analysis.ComputeNullable(wrapped)
	first := analysis.ComputeFirst(wrapped, nullable)
	follow := analysis.ComputeFollow(wrapped, nullable, first)

	tbl, err := table.Build(wrapped, nullable, first, follow)
	if err != nil {
		return nil, err
	}

	return &Generated{Grammar: wrapped, Nullable: nullable, First: first, Follow: follow, Table: tbl}, nil
}

// NewParser builds a runtime.Driver over the generated table, ready to run
// token streams through the registered reducers. reducers must cover
// every ProductionID the table can select, keyed the way table.Build
// assigns them — easiest obtained by walking Generated.Table.Cells().
func (gen *Generated) NewParser(reducers map[table.ProductionID]runtime.Reducer) *runtime.Driver {
	return runtime.NewDriver(gen.Grammar, gen.Table, gen.First, reducers)
}
