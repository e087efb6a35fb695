// Package neo4j writes dependency graphs into a Neo4j database.
//
// Every package becomes a (:Package {name}) node and every dependency a
// [:DEPENDS_ON] relationship. Writes use MERGE, so exporting the same graph
// twice leaves one node per name and one relationship per pair; each export
// stamps the relationships it touches with a fresh run_id.
//
//	exp, err := neo4j.New(ctx, "bolt://localhost:7687", "neo4j", "secret")
//	if err != nil { ... }
//	defer exp.Close(ctx)
//	res, err := exp.Export(ctx, g)
package neo4j

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/matzehuels/apkgraph/pkg/graph"
)

const (
	indexCypher = "CREATE INDEX apk_package_name IF NOT EXISTS FOR (p:Package) ON (p.name)"

	nodesCypher = `UNWIND $batch AS row
MERGE (p:Package {name: row.name})
SET p.expanded = row.expanded`

	edgesCypher = `UNWIND $batch AS row
MERGE (a:Package {name: row.from})
MERGE (b:Package {name: row.to})
MERGE (a)-[r:DEPENDS_ON]->(b)
SET r.run_id = $run_id`
)

// Result summarizes one export.
type Result struct {
	RunID string
	Nodes int
	Edges int
}

// Exporter writes graphs through a Neo4j driver.
type Exporter struct {
	driver neo4j.DriverWithContext
}

// New connects to the database at uri and verifies connectivity.
func New(ctx context.Context, uri, user, password string) (*Exporter, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j connectivity: %w", err)
	}
	return &Exporter{driver: driver}, nil
}

// Close releases the driver.
func (e *Exporter) Close(ctx context.Context) error {
	return e.driver.Close(ctx)
}

// Export writes g in a single write transaction.
func (e *Exporter) Export(ctx context.Context, g *graph.Graph) (Result, error) {
	if _, err := neo4j.ExecuteQuery(ctx, e.driver, indexCypher, nil, neo4j.EagerResultTransformer); err != nil {
		return Result{}, fmt.Errorf("create index: %w", err)
	}

	res := Result{RunID: uuid.NewString()}
	stmts := statements(g, res.RunID)

	session := e.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, s := range stmts {
			if _, err := tx.Run(ctx, s.cypher, s.params); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("export graph: %w", err)
	}

	nl := g.NodeLink()
	res.Nodes, res.Edges = len(nl.Nodes), len(nl.Edges)
	return res, nil
}

type statement struct {
	cypher string
	params map[string]any
}

// statements returns the node batch followed by the edge batch. An empty
// edge list yields no edge statement.
func statements(g *graph.Graph, runID string) []statement {
	nl := g.NodeLink()

	nodes := make([]map[string]any, 0, len(nl.Nodes))
	for _, n := range nl.Nodes {
		nodes = append(nodes, map[string]any{"name": n.ID, "expanded": n.Expanded})
	}
	out := []statement{{cypher: nodesCypher, params: map[string]any{"batch": nodes}}}

	if len(nl.Edges) == 0 {
		return out
	}
	edges := make([]map[string]any, 0, len(nl.Edges))
	for _, e := range nl.Edges {
		edges = append(edges, map[string]any{"from": e.From, "to": e.To})
	}
	return append(out, statement{
		cypher: edgesCypher,
		params: map[string]any{"batch": edges, "run_id": runID},
	})
}
