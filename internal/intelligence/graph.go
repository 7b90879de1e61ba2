package intelligence

import "fmt"

// NodeType classifies graph nodes.
type NodeType string

const (
	NodePerson     NodeType = "person"
	NodeTask       NodeType = "task"
	NodeTruth      NodeType = "truth"
	NodeDependency NodeType = "dependency"
)

// EdgeType classifies graph edges.
type EdgeType string

const (
	EdgeNotifiedAbout EdgeType = "notified_about"
	EdgeBlockedBy     EdgeType = "blocked_by"
	EdgeContext       EdgeType = "context"
)

type Node struct {
	ID   string   `json:"id"`
	Type NodeType `json:"type"`
}

type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
}

// Graph is the relationship view of one update. It is rebuilt per update and
// never persisted.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

type graphBuilder struct {
	g     Graph
	index map[string]struct{}
}

// node adds id unless a node with the same id exists; the first type wins.
func (b *graphBuilder) node(id string, typ NodeType) {
	if _, ok := b.index[id]; ok {
		return
	}
	b.index[id] = struct{}{}
	b.g.Nodes = append(b.g.Nodes, Node{ID: id, Type: typ})
}

func (b *graphBuilder) edge(src, dst string, typ EdgeType) {
	b.g.Edges = append(b.g.Edges, Edge{Source: src, Target: dst, Type: typ})
}

// BuildGraph links recipients, tasks, dependencies and truths of one update.
// Node ids are content strings and are deduplicated; edges are not, so tasks
// sharing a label still fan out once per task.
func BuildGraph(tasks []Task, routing []string, truths []Truth) Graph {
	b := &graphBuilder{
		g:     Graph{Nodes: []Node{}, Edges: []Edge{}},
		index: map[string]struct{}{},
	}

	for _, p := range routing {
		b.node(p, NodePerson)
	}

	for _, t := range tasks {
		label := taskNodeID(t)
		b.node(label, NodeTask)
		for _, p := range routing {
			b.edge(p, label, EdgeNotifiedAbout)
		}
		if t.Dependency != nil && *t.Dependency != "" {
			dep := "Dependency: " + *t.Dependency
			b.node(dep, NodeDependency)
			b.edge(label, dep, EdgeBlockedBy)
		}
	}

	for _, tr := range truths {
		id := fmt.Sprintf("%s = %s", tr.Key, tr.Value)
		b.node(id, NodeTruth)
		for _, t := range tasks {
			b.edge(id, taskNodeID(t), EdgeContext)
		}
	}

	return b.g
}

func taskNodeID(t Task) string {
	if t.Label == "" {
		return "Task"
	}
	return t.Label
}
