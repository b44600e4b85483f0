package pipeline

// Graph is the step dependency graph. An edge exists from step A to step B
// when B consumes a slot that A produces. Slots are write-once, so the graph
// is acyclic by construction.
type Graph struct {
	Nodes []string
	Edges []Edge
}

type Edge struct {
	From string
	To   string
	Slot string
}

func buildGraph(p *Pipeline) (*Graph, error) {
	graph := &Graph{}

	producers := make(map[string]string)
	for _, step := range p.Steps {
		graph.Nodes = append(graph.Nodes, step.Name)
		for _, output := range step.Outputs {
			if existing, ok := producers[output.Slot]; ok {
				return nil, NewConfigurationError(p.Name, "slot '%s' is produced by both '%s' and '%s'", output.Slot, existing, step.Name)
			}
			producers[output.Slot] = step.Name
		}
	}

	for _, step := range p.Steps {
		for _, binding := range p.bindings[step.Name] {
			if binding.Kind != BindSlot {
				continue
			}
			producer, ok := producers[binding.Slot]
			if !ok {
				return nil, NewConfigurationError(p.Name, "step '%s' consumes slot '%s' which no step produces", step.Name, binding.Slot)
			}
			if producer == step.Name {
				return nil, NewConfigurationError(p.Name, "step '%s' consumes its own slot '%s'", step.Name, binding.Slot)
			}
			graph.Edges = append(graph.Edges, Edge{From: producer, To: step.Name, Slot: binding.Slot})
		}
	}

	return graph, nil
}
