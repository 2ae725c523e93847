package caustic

import "sort"

// Compile runs the fixed-point compile scheduler of spec §4.5 over names
// (or every node, if names is nil). If needed is set, the candidate set
// is filtered to only nodes whose failure is currently non-nil. It
// returns the names that remain failed once no further progress is
// possible.
func (g *Grammar) Compile(names []string, needed bool) []string {
	candidates := names
	if candidates == nil {
		candidates = append([]string(nil), g.order...)
	}
	if needed {
		filtered := candidates[:0:0]
		for _, name := range candidates {
			if n, ok := g.nodes[name]; ok && n.Failure() != nil {
				filtered = append(filtered, name)
			}
		}
		candidates = filtered
	}

	remaining := make([]string, 0, len(candidates))
	for _, name := range candidates {
		if _, ok := g.nodes[name]; ok {
			remaining = append(remaining, name)
		}
	}

	successes := map[string]bool{}
	limit := g.cfg.scheduleLimit()
	for iter := 0; iter < limit; iter++ {
		sort.SliceStable(remaining, func(i, j int) bool {
			return g.nodes[remaining[i]].compileOrderHint() < g.nodes[remaining[j]].compileOrderHint()
		})

		grew := false
		var stillFailed []string
		for _, name := range remaining {
			node, ok := g.nodes[name]
			if !ok {
				continue
			}
			node.compile()
			if node.Failure() == nil {
				if !successes[name] {
					successes[name] = true
					grew = true
				}
				g.log.Debug().Str("node", name).Msg("compiled: ready")
			} else {
				node.setCompileOrderHint(node.compileOrderHint() + 1)
				stillFailed = append(stillFailed, name)
				g.log.Debug().Str("node", name).Err(node.Failure()).Msg("compiled: failed")
			}
		}
		remaining = stillFailed

		if !grew || len(remaining) == 0 {
			break
		}
	}

	return remaining
}
