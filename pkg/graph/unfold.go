package graph

import "slices"

// arc is one reading direction of an edge over oriented vertices.
type arc struct {
	from, to orientedVertex
}

// arcsOf expands an edge into its two reading directions. A self-mirrored
// arc (an edge whose mirror is itself) is listed once.
func arcsOf(e *Edge) []arc {
	a := arc{
		from: orientedVertex{node: e.From, reverse: e.FromStart},
		to:   orientedVertex{node: e.To, reverse: e.ToEnd},
	}
	m := arc{
		from: orientedVertex{node: e.To, reverse: !e.ToEnd},
		to:   orientedVertex{node: e.From, reverse: !e.FromStart},
	}
	if m == a {
		return []arc{a}
	}
	return []arc{a, m}
}

// Unfold builds a graph in which every kept node is read on a single strand,
// duplicating reverse-strand stretches so that sequence reachable through
// reversing edges becomes reachable in a forward walk. Reverse-strand copies
// are only created while within limit bases of the primary strand; crossings
// onto an existing copy are always connected.
//
// The returned translation maps each new node id to the original node and
// whether the copy reads its reverse complement.
//
// A reversing cycle unfolds into a directed cycle over both strand copies,
// so the result is not guaranteed acyclic.
func (g *Graph) Unfold(limit int) (*Graph, Translation) {
	var arcs []arc
	out := make(map[orientedVertex][]orientedVertex)
	und := make(map[orientedVertex][]orientedVertex)
	for _, e := range g.edgeOrder {
		for _, a := range arcsOf(e) {
			arcs = append(arcs, a)
			out[a.from] = append(out[a.from], a.to)
			und[a.from] = append(und[a.from], a.to)
			if a.to != a.from {
				und[a.to] = append(und[a.to], a.from)
			}
		}
	}

	// Primary strand: walk forward from each still-uncovered node in
	// ascending id order, fixing one orientation per node.
	instance := make(map[orientedVertex]bool)
	covered := make(map[ID]bool)
	var primary []orientedVertex
	ids := slices.Clone(g.nodeOrder)
	slices.Sort(ids)
	for _, id := range ids {
		if covered[id] {
			continue
		}
		seed := orientedVertex{node: id}
		instance[seed] = true
		covered[id] = true
		primary = append(primary, seed)
		queue := []orientedVertex{seed}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, v := range out[u] {
				if covered[v.node] {
					continue
				}
				instance[v] = true
				covered[v.node] = true
				primary = append(primary, v)
				queue = append(queue, v)
			}
		}
	}

	// Secondary strand: the flip of every primary vertex, admitted when
	// its distance from the primary strand fits the budget. Distance is
	// the sequence length walked on the secondary strand before entering
	// the vertex; it is 0 at a direct crossing from a primary vertex.
	dist := make(map[orientedVertex]int)
	for _, a := range arcs {
		if instance[a.from] && !instance[a.to] && covered[a.to.node] {
			dist[a.to] = 0
		}
		if instance[a.to] && !instance[a.from] && covered[a.from.node] {
			dist[a.from] = 0
		}
	}
	nodeLen := func(v orientedVertex) int { return g.nodes[v.node].Len() }
	for changed := true; changed; {
		changed = false
		for v, d := range dist {
			for _, w := range und[v] {
				if instance[w] {
					continue
				}
				next := d + nodeLen(v)
				if cur, ok := dist[w]; !ok || next < cur {
					dist[w] = next
					changed = true
				}
			}
		}
	}
	duplicate := make(map[orientedVertex]bool)
	for v, d := range dist {
		if d+nodeLen(v) <= limit {
			duplicate[v] = true
		}
	}

	// Materialize. Every kept vertex becomes a node carrying its oriented
	// sequence, so all result edges are plain end-to-start links.
	unfolded := New()
	trans := make(Translation)
	mat := make(map[orientedVertex]ID)
	emit := func(v orientedVertex) {
		seq, _ := g.SequenceOf(Handle{Node: v.node, Reverse: v.reverse})
		n := unfolded.CreateNode(seq)
		mat[v] = n.ID
		trans[n.ID] = OrigNode{ID: v.node, Flipped: v.reverse}
	}
	for _, v := range primary {
		emit(v)
	}
	dups := make([]orientedVertex, 0, len(duplicate))
	for v := range duplicate {
		dups = append(dups, v)
	}
	slices.SortFunc(dups, func(a, b orientedVertex) int {
		if a.node != b.node {
			return int(a.node - b.node)
		}
		if a.reverse == b.reverse {
			return 0
		}
		if b.reverse {
			return -1
		}
		return 1
	})
	for _, v := range dups {
		emit(v)
	}

	for _, a := range arcs {
		fromID, ok := mat[a.from]
		if !ok {
			continue
		}
		toID, ok := mat[a.to]
		if !ok {
			continue
		}
		if duplicate[a.from] && duplicate[a.to] {
			// A link fully on the secondary strand must itself fit the
			// budget.
			d := min(dist[a.from], dist[a.to])
			if d+nodeLen(a.from)+nodeLen(a.to) > limit {
				continue
			}
		}
		// Each oriented arc is enumerated once, so the edge cannot exist.
		_, _ = unfolded.CreateEdge(Side(fromID, true), Side(toID, false), 0)
	}
	return unfolded, trans
}
