package markov

import "sort"

// ConnectedSets partitions the active states of the model into connected
// components and returns them as sets of root symbols.
//
// The vertex set consists of every state with a nonzero row or column in
// the count matrix; an edge i->j exists iff C[i][j] > opts.Threshold.
// With opts.Directed, components are strongly connected components of
// that relation (Tarjan); otherwise they are connected components of the
// symmetrized relation (an edge exists if either direction passes the
// threshold).
//
// Output order is deterministic: components sorted by descending size,
// ties broken by their smallest contained symbol ascending; symbols
// within a component ascending. States that were visited but have no
// edge above the threshold appear as singleton components.
//
// Time:   O(V + E) over the induced adjacency, plus sorting.
// Memory: O(V + E).
func (m *TransitionCountModel) ConnectedSets(opts ConnectivityOptions) [][]int {
	comps := m.connectedStates(opts)
	sets := make([][]int, len(comps))
	for i, comp := range comps {
		set := make([]int, len(comp))
		for j, s := range comp {
			set[j] = m.symbols[s]
		}
		sets[i] = set
	}

	return sets
}

// connectedStates computes the connected components over local state
// indices, sorted per the ConnectedSets contract. Symbol order and local
// state order agree up to the monotone symbol mapping only for root
// models; the sort below is therefore done on symbols.
func (m *TransitionCountModel) connectedStates(opts ConnectivityOptions) [][]int {
	vertices := m.ActiveStates()
	if len(vertices) == 0 {
		return nil
	}

	adj := m.adjacency(vertices, opts.Threshold, !opts.Directed)

	var comps [][]int
	if opts.Directed {
		comps = stronglyConnected(vertices, adj)
	} else {
		comps = weaklyConnected(vertices, adj)
	}

	for _, comp := range comps {
		sort.Slice(comp, func(a, b int) bool { return m.symbols[comp[a]] < m.symbols[comp[b]] })
	}
	sort.SliceStable(comps, func(a, b int) bool {
		if len(comps[a]) != len(comps[b]) {
			return len(comps[a]) > len(comps[b])
		}

		return m.symbols[comps[a][0]] < m.symbols[comps[b][0]]
	})

	return comps
}

// adjacency builds threshold-induced adjacency lists over the given
// vertices. With symmetrize, an edge is recorded in both directions when
// either direction passes the threshold.
func (m *TransitionCountModel) adjacency(vertices []int, threshold float64, symmetrize bool) map[int][]int {
	adj := make(map[int][]int, len(vertices))
	for _, i := range vertices {
		for _, j := range vertices {
			forward := m.counts.At(i, j) > threshold
			backward := symmetrize && m.counts.At(j, i) > threshold
			if forward || backward {
				adj[i] = append(adj[i], j)
			}
		}
	}

	return adj
}

// weaklyConnected collects components of a symmetric adjacency relation
// via breadth-first search over seen flags.
func weaklyConnected(vertices []int, adj map[int][]int) [][]int {
	seen := make(map[int]bool, len(vertices))
	var comps [][]int

	for _, v := range vertices {
		if seen[v] {
			continue
		}
		queue := []int{v}
		seen[v] = true
		var comp []int

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			comp = append(comp, u)
			for _, w := range adj[u] {
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
		}
		comps = append(comps, comp)
	}

	return comps
}

// sccWalker carries the bookkeeping of Tarjan's strongly-connected-
// components algorithm, run iteratively to stay safe on long chains.
type sccWalker struct {
	adj     map[int][]int
	index   map[int]int
	lowlink map[int]int
	onStack map[int]bool
	stack   []int
	next    int
	comps   [][]int
}

// stronglyConnected computes strongly connected components of a directed
// adjacency relation (Tarjan, iterative).
func stronglyConnected(vertices []int, adj map[int][]int) [][]int {
	w := &sccWalker{
		adj:     adj,
		index:   make(map[int]int, len(vertices)),
		lowlink: make(map[int]int, len(vertices)),
		onStack: make(map[int]bool, len(vertices)),
	}
	for _, v := range vertices {
		if _, visited := w.index[v]; !visited {
			w.visit(v)
		}
	}

	return w.comps
}

// sccFrame is one explicit-stack frame of the iterative Tarjan walk.
type sccFrame struct {
	v  int // vertex under exploration
	ni int // next neighbor index to consider
}

// visit explores the depth-first tree rooted at v with an explicit
// frame stack, assigning indices and lowlinks and popping completed
// components off the vertex stack.
func (w *sccWalker) visit(root int) {
	frames := []sccFrame{{v: root}}
	w.open(root)

	for len(frames) > 0 {
		f := &frames[len(frames)-1]
		neighbors := w.adj[f.v]

		advanced := false
		for f.ni < len(neighbors) {
			u := neighbors[f.ni]
			f.ni++
			if _, visited := w.index[u]; !visited {
				w.open(u)
				frames = append(frames, sccFrame{v: u})
				advanced = true

				break
			}
			if w.onStack[u] && w.index[u] < w.lowlink[f.v] {
				w.lowlink[f.v] = w.index[u]
			}
		}
		if advanced {
			continue
		}

		// All neighbors done: close the frame.
		v := f.v
		frames = frames[:len(frames)-1]
		if len(frames) > 0 {
			parent := frames[len(frames)-1].v
			if w.lowlink[v] < w.lowlink[parent] {
				w.lowlink[parent] = w.lowlink[v]
			}
		}
		if w.lowlink[v] == w.index[v] {
			var comp []int
			for {
				u := w.stack[len(w.stack)-1]
				w.stack = w.stack[:len(w.stack)-1]
				w.onStack[u] = false
				comp = append(comp, u)
				if u == v {
					break
				}
			}
			w.comps = append(w.comps, comp)
		}
	}
}

// open assigns a fresh index/lowlink to v and pushes it on the vertex stack.
func (w *sccWalker) open(v int) {
	w.index[v] = w.next
	w.lowlink[v] = w.next
	w.next++
	w.stack = append(w.stack, v)
	w.onStack[v] = true
}
