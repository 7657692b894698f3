package wm

import "slices"

// TransientGraph records "transient-for" relations between clients. It holds
// IDs only; it never keeps a client alive.
type TransientGraph struct {
	owner      map[ID]ID
	transients map[ID][]ID
}

func NewTransientGraph() *TransientGraph {
	return &TransientGraph{
		owner:      make(map[ID]ID),
		transients: make(map[ID][]ID),
	}
}

// Set makes client a transient of owner, replacing any previous owner. Self
// relations and cycles are refused.
func (g *TransientGraph) Set(client, owner ID) bool {
	if client == owner {
		return false
	}
	for o, ok := owner, true; ok; o, ok = g.owner[o] {
		if o == client {
			return false
		}
	}

	g.Clear(client)
	g.owner[client] = owner
	g.transients[owner] = append(g.transients[owner], client)
	return true
}

// Clear removes the relation of client to its owner.
func (g *TransientGraph) Clear(client ID) {
	owner, ok := g.owner[client]
	if !ok {
		return
	}
	delete(g.owner, client)

	list := slices.DeleteFunc(g.transients[owner], func(id ID) bool { return id == client })
	if len(list) == 0 {
		delete(g.transients, owner)
	} else {
		g.transients[owner] = list
	}
}

// Forget drops every relation involving id. It returns the transients that
// lost their owner.
func (g *TransientGraph) Forget(id ID) []ID {
	g.Clear(id)

	orphans := g.transients[id]
	delete(g.transients, id)
	for _, t := range orphans {
		delete(g.owner, t)
	}
	return orphans
}

func (g *TransientGraph) OwnerOf(client ID) (ID, bool) {
	owner, ok := g.owner[client]
	return owner, ok
}

// Transients returns a copy of the direct transients of owner, in the order
// they were added.
func (g *TransientGraph) Transients(owner ID) []ID {
	return slices.Clone(g.transients[owner])
}

// Descendants returns the transients of owner and, recursively, theirs.
func (g *TransientGraph) Descendants(owner ID) []ID {
	var out []ID
	queue := g.transients[owner]
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)
		queue = append(slices.Clone(queue), g.transients[id]...)
	}
	return out
}

func (g *TransientGraph) IsTransientOf(client, owner ID) bool {
	o, ok := g.owner[client]
	return ok && o == owner
}
