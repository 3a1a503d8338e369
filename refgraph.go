package main

import (
	"errors"
	"io"
	"strconv"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

// ReferenceGraph builds the directed graph of #id references between
// entities. Each vertex is labelled with its entity kind. References to
// undefined entities are left out.
func ReferenceGraph(store *EntityStore) (graph.Graph[int, int], error) {
	g := graph.New(graph.IntHash, graph.Directed())
	for _, id := range store.IDs {
		def, _ := store.Text(id)
		label := "#" + strconv.Itoa(id)
		if kind := entityKind(def); kind != "" {
			label += " " + kind
		}
		if err := g.AddVertex(id, graph.VertexAttribute("label", label)); err != nil {
			return nil, err
		}
	}
	for _, id := range store.IDs {
		def, _ := store.Text(id)
		for _, ref := range references(def) {
			if _, ok := store.Text(ref); !ok {
				continue
			}
			err := g.AddEdge(id, ref)
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, err
			}
		}
	}
	return g, nil
}

// WriteReferenceDOT writes the reference graph of store in Graphviz DOT
// format.
func WriteReferenceDOT(w io.Writer, store *EntityStore) error {
	g, err := ReferenceGraph(store)
	if err != nil {
		return err
	}
	return draw.DOT(g, w)
}
