package ast

import "fmt"

// Traverse the [Node] in depth-first order.
// f is called for each node.
// If f returns an error, f also must return the original argument n.
// Traverse applies f to each child of n before n itself.
func Traverse(n Node, f func(Node, error) (Node, error)) (Node, error) {
	n, err := n.Plate(nil, func(n Node, err error) (Node, error) {
		child, childErr := Traverse(n, f)
		if err == nil {
			err = childErr
		}
		return child, err
	})
	return f(n, err)
}

func Children(n Node) []Node {
	var children []Node
	_, err := n.Plate(nil, func(n Node, _ error) (Node, error) {
		children = append(children, n)
		return n, nil
	})
	if err != nil {
		panic(fmt.Errorf("unexpected error: %w", err))
	}
	return children
}

func Universe(n Node) []Node {
	var nodes []Node
	_, err := Traverse(n, func(n Node, _ error) (Node, error) {
		nodes = append(nodes, n)
		return n, nil
	})
	if err != nil {
		panic(fmt.Errorf("unexpected error: %w", err))
	}
	return nodes
}

// SetFilename stamps name onto the span of n and of every node below it.
func SetFilename(n Node, name string) {
	for _, node := range Universe(n) {
		node.setFilename(name)
	}
}
