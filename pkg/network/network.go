package network

import "slices"

// Version is the editor file format version written by this package.
const Version = 2

// Node is one binary variable of the network.
type Node struct {
	ID      string   `json:"id"`
	States  []string `json:"states"`
	Parents []string `json:"parents"`
	CPT     CPT      `json:"cpt"`
}

// HasParent reports whether id is a direct parent of n.
func (n *Node) HasParent(id string) bool {
	return slices.Contains(n.Parents, id)
}

// RemoveParent drops id from the parent list, keeping the order of the rest.
// It reports whether anything was removed.
func (n *Node) RemoveParent(id string) bool {
	before := len(n.Parents)
	n.Parents = slices.DeleteFunc(n.Parents, func(p string) bool { return p == id })
	return len(n.Parents) != before
}

// Info holds the network-level settings the editor reads.
type Info struct {
	Name                   string            `json:"name"`
	Width                  int               `json:"width"`
	Height                 int               `json:"height"`
	SelectedNodes          []string          `json:"selectedNodes"`
	Beliefs                map[string]string `json:"beliefs"`
	PropertiesPanelVisible bool              `json:"propertiesPanelVisible"`
}

// Network is a converted Bayesian network.
type Network struct {
	Version   int                 `json:"version"`
	Info      Info                `json:"network"`
	Nodes     []Node              `json:"nodes"`
	Positions map[string]Position `json:"positions"`
}

// New assembles a network from nodes in their final order. It generates the
// CPT of every node over states and lays the nodes out on the grid.
func New(name string, nodes []Node, states [2]string) *Network {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Node{
			ID:      n.ID,
			States:  []string{states[0], states[1]},
			Parents: slices.Clone(n.Parents),
			CPT:     GenerateCPT(n.Parents, states),
		}
		if out[i].Parents == nil {
			out[i].Parents = []string{}
		}
	}

	return &Network{
		Version: Version,
		Info: Info{
			Name:                   name,
			Width:                  Width,
			Height:                 Height(len(out)),
			SelectedNodes:          []string{},
			Beliefs:                map[string]string{},
			PropertiesPanelVisible: true,
		},
		Nodes:     out,
		Positions: Layout(out),
	}
}

// Node returns the node with the given id.
func (n *Network) Node(id string) (*Node, bool) {
	for i := range n.Nodes {
		if n.Nodes[i].ID == id {
			return &n.Nodes[i], true
		}
	}
	return nil, false
}

// IDs returns the node ids in network order.
func (n *Network) IDs() []string {
	ids := make([]string, len(n.Nodes))
	for i, node := range n.Nodes {
		ids[i] = node.ID
	}
	return ids
}

// EdgeCount returns the number of parent links.
func (n *Network) EdgeCount() int {
	count := 0
	for _, node := range n.Nodes {
		count += len(node.Parents)
	}
	return count
}
