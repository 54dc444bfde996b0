package network

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON encodes a network as indented JSON and writes it to w.
// The output can be re-read with [ReadJSON].
func WriteJSON(n *Network, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a network to a JSON file at path.
func ExportJSON(n *Network, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(n, f)
}

// Marshal encodes a network as compact JSON.
func Marshal(n *Network) ([]byte, error) {
	return json.Marshal(n)
}

// ReadJSON decodes a network from r.
//
// ReadJSON returns an error if the JSON is malformed, if a node id is empty
// or repeated, or if a parent references a node that is not in the network.
func ReadJSON(r io.Reader) (*Network, error) {
	var n Network
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := n.validateRefs(); err != nil {
		return nil, err
	}
	return &n, nil
}

// Unmarshal decodes a network produced by [Marshal] or [WriteJSON].
func Unmarshal(data []byte) (*Network, error) {
	var n Network
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := n.validateRefs(); err != nil {
		return nil, err
	}
	return &n, nil
}

// ImportJSON reads a network from the JSON file at path.
func ImportJSON(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func (n *Network) validateRefs() error {
	ids := make(map[string]bool, len(n.Nodes))
	for _, node := range n.Nodes {
		if node.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if ids[node.ID] {
			return fmt.Errorf("node %s: duplicate id", node.ID)
		}
		ids[node.ID] = true
	}
	for _, node := range n.Nodes {
		for _, p := range node.Parents {
			if !ids[p] {
				return fmt.Errorf("node %s: unknown parent %s", node.ID, p)
			}
		}
	}
	return nil
}
