package convert

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/owlnet/pkg/errors"
	"github.com/matzehuels/owlnet/pkg/network"
	"github.com/matzehuels/owlnet/pkg/owl"
	"github.com/matzehuels/owlnet/pkg/terms"
)

// MaxParents bounds the parent count of a node. Its table has 2^k rows, so a
// node above the bound is rejected instead of generated.
const MaxParents = 16

// Options configures a conversion.
type Options struct {
	// Terms lists the identifiers to ignore and remove and names the states.
	// The zero value ignores and removes nothing and uses Yes/No.
	Terms terms.Terms

	// Logger receives skip notices (info) and edge decisions (debug).
	// Nil discards everything.
	Logger *log.Logger
}

// conversion holds every working structure of one Convert call. Nothing in
// it outlives the call or is shared between calls.
type conversion struct {
	onto   *owl.Element
	log    *log.Logger
	ignore terms.Matcher
	remove terms.Matcher
	states [2]string

	labels      Labels
	tree        *Tree
	negations   map[string][]string
	unnecessary map[string]bool
	disjoints   [][]string

	nodes []*network.Node
	index map[string]int
}

func newConversion(doc *owl.Element, opts Options) (*conversion, error) {
	onto := doc.First("Ontology")
	if onto == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "file is not an ontology")
	}
	if err := opts.Terms.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	c := &conversion{
		onto:        onto,
		log:         logger,
		ignore:      opts.Terms.IgnoreMatcher(),
		remove:      opts.Terms.RemoveMatcher(),
		states:      opts.Terms.StatePair(),
		tree:        NewTree(),
		negations:   make(map[string][]string),
		unnecessary: make(map[string]bool),
		index:       make(map[string]int),
	}
	c.labels = ReadLabels(onto)
	return c, nil
}

// Convert turns a decoded ontology document into a Bayesian network.
//
// doc is the document element returned by [owl.Decode]; its "Ontology" child
// is the ontology. The stages run in a fixed order: label resolution, linking
// tree construction, normalization, remove-list deletion and node
// extraction, disjoint resolution, the cycle gate, and finally CPT and layout
// generation.
//
// Every failure is fatal and returns a nil network:
//   - [errors.ErrCodeMalformedInput]: doc has no Ontology element
//   - [errors.ErrCodeMissingDefaultName]: no Prefix with an empty name
//   - [errors.ErrCodeEmptyResult]: no node survived extraction
//   - [errors.ErrCodeCircularStructure]: a node is its own ancestor
//   - [errors.ErrCodeTooManyParents]: a node has more than [MaxParents] parents
//
// Convert performs no I/O other than logging and is safe to call from
// several goroutines at once.
func Convert(doc *owl.Element, opts Options) (*network.Network, error) {
	c, err := newConversion(doc, opts)
	if err != nil {
		return nil, err
	}

	name, err := c.networkName()
	if err != nil {
		return nil, err
	}

	if err := c.prepare(); err != nil {
		return nil, err
	}
	if err := c.checkCycles(); err != nil {
		return nil, err
	}
	if err := c.checkParents(); err != nil {
		return nil, err
	}

	nodes := make([]network.Node, len(c.nodes))
	for i, n := range c.nodes {
		nodes[i] = *n
	}
	return network.New(name, nodes, c.states), nil
}

// checkParents fails on the first node whose table would exceed MaxParents.
func (c *conversion) checkParents() error {
	for _, n := range c.nodes {
		if k := len(n.Parents); k > MaxParents {
			return errors.New(errors.ErrCodeTooManyParents,
				"%q has %d parents; at most %d fit in a probability table", n.ID, k, MaxParents)
		}
	}
	return nil
}

// prepare runs every stage up to and including disjoint resolution.
func (c *conversion) prepare() error {
	c.buildTree()
	c.normalize()
	c.removeUnnecessary()
	c.extractNodes()
	if len(c.nodes) == 0 {
		return errors.New(errors.ErrCodeEmptyResult, "no classes were found in this file")
	}
	c.readDisjoints()
	c.applyDisjoints()
	return nil
}

// networkName derives the network name from the last path segment of the
// default (empty-named) prefix IRI.
func (c *conversion) networkName() (string, error) {
	for _, p := range c.onto.Children("Prefix") {
		if !p.HasAttr("name") || p.Attr("name") != "" {
			continue
		}
		iri, ok := c.labels.Resolve(p)
		if !ok {
			break
		}
		segments := strings.Split(iri, "/")
		if name := NormalizeID(segments[len(segments)-1]); name != "" {
			return name, nil
		}
		break
	}
	return "", errors.New(errors.ErrCodeMissingDefaultName, `no Prefix with name="" and an IRI to name the network`)
}

func (c *conversion) node(id string) *network.Node {
	i, ok := c.index[id]
	if !ok {
		return nil
	}
	return c.nodes[i]
}
