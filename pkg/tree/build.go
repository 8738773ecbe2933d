package tree

import (
	"math"
	"slices"
	"strconv"

	"github.com/google/uuid"

	errs "github.com/matzehuels/hierview/pkg/errors"
)

const (
	// NoDepthLimit disables Options.MaxDepth. Construction is still bounded
	// by HardDepthLimit.
	NoDepthLimit = -1

	// HardDepthLimit is the deepest nesting accepted from any input. Deeper
	// inputs are rejected so malformed or cyclic providers cannot recurse
	// without bound.
	HardDepthLimit = 256

	// ArtificialRootID is the id of the synthetic root that wraps multiple
	// top-level nodes.
	ArtificialRootID = "__root__"
)

// stampSpace namespaces the deterministic stamp ids.
var stampSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("hierview:stamp"))

// Options controls tree construction.
type Options struct {
	// MaxDepth limits the number of levels built. 0 yields no tree;
	// NoDepthLimit builds everything up to HardDepthLimit.
	MaxDepth int

	// Hidden drops matching specs and their subtrees. Nil hides nothing.
	Hidden func(Spec) bool

	// Disclosure decides which nodes expand their children. Nil expands all.
	Disclosure Disclosure
}

// HideCategories returns a Hidden predicate matching specs that carry any of
// the given categories. A spec without categories is treated as belonging to
// the category named by its id.
func HideCategories(categories ...string) func(Spec) bool {
	if len(categories) == 0 {
		return nil
	}
	hidden := NewMapKeySet(categories...)
	return func(s Spec) bool {
		if len(s.Categories) == 0 {
			return hidden.Has(s.key())
		}
		for _, c := range s.Categories {
			if hidden.Has(c) {
				return true
			}
		}
		return false
	}
}

// Build constructs a tree from nested specs. It returns (nil, nil) when the
// input is empty, everything is hidden, or opts.MaxDepth is 0.
//
// The artificial root is added when two or more top-level nodes remain after
// hiding, so hiding all but one top-level input makes that input the root.
func Build(specs []Spec, opts Options) (*Tree, error) {
	return BuildFromProvider(NewSpecProvider(specs), opts)
}

// BuildFromProvider constructs a tree by walking a DataProvider depth-first.
func BuildFromProvider(p DataProvider, opts Options) (*Tree, error) {
	if p == nil || p.IsEmpty() || opts.MaxDepth == 0 {
		return nil, nil
	}

	b := &builder{opts: opts}
	tops, err := b.level(p, 0, "")
	if err != nil {
		return nil, err
	}
	if len(tops) == 0 {
		return nil, nil
	}

	root := tops[0]
	if len(tops) > 1 {
		root = &Node{
			ID:             ArtificialRootID,
			StampID:        uuid.NewSHA1(stampSpace, []byte(ArtificialRootID)),
			Children:       tops,
			Disclosed:      true,
			Expandable:     true,
			ArtificialRoot: true,
		}
		for _, n := range tops {
			n.Parent = root
			root.Size += n.PositiveSize()
		}
	}
	return newTree(root), nil
}

type builder struct {
	opts Options
}

// level builds the visible nodes of one provider level.
func (b *builder) level(p DataProvider, depth int, parentPath string) ([]*Node, error) {
	if depth >= HardDepthLimit {
		return nil, errs.New(errs.ErrCodeDepthExceeded, "tree nesting exceeds %d levels", HardDepthLimit)
	}

	rows := p.Rows()
	nodes := make([]*Node, 0, len(rows))
	for row, s := range rows {
		if b.opts.Hidden != nil && b.opts.Hidden(s) {
			continue
		}

		index := len(nodes)
		id := s.key()
		if id == "" {
			id = parentPath + "#" + strconv.Itoa(index)
		}
		path := parentPath + "/" + id

		n := &Node{
			ID:         id,
			StampID:    uuid.NewSHA1(stampSpace, []byte(path)),
			Index:      index,
			Size:       s.Value,
			Color:      s.Color,
			Label:      s.Label,
			Categories: slices.Clone(s.Categories),
			RadiusUnit: s.RadiusUnit,
			Disclosed:  b.disclosed(s, id),
		}

		child := childProvider(p, row, s.key())
		n.Expandable = child != nil && !child.IsEmpty()
		if n.Expandable && n.Disclosed && b.budget(depth) > 1 {
			kids, err := b.level(child, depth+1, path)
			if err != nil {
				return nil, err
			}
			for _, k := range kids {
				k.Parent = n
			}
			n.Children = kids
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// siblingID makes key unique among the siblings built so far. Rows without
// an id or label are named after their path and position; a repeated key
// gets its position appended.
func siblingID(key, parentPath string, index int, seen map[string]bool) string {
	id := key
	if id == "" {
		id = parentPath + "#" + strconv.Itoa(index)
	} else if seen[id] {
		id = key + "#" + strconv.Itoa(index)
	}
	for n := 1; seen[id]; n++ {
		id = key + "#" + strconv.Itoa(index) + "." + strconv.Itoa(n)
	}
	return id
}

// childProvider resolves the children of rows[row], by position when the
// provider supports it.
func childProvider(p DataProvider, row int, key string) DataProvider {
	if rp, ok := p.(RowProvider); ok {
		return rp.ChildDataProviderAt(row)
	}
	return p.ChildDataProvider(key)
}

// budget returns the number of levels that may still be built at depth.
func (b *builder) budget(depth int) int {
	if b.opts.MaxDepth < 0 {
		return math.MaxInt
	}
	return b.opts.MaxDepth - depth
}

func (b *builder) disclosed(s Spec, id string) bool {
	if s.Disclosed != nil {
		return *s.Disclosed
	}
	if b.opts.Disclosure == nil {
		return true
	}
	return b.opts.Disclosure.IsDisclosed(id)
}
