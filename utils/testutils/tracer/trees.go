package tracer

import (
	"fmt"

	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/xlab/treeprint"
)

// SelectorTree returns the AST of `list`.
func SelectorTree(list selector.SelectorList) treeprint.Tree {
	root := treeprint.NewWithRoot(list.String())
	for _, sel := range list {
		addSelector(root, sel)
	}
	return root
}

func addSelector(tree treeprint.Tree, sel selector.Selector) {
	switch sel := sel.(type) {
	case selector.Compound:
		addCompound(tree, sel)
	case selector.Combined:
		branch := tree.AddMetaBranch("combined", fmt.Sprintf("%q", sel.Combinator.String()))
		addSelector(branch, sel.Left)
		addCompound(branch, sel.Right)
	}
}

func addCompound(tree treeprint.Tree, c selector.Compound) {
	branch := tree.AddMetaBranch("compound", c.String())
	if c.Type.Local != "" || c.Type.HasNamespace {
		branch.AddMetaNode("type", c.Type.String())
	}
	for _, cond := range c.Conditions {
		addCondition(branch, cond)
	}
	if c.PseudoElement != "" {
		branch.AddMetaNode("pseudo-element", c.PseudoElement)
	}
}

func addCondition(tree treeprint.Tree, cond selector.Condition) {
	var nested []selector.SelectorList
	switch cond := cond.(type) {
	case selector.Is:
		nested = append(nested, cond.List)
	case selector.Not:
		nested = append(nested, cond.List)
	case selector.Has:
		nested = append(nested, cond.Relative)
	case selector.Nth:
		if len(cond.Of) != 0 {
			nested = append(nested, cond.Of)
		}
	case selector.Or:
		branch := tree.AddMetaBranch(fmt.Sprintf("%T", cond), cond.String())
		for _, c := range cond.Conditions {
			addCondition(branch, c)
		}
		return
	}
	if len(nested) == 0 {
		tree.AddMetaNode(fmt.Sprintf("%T", cond), cond.String())
		return
	}
	branch := tree.AddMetaBranch(fmt.Sprintf("%T", cond), cond.String())
	for _, list := range nested {
		for _, sel := range list {
			addSelector(branch, sel)
		}
	}
}

// ElementTree returns the tree rooted at `root`, using `label`
// for each element. Elements for which `label` returns false are skipped,
// with their children.
func ElementTree(root selector.Element, label func(selector.Element) (string, bool)) treeprint.Tree {
	text, _ := label(root)
	tree := treeprint.NewWithRoot(text)
	addChildren(tree, root, label)
	return tree
}

func addChildren(tree treeprint.Tree, parent selector.Element, label func(selector.Element) (string, bool)) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		text, ok := label(child)
		if !ok {
			continue
		}
		addChildren(tree.AddBranch(text), child, label)
	}
}
