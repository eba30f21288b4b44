package shadow

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// BlendMode is the compositing mode of a shadow.
type BlendMode uint8

// Blend modes, named after their CSS keywords.
const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
)

var blendNames = [...]string{
	"normal", "multiply", "screen", "overlay", "darken", "lighten",
	"color-dodge", "color-burn", "hard-light", "soft-light", "difference", "exclusion",
}

func (b BlendMode) String() string {
	if int(b) < len(blendNames) {
		return blendNames[b]
	}
	return fmt.Sprintf("BlendMode(%d)", int(b))
}

// ParseBlendMode finds a blend mode by its keyword.
func ParseBlendMode(name string) (BlendMode, bool) {
	for i, n := range blendNames {
		if n == name {
			return BlendMode(i), true
		}
	}
	return BlendNormal, false
}

// BlendModeNames lists all blend mode keywords.
func BlendModeNames() []string {
	names := make([]string, len(blendNames))
	copy(names, blendNames[:])
	return names
}

// Dump renders a paint as a tree, for debugging.
func Dump(p Paint) string {
	tree := treeprint.New()
	dump(p, tree)
	return tree.String()
}

func dump(p Paint, branch treeprint.Tree) {
	switch x := p.(type) {
	case *Group:
		g := branch.AddBranch(fmt.Sprintf("group (%d)", x.Len()))
		for _, m := range x.members {
			dump(m, g)
		}
	case *Shadow:
		if x.Blend != nil {
			branch.AddNode(fmt.Sprintf("%s [%s]", x, *x.Blend))
		} else {
			branch.AddNode(x.String())
		}
	case nil:
		branch.AddNode("<nil>")
	default:
		branch.AddNode(p.String())
	}
}
