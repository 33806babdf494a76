package hierarchy

// Choice is one entry of a select input built from a sorted page.
type Choice struct {
	Value  string  `json:"value"`
	Label  string  `json:"label"`
	Level  int     `json:"level"`
	Parent bool    `json:"parent,omitempty"` // set for auxiliary anchors
	Group  *Choice `json:"group,omitempty"`  // the parent's choice, when resolvable
}

// Choices converts sorted nodes into select choices, preserving order.
//
// Auxiliary nodes are flagged as Parent and carry no group. Every other node
// with a resolvable parent gets that parent as its Group; the group itself is
// shallow and has no group of its own.
func Choices(nodes []Node) []Choice {
	out := make([]Choice, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		c := choiceOf(n)
		if IsAuxiliary(n) {
			c.Parent = true
		} else if p := n.Parent(); p != nil {
			g := choiceOf(p)
			c.Group = &g
		}
		out = append(out, c)
	}
	return out
}

func choiceOf(n Node) Choice {
	return Choice{Value: n.ID(), Label: LabelOf(n), Level: n.Level()}
}
