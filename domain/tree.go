package domain

// BuildCommentTree folds a flat, ordered comment list into the forest
// of top-level comments, each carrying its full reply subtree and a
// transitive ReplyCount.
//
// The function is pure and total: it never panics and never loops, no
// matter how malformed the parent references are. Comments whose
// parent id is missing from the batch (a reply orphaned by a racing
// delete) are promoted to top level rather than dropped, and any
// comment that would close a parent cycle is detached the same way.
// Relative input order is preserved throughout; the caller is
// responsible for handing in a single chirp's comments in createdAt
// order.
//
// Runs in time linear in the number of comments: one pass to index by
// id, one walk to resolve effective parents, one pass to attach.
func BuildCommentTree(comments []Comment) []*CommentNode {
	if len(comments) == 0 {
		return nil
	}

	nodes := make(map[string]*CommentNode, len(comments))
	order := make([]string, 0, len(comments))
	for i := range comments {
		c := comments[i]
		if _, dup := nodes[c.ID]; dup {
			continue // First occurrence wins on duplicate ids.
		}
		c.ReplyCount = 0
		nodes[c.ID] = &CommentNode{Comment: c}
		order = append(order, c.ID)
	}

	parent := resolveParents(order, nodes)

	roots := make([]*CommentNode, 0, len(order))
	for _, id := range order {
		n := nodes[id]
		if p := parent[id]; p != "" {
			pn := nodes[p]
			pn.Replies = append(pn.Replies, n)
		} else {
			roots = append(roots, n)
		}
	}

	var count func(n *CommentNode) int
	count = func(n *CommentNode) int {
		total := 0
		for _, r := range n.Replies {
			total += 1 + count(r)
		}
		n.ReplyCount = total
		return total
	}
	for _, r := range roots {
		count(r)
	}

	return roots
}

// resolveParents maps every comment id to its effective parent id, ""
// meaning top level. Orphans resolve to "". Cycles are broken by
// promoting every cycle member to top level; comments that merely hang
// below a cycle keep their parent and end up under a promoted member.
// Each id is settled exactly once, so the walk stays linear.
func resolveParents(order []string, nodes map[string]*CommentNode) map[string]string {
	const (
		unresolved = iota
		resolving
		resolved
	)
	state := make(map[string]int, len(order))
	parent := make(map[string]string, len(order))

	for _, id := range order {
		if state[id] != unresolved {
			continue
		}
		var chain []string
		cur := id
		for {
			if state[cur] == resolved {
				break
			}
			if state[cur] == resolving {
				// cur is already on this chain: everything from its
				// first occurrence onward forms the cycle.
				for i := len(chain) - 1; i >= 0; i-- {
					parent[chain[i]] = ""
					if chain[i] == cur {
						break
					}
				}
				break
			}
			state[cur] = resolving
			chain = append(chain, cur)

			p := nodes[cur].ParentCommentID
			if p == "" {
				break
			}
			if _, ok := nodes[p]; !ok {
				// Orphaned reply: parent vanished, fail open.
				break
			}
			parent[cur] = p
			cur = p
		}
		for _, cid := range chain {
			state[cid] = resolved
		}
	}
	return parent
}
