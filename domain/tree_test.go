package domain

import (
	"reflect"
	"testing"
	"time"
)

func makeComment(id, parentID string, createdAt time.Time) Comment {
	return Comment{
		ID:              id,
		ChirpID:         "chirp-1",
		AuthorID:        "author-" + id,
		ParentCommentID: parentID,
		Text:            "comment " + id,
		CreatedAt:       createdAt,
	}
}

func countNodes(forest []*CommentNode) int {
	total := 0
	for _, n := range forest {
		total += 1 + countNodes(n.Replies)
	}
	return total
}

func findNode(forest []*CommentNode, id string) *CommentNode {
	for _, n := range forest {
		if n.ID == id {
			return n
		}
		if found := findNode(n.Replies, id); found != nil {
			return found
		}
	}
	return nil
}

func TestBuildCommentTree_ChainStructureAndCounts(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	flat := []Comment{
		makeComment("1", "", base),
		makeComment("2", "1", base.Add(time.Minute)),
		makeComment("3", "2", base.Add(2*time.Minute)),
	}

	forest := BuildCommentTree(flat)
	if len(forest) != 1 {
		t.Fatalf("expected single root, got %d", len(forest))
	}
	if countNodes(forest) != len(flat) {
		t.Fatalf("node count %d must equal input length %d", countNodes(forest), len(flat))
	}

	root := forest[0]
	if root.ID != "1" || root.ReplyCount != 2 {
		t.Fatalf("root: got id=%s replyCount=%d, want id=1 replyCount=2", root.ID, root.ReplyCount)
	}
	if len(root.Replies) != 1 || root.Replies[0].ID != "2" || root.Replies[0].ReplyCount != 1 {
		t.Fatalf("unexpected middle node: %#v", root.Replies)
	}
	leaf := root.Replies[0].Replies[0]
	if leaf.ID != "3" || leaf.ReplyCount != 0 || len(leaf.Replies) != 0 {
		t.Fatalf("unexpected leaf: %#v", leaf)
	}
}

func TestBuildCommentTree_TwoTopLevelPreserveOrder(t *testing.T) {
	base := time.Now()
	flat := []Comment{
		makeComment("1", "", base),
		makeComment("2", "", base.Add(time.Second)),
	}

	forest := BuildCommentTree(flat)
	if len(forest) != 2 {
		t.Fatalf("expected forest of two, got %d", len(forest))
	}
	if forest[0].ID != "1" || forest[1].ID != "2" {
		t.Fatalf("input order must be preserved, got [%s %s]", forest[0].ID, forest[1].ID)
	}
	if forest[0].ReplyCount != 0 || forest[1].ReplyCount != 0 {
		t.Fatalf("leaf roots must have zero reply count")
	}
}

func TestBuildCommentTree_RepliesMatchParentPointers(t *testing.T) {
	base := time.Now()
	flat := []Comment{
		makeComment("a", "", base),
		makeComment("b", "a", base.Add(1*time.Second)),
		makeComment("c", "a", base.Add(2*time.Second)),
		makeComment("d", "b", base.Add(3*time.Second)),
		makeComment("e", "", base.Add(4*time.Second)),
	}

	forest := BuildCommentTree(flat)
	if countNodes(forest) != len(flat) {
		t.Fatalf("node count %d must equal input length %d", countNodes(forest), len(flat))
	}

	// Every node's replies must be exactly the comments pointing at it.
	for _, c := range flat {
		n := findNode(forest, c.ID)
		if n == nil {
			t.Fatalf("comment %s missing from forest", c.ID)
		}
		var want []string
		for _, other := range flat {
			if other.ParentCommentID == c.ID {
				want = append(want, other.ID)
			}
		}
		var got []string
		for _, r := range n.Replies {
			got = append(got, r.ID)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("node %s replies: got %v want %v", c.ID, got, want)
		}
	}

	a := findNode(forest, "a")
	if a.ReplyCount != 3 {
		t.Fatalf("replyCount must count transitive descendants, got %d", a.ReplyCount)
	}
}

func TestBuildCommentTree_Deterministic(t *testing.T) {
	base := time.Now()
	flat := []Comment{
		makeComment("1", "", base),
		makeComment("2", "1", base.Add(time.Second)),
		makeComment("3", "", base.Add(2*time.Second)),
		makeComment("4", "3", base.Add(3*time.Second)),
	}

	first := BuildCommentTree(flat)
	second := BuildCommentTree(flat)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("builder must be deterministic for identical input")
	}
	// The input slice must not be mutated.
	if flat[0].ReplyCount != 0 {
		t.Fatalf("builder must not write reply counts back into the input")
	}
}

func TestBuildCommentTree_OrphanPromotedToTopLevel(t *testing.T) {
	base := time.Now()
	flat := []Comment{
		makeComment("1", "", base),
		makeComment("3", "gone", base.Add(time.Second)),
	}

	forest := BuildCommentTree(flat)
	if len(forest) != 2 {
		t.Fatalf("orphan must surface as top-level, got %d roots", len(forest))
	}
	if forest[1].ID != "3" {
		t.Fatalf("orphan must keep its position, got %s", forest[1].ID)
	}
}

func TestBuildCommentTree_DeletedParentReparentsReply(t *testing.T) {
	// Scenario: the store pushes an updated list where comment 2 was
	// deleted but 3 still points at it.
	base := time.Now()
	flat := []Comment{
		makeComment("1", "", base),
		makeComment("3", "2", base.Add(2*time.Second)),
	}

	forest := BuildCommentTree(flat)
	if len(forest) != 2 {
		t.Fatalf("expected two top-level nodes after parent deletion, got %d", len(forest))
	}
	if forest[0].ID != "1" || forest[1].ID != "3" {
		t.Fatalf("unexpected roots: [%s %s]", forest[0].ID, forest[1].ID)
	}
	if forest[0].ReplyCount != 0 {
		t.Fatalf("node 1 must not adopt the orphan")
	}
}

func TestBuildCommentTree_CycleTerminatesAndFailsOpen(t *testing.T) {
	base := time.Now()
	flat := []Comment{
		makeComment("a", "b", base),
		makeComment("b", "a", base.Add(time.Second)),
	}

	forest := BuildCommentTree(flat)
	if countNodes(forest) != 2 {
		t.Fatalf("cycle members must not be dropped, got %d nodes", countNodes(forest))
	}
	if len(forest) != 2 {
		t.Fatalf("both cycle members must be promoted to top level, got %d roots", len(forest))
	}

	// A descendant of the cycle still hangs under a promoted member.
	flat = append(flat, makeComment("c", "a", base.Add(2*time.Second)))
	forest = BuildCommentTree(flat)
	if countNodes(forest) != 3 {
		t.Fatalf("expected all three comments, got %d", countNodes(forest))
	}
	a := findNode(forest, "a")
	if a == nil || len(a.Replies) != 1 || a.Replies[0].ID != "c" {
		t.Fatalf("descendant of cycle member must stay attached: %#v", a)
	}
}

func TestBuildCommentTree_SelfReferenceTerminates(t *testing.T) {
	flat := []Comment{makeComment("a", "a", time.Now())}

	forest := BuildCommentTree(flat)
	if len(forest) != 1 || forest[0].ID != "a" || forest[0].ReplyCount != 0 {
		t.Fatalf("self-referencing comment must become a plain root: %#v", forest)
	}
}

func TestBuildCommentTree_EmptyInput(t *testing.T) {
	if got := BuildCommentTree(nil); got != nil {
		t.Fatalf("empty input must yield empty forest, got %#v", got)
	}
}

func TestBuildCommentTree_LargeFlatThread(t *testing.T) {
	// Hundreds of entries under one root should assemble without any
	// quadratic blowup and count correctly.
	base := time.Now()
	flat := []Comment{makeComment("root", "", base)}
	for i := 0; i < 500; i++ {
		id := "r" + string(rune('a'+i%26)) + string(rune('0'+i%10)) + "-" + time.Duration(i).String()
		flat = append(flat, makeComment(id, "root", base.Add(time.Duration(i)*time.Second)))
	}

	forest := BuildCommentTree(flat)
	if len(forest) != 1 {
		t.Fatalf("expected single root, got %d", len(forest))
	}
	if forest[0].ReplyCount != 500 {
		t.Fatalf("reply count: got %d want 500", forest[0].ReplyCount)
	}
}
