package jsoncache

// Tree is a JSON document rooted at an object and addressed by dotted paths.
//
// Operations that cannot apply to the current shape of the document are
// absorbed: Insert coerces what stands in its way and Get reports not found.
// Nothing here returns an error.
type Tree struct {
	root *Node
}

// PathValue pairs a cache path with the value to insert there.
type PathValue struct {
	Path  string
	Value *Node
}

// NewTree returns a tree holding an empty object.
func NewTree() *Tree {
	return &Tree{root: Object()}
}

// Root returns the live root object. Callers must not modify it.
func (t *Tree) Root() *Node {
	return t.root
}

// Insert stores a copy of value at path.
//
// Missing intermediate objects are created and existing non-objects on the way
// are replaced by empty objects. A path ending in "." appends value to the
// array at the preceding path, replacing any non-array found there. When the
// final key already holds an object and value is an object the two are deep
// merged (see Merge); otherwise the old value is replaced.
func (t *Tree) Insert(path string, value *Node) {
	insertAt(t.root, path, value.Clone())
}

// InsertBulk inserts every pair in order.
func (t *Tree) InsertBulk(pairs []PathValue) {
	for _, p := range pairs {
		t.Insert(p.Path, p.Value)
	}
}

// Merge deep merges value into the root. A null member deletes the matching
// key; objects on both sides merge recursively; anything else replaces the
// target. Keys not mentioned in value are left alone. Merging a non-object
// is a no-op since the root must remain an object.
func (t *Tree) Merge(value *Node) {
	if !value.IsObject() {
		return
	}
	mergeInto(t.root, value.Clone())
}

// Get returns the node at path, or false when nothing lives there.
// The returned node is live; callers must not modify it.
func (t *Tree) Get(path string) (*Node, bool) {
	return resolvePointer(t.root, PathToPointer(path))
}

func insertAt(root *Node, path string, value *Node) {
	segs := splitPath(path)
	last := segs[len(segs)-1]
	parents := segs[:len(segs)-1]

	if last == "" {
		if len(parents) == 0 {
			// Appending to the root would turn it into an array.
			return
		}
		holder := descend(root, parents[:len(parents)-1])
		key := parents[len(parents)-1]
		arr := holder.Field(key)
		if !arr.IsArray() {
			arr = Array()
			holder.Set(key, arr)
		}
		arr.Append(value)
		return
	}

	holder := descend(root, parents)
	cur := holder.Field(last)
	if cur == nil {
		cur = Object()
		holder.Set(last, cur)
	}
	if cur.IsObject() && value.IsObject() {
		mergeInto(cur, value)
		return
	}
	holder.Set(last, value)
}

// descend walks segs from n, turning every missing or non-object step into an
// empty object.
func descend(n *Node, segs []string) *Node {
	for _, seg := range segs {
		child := n.Field(seg)
		if !child.IsObject() {
			child = Object()
			n.Set(seg, child)
		}
		n = child
	}
	return n
}

// mergeInto merges src into dst, both objects. src is consumed.
func mergeInto(dst, src *Node) {
	for i, k := range src.keys {
		v := src.values[i]
		if v.IsNull() {
			dst.Delete(k)
			continue
		}
		if cur := dst.Field(k); cur.IsObject() && v.IsObject() {
			mergeInto(cur, v)
			continue
		}
		dst.Set(k, v)
	}
}
