package element

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no element carries the requested id.
var ErrNotFound = errors.New("element not found")

// Collection is an ordered set of elements keyed by id.
//
// Creation order is preserved and elements are always resolved by id, never
// by slice position, so removing an element never shifts the identity of
// the others.
type Collection struct {
	order []int
	byID  map[int]Element
}

// NewCollection returns a collection holding elements in the given order.
// Duplicate ids keep the first occurrence.
func NewCollection(elements ...Element) *Collection {
	c := &Collection{byID: make(map[int]Element, len(elements))}
	for _, el := range elements {
		if _, dup := c.byID[el.ID]; dup {
			continue
		}
		c.order = append(c.order, el.ID)
		c.byID[el.ID] = el.Clone()
	}
	return c
}

// Len returns the number of elements.
func (c *Collection) Len() int { return len(c.order) }

// Get returns the element with the given id.
func (c *Collection) Get(id int) (Element, bool) {
	el, ok := c.byID[id]
	if !ok {
		return Element{}, false
	}
	return el.Clone(), true
}

// Elements returns copies of all elements in creation order.
func (c *Collection) Elements() []Element {
	out := make([]Element, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].Clone())
	}
	return out
}

// Add appends el. Adding an id that is already present is an error.
func (c *Collection) Add(el Element) error {
	if !el.Type.Valid() {
		return &UnrecognizedTypeError{Type: el.Type}
	}
	if _, ok := c.byID[el.ID]; ok {
		return fmt.Errorf("element %d already exists", el.ID)
	}
	c.order = append(c.order, el.ID)
	c.byID[el.ID] = el.Clone()
	return nil
}

// Replace swaps in el for the element with the same id, keeping its place.
func (c *Collection) Replace(el Element) error {
	if _, ok := c.byID[el.ID]; !ok {
		return fmt.Errorf("replace %d: %w", el.ID, ErrNotFound)
	}
	c.byID[el.ID] = el.Clone()
	return nil
}

// Update applies u to the element with the given id.
func (c *Collection) Update(id int, u Update) (Element, error) {
	el, ok := c.byID[id]
	if !ok {
		return Element{}, fmt.Errorf("update %d: %w", id, ErrNotFound)
	}
	next, err := Apply(el, u)
	if err != nil {
		return Element{}, fmt.Errorf("update %d: %w", id, err)
	}
	c.byID[id] = next
	return next.Clone(), nil
}

// Remove deletes the element with the given id, preserving the order of
// the rest. It reports whether anything was removed.
func (c *Collection) Remove(id int) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	kept := c.order[:0:0]
	for _, other := range c.order {
		if other != id {
			kept = append(kept, other)
		}
	}
	c.order = kept
	return true
}

// MaxID returns the largest id in the collection, or -1 when it is empty.
func (c *Collection) MaxID() int {
	maxID := -1
	for _, id := range c.order {
		if id > maxID {
			maxID = id
		}
	}
	return maxID
}

// Clone returns a deep copy of c.
func (c *Collection) Clone() *Collection {
	out := &Collection{
		order: append([]int(nil), c.order...),
		byID:  make(map[int]Element, len(c.byID)),
	}
	for id, el := range c.byID {
		out.byID[id] = el.Clone()
	}
	return out
}
