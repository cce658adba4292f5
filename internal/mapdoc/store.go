package mapdoc

// Elements is the editable collection of vector elements. At most one
// element is selected at any time. All operations are pure: they return a
// new collection and leave the receiver untouched, so callers decide
// which results are history-worthy.
type Elements []Element

// Clone returns a deep copy of the collection.
func (els Elements) Clone() Elements {
	if els == nil {
		return nil
	}
	out := make(Elements, len(els))
	copy(out, els)
	return out
}

// Add returns the collection with e appended.
func (els Elements) Add(e Element) Elements {
	out := els.Clone()
	return append(out, e)
}

// Update returns the collection with the element matching id replaced by
// the result of fn. Unknown ids leave the collection unchanged.
func (els Elements) Update(id string, fn func(Element) Element) Elements {
	out := els.Clone()
	for i, e := range out {
		if e.ID == id {
			out[i] = fn(e)
			break
		}
	}
	return out
}

// Remove returns the collection without the element matching id.
func (els Elements) Remove(id string) Elements {
	out := make(Elements, 0, len(els))
	for _, e := range els {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// SelectOnly returns the collection with exactly the element matching id
// selected. An empty id deselects everything.
func (els Elements) SelectOnly(id string) Elements {
	out := els.Clone()
	for i := range out {
		out[i].Selected = out[i].ID == id
	}
	return out
}

// Selected returns the selected element, if any.
func (els Elements) Selected() (Element, bool) {
	for _, e := range els {
		if e.Selected {
			return e, true
		}
	}
	return Element{}, false
}

// ByID returns the element matching id, if present.
func (els Elements) ByID(id string) (Element, bool) {
	for _, e := range els {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

// Clear returns an empty collection.
func (els Elements) Clear() Elements {
	return Elements{}
}
