package state

// Touched records which fields received at least one edit since the last
// reset. It gates error display only; validation always runs.
type Touched map[string]bool

// Touch returns a copy with id marked as touched.
func Touch(t Touched, id string) Touched {
	out := t.clone()
	out[id] = true
	return out
}

// Untouch returns a copy with id no longer touched.
func Untouch(t Touched, id string) Touched {
	out := t.clone()
	delete(out, id)
	return out
}

// Reset returns an empty touched map.
func Reset() Touched {
	return Touched{}
}

// Is reports whether id has been touched.
func (t Touched) Is(id string) bool {
	return t[id]
}

func (t Touched) clone() Touched {
	out := make(Touched, len(t)+1)
	for id, touched := range t {
		if touched {
			out[id] = true
		}
	}
	return out
}
