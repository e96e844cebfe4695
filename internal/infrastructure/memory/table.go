package memory

import "sync"

// table is a map of rows keyed by id. Rows are copied on the way in and out.
type table[T any] struct {
	rows map[string]*T
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]*T)}
}

// stage holds uncommitted writes of one unit of work.
type stage[T any] struct {
	rows map[string]*T
	gone map[string]bool
}

func newStage[T any]() *stage[T] {
	return &stage[T]{rows: make(map[string]*T), gone: make(map[string]bool)}
}

func (s *stage[T]) put(id string, v *T) {
	cp := *v
	s.rows[id] = &cp
	delete(s.gone, id)
}

func (s *stage[T]) del(id string) {
	delete(s.rows, id)
	s.gone[id] = true
}

func (s *stage[T]) apply(t *table[T]) {
	for id := range s.gone {
		delete(t.rows, id)
	}
	for id, v := range s.rows {
		t.rows[id] = v
	}
}

func lookup[T any](mu *sync.RWMutex, t *table[T], st *stage[T], id string) (*T, bool) {
	if st != nil {
		if st.gone[id] {
			return nil, false
		}
		if v, ok := st.rows[id]; ok {
			cp := *v
			return &cp, true
		}
	}
	mu.RLock()
	defer mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	cp := *v
	return &cp, true
}

func save[T any](mu *sync.RWMutex, t *table[T], st *stage[T], id string, v *T) {
	if st != nil {
		st.put(id, v)
		return
	}
	mu.Lock()
	defer mu.Unlock()
	cp := *v
	t.rows[id] = &cp
}

func remove[T any](mu *sync.RWMutex, t *table[T], st *stage[T], id string) {
	if st != nil {
		st.del(id)
		return
	}
	mu.Lock()
	defer mu.Unlock()
	delete(t.rows, id)
}

// scan returns copies of all visible rows matching keep, staged writes included.
func scan[T any](mu *sync.RWMutex, t *table[T], st *stage[T], keep func(*T) bool) []*T {
	var out []*T
	mu.RLock()
	for id, v := range t.rows {
		if st != nil && (st.gone[id] || st.rows[id] != nil) {
			continue
		}
		if keep(v) {
			cp := *v
			out = append(out, &cp)
		}
	}
	mu.RUnlock()
	if st != nil {
		for _, v := range st.rows {
			if keep(v) {
				cp := *v
				out = append(out, &cp)
			}
		}
	}
	return out
}
