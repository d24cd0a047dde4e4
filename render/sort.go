package render

// Sort orders the list starting at head by descending distance using a
// bottom-up natural merge sort over the arena links. Jobs with equal
// distance keep their relative order. It returns the new head and tail.
//
// Passes merge runs of doubling size until a pass performs at most one
// merge. No memory is allocated.
func Sort(a *Arena, head int32) (newHead, newTail int32) {
	if head == Nil {
		return Nil, Nil
	}
	next := a.next
	dist := a.Distance

	list := head
	var tail int32
	for insize := 1; ; insize *= 2 {
		p := list
		list, tail = Nil, Nil
		merges := 0

		for p != Nil {
			merges++

			q := p
			psize := 0
			for i := 0; i < insize; i++ {
				psize++
				q = next[q]
				if q == Nil {
					break
				}
			}
			qsize := insize

			for psize > 0 || (qsize > 0 && q != Nil) {
				var e int32
				switch {
				case psize == 0:
					e, q = q, next[q]
					qsize--
				case qsize == 0 || q == Nil:
					e, p = p, next[p]
					psize--
				case dist[p] >= dist[q]:
					// p came first in the list, so it wins ties
					e, p = p, next[p]
					psize--
				default:
					e, q = q, next[q]
					qsize--
				}

				if tail != Nil {
					next[tail] = e
				} else {
					list = e
				}
				tail = e
			}

			p = q
		}
		next[tail] = Nil

		if merges <= 1 {
			return list, tail
		}
	}
}
