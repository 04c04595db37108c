package a

type point struct{ x, y int }

func positive(n int) bool {
	return n > 0 // want "comparison depends on function arguments; candidate for rewrite with MatrixMult"
}

func constant() bool {
	n := 3
	return n > 0
}

func diagonal(p *point) bool {
	return p.x == p.y // want "comparison depends on function arguments; candidate for rewrite with MatrixMult"
}

func (p *point) left(q *point) bool {
	return p.x < q.x // want "comparison depends on function arguments; candidate for rewrite with MatrixMult"
}

func byValue(p point) bool {
	return p.x < p.y // want "comparison depends on function arguments; candidate for rewrite with MatrixMult"
}

func ignored(a, b int) bool {
	if a == b { //symobf:ignore
		return true
	}
	//symobf:ignore - reviewed
	return a < b
}

func sum(xs []int, limit int) bool {
	total := 0
	for i := 0; i < len(xs); i++ { // want "comparison depends on function arguments; candidate for rewrite with MatrixMult"
		total += xs[i]
	}
	return total > limit // want "comparison depends on function arguments; candidate for rewrite with MatrixMult"
}

func local() bool {
	xs := []int{1, 2, 3}
	return len(xs) > 2
}

func closure(n int) func() bool {
	return func() bool {
		return n > 1
	}
}
