package b

func eq(a, b int) bool {
	return a == b // want "comparison depends on function arguments; candidate for rewrite with ObfEq"
}

func add(a, b int) int {
	return a + b // want "binary-op depends on function arguments; candidate for rewrite with ObfEq"
}

func zero() int {
	return 1 + 2
}
