package sema

import (
	"fmt"
	"sort"
)

// suggest предлагает ближайшее известное имя для опечатки.
func (tc *typeChecker) suggest(name string) string {
	candidates := tc.ctx.Names()
	for i := len(tc.scopes.frames) - 1; i >= 0; i-- {
		for n := range tc.scopes.frames[i] {
			candidates = append(candidates, n)
		}
	}
	if tc.fn != nil {
		for n := range tc.globals {
			candidates = append(candidates, n)
		}
	}
	sort.Strings(candidates)

	best, bestDist := "", 3
	for _, c := range candidates {
		if c == name {
			continue
		}
		if d := editDistance(name, c); d < bestDist && d < len(name) {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("did you mean `%s`?", best)
}

// editDistance - расстояние Левенштейна по рунам.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
