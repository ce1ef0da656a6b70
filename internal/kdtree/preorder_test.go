package kdtree

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreOrderIsPermutation(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 16, 17, 100, 257} {
		order := PreOrder(n)
		assert.Len(t, order, n)
		sorted := append([]int(nil), order...)
		sort.Ints(sorted)
		for i := range sorted {
			assert.Equal(t, i, sorted[i], "n=%d missing index", n)
		}
	}
}

func TestPreOrderBuildsBalancedBST(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 16, 17, 100, 257, 1000} {
		order := PreOrder(n)
		left := make([]int, n)
		right := make([]int, n)
		for i := range left {
			left[i], right[i] = -1, -1
		}
		root := -1
		depth := make([]int, n)
		for _, v := range order {
			if root == -1 {
				root = v
				depth[v] = 0
				continue
			}
			cur := root
			d := 0
			for {
				d++
				if v < cur {
					if left[cur] == -1 {
						left[cur] = v
						depth[v] = d
						break
					}
					cur = left[cur]
				} else {
					if right[cur] == -1 {
						right[cur] = v
						depth[v] = d
						break
					}
					cur = right[cur]
				}
			}
		}
		minLeafDepth, maxLeafDepth := n, 0
		for v := 0; v < n; v++ {
			if left[v] == -1 && right[v] == -1 {
				if depth[v] < minLeafDepth {
					minLeafDepth = depth[v]
				}
				if depth[v] > maxLeafDepth {
					maxLeafDepth = depth[v]
				}
			}
		}
		assert.LessOrEqual(t, maxLeafDepth-minLeafDepth, 1, "n=%d leaf depths not balanced", n)
	}
}
