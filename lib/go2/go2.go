// Package go2 contains general utility helpers that should've been in Go. Maybe they'll be in Go 2.0.
package go2

func Pointer[T any](v T) *T {
	return &v
}

func Contains[T comparable](els []T, el T) bool {
	for _, el2 := range els {
		if el2 == el {
			return true
		}
	}
	return false
}

func Filter[T any](els []T, fn func(T) bool) []T {
	out := []T{}
	for _, el := range els {
		if fn(el) {
			out = append(out, el)
		}
	}
	return out
}

// Unique returns els without repeats, keeping the first occurrence of each.
func Unique[T comparable](els []T) []T {
	seen := make(map[T]struct{}, len(els))
	out := make([]T, 0, len(els))
	for _, el := range els {
		if _, ok := seen[el]; ok {
			continue
		}
		seen[el] = struct{}{}
		out = append(out, el)
	}
	return out
}
