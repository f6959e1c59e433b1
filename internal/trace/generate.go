package trace

import "fmt"

// Generator produces the trace of one algorithm over input. Generators never
// modify input.
type Generator func(input []int) *Trace

// Bubble records a bubble sort of input.
func Bubble(input []int) *Trace {
	if len(input) <= 1 {
		return trivial(input)
	}
	r := newRecorder(input)
	n := len(r.arr)

	for i := 0; i < n; i++ {
		for j := 0; j < n-i-1; j++ {
			r.record(fmt.Sprintf("Compare elements at positions %d and %d", j, j+1), []int{j, j + 1}, nil)

			if r.arr[j] > r.arr[j+1] {
				r.swap(j, j+1)
				r.record(fmt.Sprintf("%d is smaller than %d, swap them", r.arr[j], r.arr[j+1]), nil, []int{j, j + 1})
			}
		}

		if i < n-1 {
			r.record(fmt.Sprintf("Completed pass %d. The largest element is now at the end.", i+1), nil, nil)
		}
	}

	return r.finish()
}

// Selection records a selection sort of input.
func Selection(input []int) *Trace {
	if len(input) <= 1 {
		return trivial(input)
	}
	r := newRecorder(input)
	n := len(r.arr)

	for i := 0; i < n-1; i++ {
		minIdx := i
		r.record(fmt.Sprintf("Looking for the minimum element starting from position %d", i), []int{i}, nil)

		for j := i + 1; j < n; j++ {
			r.record(fmt.Sprintf("Compare current minimum (%d) with element at position %d (%d)", r.arr[minIdx], j, r.arr[j]), []int{minIdx, j}, nil)

			if r.arr[j] < r.arr[minIdx] {
				minIdx = j
				r.record(fmt.Sprintf("New minimum found: %d at position %d", r.arr[minIdx], minIdx), []int{minIdx}, nil)
			}
		}

		if minIdx != i {
			r.swap(i, minIdx)
			r.record(fmt.Sprintf("Swap the minimum element (%d) with the element at position %d", r.arr[i], i), nil, []int{i, minIdx})
		} else {
			r.record(fmt.Sprintf("Element %d is already in the correct position", r.arr[i]), nil, nil)
		}
	}

	return r.finish()
}

// Insertion records an insertion sort of input. The key travels down the
// sorted prefix by adjacent swaps, so each shift step shows the key one
// position further left.
func Insertion(input []int) *Trace {
	if len(input) <= 1 {
		return trivial(input)
	}
	r := newRecorder(input)
	n := len(r.arr)

	for i := 1; i < n; i++ {
		key := r.arr[i]
		j := i - 1
		r.record(fmt.Sprintf("Take element %d at position %d and find its correct position in the sorted part", key, i), []int{i}, nil)

		for j >= 0 && r.arr[j] > key {
			r.record(fmt.Sprintf("Compare %d with %d at position %d", key, r.arr[j], j), []int{j, j + 1}, nil)

			r.swap(j, j+1)
			r.record(fmt.Sprintf("Move %d one position to the right", r.arr[j+1]), nil, []int{j, j + 1})

			j--
		}

		if j+1 != i {
			r.record(fmt.Sprintf("Insert %d at position %d", key, j+1), nil, []int{j + 1})
		}
	}

	return r.finish()
}
