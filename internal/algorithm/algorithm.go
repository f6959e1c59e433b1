// Package algorithm holds the static catalogue of supported sorts: their
// identifiers, narration and trace generators.
package algorithm

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/sortsim/internal/trace"
)

type ID string

const (
	Bubble    ID = "bubble"
	Selection ID = "selection"
	Insertion ID = "insertion"
)

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// ErrUnknown is returned for identifiers outside the supported set.
var ErrUnknown = errors.New("algorithm: unknown algorithm")

// Info is the presentation metadata for one algorithm.
type Info struct {
	ID          ID
	Name        string
	Description string
	Explanation string
	// Hint is the one-line rule shown while solving a challenge level.
	Hint       string
	Difficulty Difficulty
	generate   trace.Generator
}

// Markdown renders the metadata as a markdown document.
func (i Info) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", i.Name)
	fmt.Fprintf(&b, "**Difficulty:** %s\n\n", i.Difficulty)
	fmt.Fprintf(&b, "%s\n\n", i.Description)
	fmt.Fprintf(&b, "## How it works\n\n%s\n\n", i.Explanation)
	fmt.Fprintf(&b, "## Challenge rule\n\n> %s\n", i.Hint)
	return b.String()
}

var catalogue = []Info{
	{
		ID:          Bubble,
		Name:        "Bubble Sort",
		Description: "A simple comparison-based sorting algorithm that repeatedly steps through the list, compares adjacent elements, and swaps them if they are in the wrong order.",
		Explanation: "Bubble sort works by repeatedly stepping through the list, comparing adjacent elements and swapping them if they are in the wrong order. The pass through the list is repeated until no swaps are needed, which means the list is sorted.",
		Hint:        "Compare adjacent elements and swap if they are in the wrong order.",
		Difficulty:  Easy,
		generate:    trace.Bubble,
	},
	{
		ID:          Selection,
		Name:        "Selection Sort",
		Description: "Selection sort divides the input list into two parts: the sorted sublist and the unsorted sublist. It repeatedly selects the smallest element from the unsorted sublist and moves it to the end of the sorted sublist.",
		Explanation: "The algorithm divides the input list into two parts: a sorted sublist of items which is built up from left to right and a sublist of the remaining unsorted items. Initially, the sorted sublist is empty and the unsorted sublist is the entire input list. The algorithm proceeds by finding the smallest element in the unsorted sublist, exchanging it with the leftmost unsorted element, and moving the boundary between the two sublists one element to the right.",
		Hint:        "Find the minimum element and swap it with the element at the current position.",
		Difficulty:  Medium,
		generate:    trace.Selection,
	},
	{
		ID:          Insertion,
		Name:        "Insertion Sort",
		Description: "Insertion sort builds the final sorted array one item at a time. It takes each element from the input data and inserts it into its correct position within the sorted part of the array.",
		Explanation: "Insertion sort iterates through the array, consuming one input element each repetition, and growing a sorted output list. At each iteration, insertion sort removes one element from the input data, finds the location it belongs within the sorted list, and inserts it there. It repeats until no input elements remain.",
		Hint:        "Insert each element into its correct position in the sorted section of the array.",
		Difficulty:  Hard,
		generate:    trace.Insertion,
	},
}
