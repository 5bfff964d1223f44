// Package dom models the class attribute of the page root element.
package dom

import (
	"strings"
	"sync"
)

// ClassList is the ordered set of class names on a root element. It is safe
// for concurrent use.
type ClassList struct {
	mu      sync.RWMutex
	classes []string
}

// NewClassList creates a class list holding the given classes, duplicates removed.
func NewClassList(classes ...string) *ClassList {
	cl := &ClassList{}
	cl.Add(classes...)

	return cl
}

// Add appends classes that are not yet present. Blank names are ignored.
func (cl *ClassList) Add(classes ...string) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	for _, c := range classes {
		c = strings.TrimSpace(c)
		if c == "" || cl.index(c) >= 0 {
			continue
		}

		cl.classes = append(cl.classes, c)
	}
}

// Remove deletes classes from the list.
func (cl *ClassList) Remove(classes ...string) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	for _, c := range classes {
		if i := cl.index(c); i >= 0 {
			cl.classes = append(cl.classes[:i], cl.classes[i+1:]...)
		}
	}
}

// Toggle adds class when force is true and removes it otherwise.
func (cl *ClassList) Toggle(class string, force bool) {
	if force {
		cl.Add(class)
		return
	}

	cl.Remove(class)
}

// Contains reports whether class is present.
func (cl *ClassList) Contains(class string) bool {
	cl.mu.RLock()
	defer cl.mu.RUnlock()

	return cl.index(class) >= 0
}

// String renders the list as the value of a class attribute.
func (cl *ClassList) String() string {
	cl.mu.RLock()
	defer cl.mu.RUnlock()

	return strings.Join(cl.classes, " ")
}

func (cl *ClassList) index(class string) int {
	for i, c := range cl.classes {
		if c == class {
			return i
		}
	}

	return -1
}
