package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassList_AddRemove(t *testing.T) {
	cl := NewClassList("sidebar-mini", "sidebar-mini", " ")
	assert.Equal(t, "sidebar-mini", cl.String())

	cl.Add("nav-open")
	assert.True(t, cl.Contains("nav-open"))
	assert.Equal(t, "sidebar-mini nav-open", cl.String())

	cl.Add("nav-open")
	assert.Equal(t, "sidebar-mini nav-open", cl.String())

	cl.Remove("nav-open", "unknown")
	assert.False(t, cl.Contains("nav-open"))
	assert.Equal(t, "sidebar-mini", cl.String())
}

func TestClassList_Toggle(t *testing.T) {
	cl := NewClassList()
	assert.Empty(t, cl.String())

	cl.Toggle("nav-open", true)
	assert.True(t, cl.Contains("nav-open"))

	cl.Toggle("nav-open", false)
	assert.False(t, cl.Contains("nav-open"))
	assert.Empty(t, cl.String())
}
