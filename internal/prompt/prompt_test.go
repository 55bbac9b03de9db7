package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/daskindex/internal/prompt"
)

func TestPrintListReturnsLiteralInput(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("x\n"), &out)

	got, err := p.PrintList("available pools", []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	assert.Contains(t, out.String(), "Below are available pools")
	assert.Contains(t, out.String(), "x\ny\n")
	assert.Contains(t, out.String(), "Which of the above would you like to select?")
}

func TestPrintListNoValidation(t *testing.T) {
	// Free-text answers pass through untouched, even non-members.
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("z\n"), &out)

	got, err := p.PrintList("available pools", []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, "z", got)
}

func TestPrintListEmptyItems(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader(""), &out)

	got, err := p.PrintList("available pools", nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
	assert.NotContains(t, out.String(), "Which of the above")
}

func TestPrintListInputWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("x"), &out)

	got, err := p.PrintList("available pools", []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}

func TestSelectFromList(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("y\n"), &out)

	got, err := p.SelectFromList("available pools", []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, "y", got)
}

func TestSelectFromListRejectsNonMember(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("z\n"), &out)

	_, err := p.SelectFromList("available pools", []string{"x", "y"})
	assert.ErrorIs(t, err, prompt.ErrNotAnOption)
}

func TestSelectFromMap(t *testing.T) {
	m := map[string]string{"a": "value-a", "b": "value-b"}

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("a\n"), &out)

	got, err := p.SelectFromMap("configured regions", m)
	require.NoError(t, err)
	assert.Equal(t, "value-a", got)

	// Keys are rendered, values are not.
	assert.Contains(t, out.String(), "a\nb\n")
	assert.NotContains(t, out.String(), "value-a")
}

func TestSelectFromMapUnknownKey(t *testing.T) {
	m := map[string]string{"a": "value-a", "b": "value-b"}

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("c\n"), &out)

	_, err := p.SelectFromMap("configured regions", m)
	assert.ErrorIs(t, err, prompt.ErrKeyNotFound)
}

func TestSelectFromMapCaseSensitive(t *testing.T) {
	m := map[string]string{"a": "value-a"}

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("A\n"), &out)

	_, err := p.SelectFromMap("configured regions", m)
	assert.ErrorIs(t, err, prompt.ErrKeyNotFound)
}
