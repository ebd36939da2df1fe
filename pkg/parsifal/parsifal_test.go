package parsifal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoTemplate = `[register tags="ship, fighter"]X-Wing[/register]` +
	`[register tags="ship, capital"]Star Destroyer[/register]` +
	`The [select ship] jumped. Roll: [range 1 20]. ` +
	`Crew: [ran count=2]Ryn|Tala|Vex|Moro[/ran].`

func TestSameSeedSameOutput(t *testing.T) {
	a, err := Parse(demoTemplate, WithSeed(42))
	require.NoError(t, err)
	b, err := Parse(demoTemplate, WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPackageLevelParseIsIsolated(t *testing.T) {
	out, err := Parse("[set x]1[/set][get x]", WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	out, err = Parse("[get x]", WithSeed(1))
	require.NoError(t, err)
	assert.Empty(t, out, "state must not leak between Parse calls")
}

func TestRuntimeKeepsState(t *testing.T) {
	rt := New(WithSeed(1))

	_, err := rt.Parse("[set hero]Ryn[/set][def greet]Hi, [get hero]![/def]")
	require.NoError(t, err)

	out, err := rt.Parse("[call greet]")
	require.NoError(t, err)
	assert.Equal(t, "Hi, Ryn!", out)
}

func TestWithFiles(t *testing.T) {
	rt := New(WithSeed(1), WithFiles(map[string]string{
		"intro.txt": "Once upon a time",
	}))
	out, err := rt.Parse("[file intro.txt], the end.")
	require.NoError(t, err)
	assert.Equal(t, "Once upon a time, the end.", out)
}

func TestWithLibrary(t *testing.T) {
	rt := New(WithSeed(1),
		WithFiles(map[string]string{"lib/macros.txt": "[def hi]Yo[/def]"}),
		WithLibrary("lib"))
	out, err := rt.Parse("[call hi]")
	require.NoError(t, err)
	assert.Equal(t, "Yo", out)
}

func TestWithLibraryFailureSurfacesAtParse(t *testing.T) {
	rt := New(WithSeed(1), WithFiles(map[string]string{}), WithLibrary("nowhere"))
	_, err := rt.Parse("anything")
	assert.Error(t, err)
}

func TestParseError(t *testing.T) {
	_, err := Parse("[set x]never closed", WithSeed(1))
	assert.Error(t, err)
}
