package basic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealOrko/sindarin"
)

func compile(t *testing.T, src string) *sindarin.CompileResult {
	t.Helper()
	loader := sindarin.NewInMemoryImportLoader()
	loader.Add("main.sin", src)
	return sindarin.CompileWithLoader("main.sin", loader, sindarin.NewConfig())
}

func TestBasicCompilation(t *testing.T) {
	for _, test := range []struct {
		Name     string
		Source   string
		Contains []string
	}{
		{
			Name:     "shared function threads the caller's arena",
			Source:   "fn shared greet(): string =>\n    return \"hi\"\n",
			Contains: []string{"Arena *__arena__"},
		},
		{
			Name:     "private function owns and destroys its own arena",
			Source:   "fn private square(n: int): int =>\n    return n * n\n",
			Contains: []string{"rt_arena_create", "rt_arena_destroy"},
		},
		{
			Name:     "checked integer addition calls the runtime helper",
			Source:   "fn add(a: int, b: int): int => a + b\n",
			Contains: []string{"rt_add_long"},
		},
		{
			Name:     "while loop lowers to a native C while",
			Source:   "fn main() =>\n    var i = 0\n    while i < 10 =>\n        i = i + 1\n",
			Contains: []string{"while ("},
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			result := compile(t, test.Source)
			require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
			for _, want := range test.Contains {
				assert.Contains(t, result.Output, want)
			}
		})
	}
}

func TestBasicTypeErrorsReportAndSuppressOutput(t *testing.T) {
	for _, test := range []struct {
		Name   string
		Source string
	}{
		{
			Name:   "unbound identifier",
			Source: "fn main() =>\n    var x = y\n",
		},
		{
			Name:   "mismatched assignment",
			Source: "fn main() =>\n    var x: int = \"nope\"\n",
		},
		{
			Name:   "wrong argument count",
			Source: "fn add(a: int, b: int): int => a + b\nfn main() =>\n    var r = add(1)\n",
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			result := compile(t, test.Source)
			assert.True(t, result.Diags.HasErrors())
			assert.Empty(t, result.Output)
		})
	}
}
