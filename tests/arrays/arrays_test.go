package arrays

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

func TestArrayMutatorsReassignTheReceiver(t *testing.T) {
	for _, test := range []struct {
		Name     string
		Source   string
		Contains string
	}{
		{
			Name:     "push reassigns the receiver",
			Source:   "fn main() =>\n    var xs = [1, 2]\n    xs.push(3)\n",
			Contains: "xs = rt_array_push_long(",
		},
		{
			Name:     "clear reassigns the receiver",
			Source:   "fn main() =>\n    var xs = [1, 2]\n    xs.clear()\n",
			Contains: "xs = rt_array_clear_long(",
		},
		{
			Name:     "reverse reassigns the receiver",
			Source:   "fn main() =>\n    var xs = [1, 2]\n    xs.reverse()\n",
			Contains: "xs = rt_array_reverse_long(",
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			result := compile(t, test.Source)
			require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
			assert.Contains(t, result.Output, test.Contains)
		})
	}
}

func TestByteArrayMethodsUseBytesPrefix(t *testing.T) {
	src := "fn main() =>\n    var bs = new byte[4]\n    var s = bs.toHex()\n"
	result := compile(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_bytes_toHex(")
}

func TestSizedArrayAllocationWithDefault(t *testing.T) {
	src := "fn main() =>\n    var xs = new int[10] default 0\n"
	result := compile(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_array_alloc_long")
}
