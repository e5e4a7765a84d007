package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealOrko/sindarin"
)

func TestImportSplicesTransitiveDependency(t *testing.T) {
	loader := sindarin.NewInMemoryImportLoader()
	loader.Add("./util/math.sin", "fn shared square(n: int): int =>\n    return n * n\n")
	loader.Add("./lib.sin", "import \"./util/math.sin\"\nfn shared quad(n: int): int =>\n    return square(square(n))\n")
	loader.Add("main.sin", "import \"./lib.sin\"\nfn main() =>\n    var r = quad(2)\n")

	result := sindarin.CompileWithLoader("main.sin", loader, sindarin.NewConfig())
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "square")
	assert.Contains(t, result.Output, "quad")
}

func TestImportDiamondIsResolvedOnce(t *testing.T) {
	loader := sindarin.NewInMemoryImportLoader()
	loader.Add("./base.sin", "fn shared base(): int =>\n    return 1\n")
	loader.Add("./left.sin", "import \"./base.sin\"\nfn shared left(): int =>\n    return base()\n")
	loader.Add("./right.sin", "import \"./base.sin\"\nfn shared right(): int =>\n    return base()\n")
	loader.Add("main.sin", "import \"./left.sin\"\nimport \"./right.sin\"\nfn main() =>\n    var r = left() + right()\n")

	result := sindarin.CompileWithLoader("main.sin", loader, sindarin.NewConfig())
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	require.Equal(t, 1, countOccurrences(result.Output, "long base("), "base() must only be emitted once despite two import paths")
}

func TestImportMissingFileReportsDiagnostic(t *testing.T) {
	loader := sindarin.NewInMemoryImportLoader()
	loader.Add("main.sin", "import \"./missing.sin\"\nfn main() =>\n    var x = 1\n")

	result := sindarin.CompileWithLoader("main.sin", loader, sindarin.NewConfig())
	assert.True(t, result.Diags.HasErrors())
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
		}
	}
	return count
}
