package closures

import (
	"strings"
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

func TestZeroCaptureLambdaUsesSharedClosureType(t *testing.T) {
	src := "fn main() =>\n    var f = (x: int): int => x + 1\n    var r = f(1)\n"
	result := compile(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "__Closure__")
}

func TestCapturingLambdaGetsItsOwnClosureStruct(t *testing.T) {
	src := "fn main() =>\n    var n = 5\n    var f = (): int => n + 1\n    var r = f()\n"
	result := compile(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "__closure_1__")
	assert.Contains(t, result.Output, " n;")
}

func TestNestedLambdasEachLiftOnce(t *testing.T) {
	src := "fn main() =>\n    var f = (x: int): int =>\n        var g = (y: int): int => x + y\n        return g(1)\n    var r = f(2)\n"
	result := compile(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Equal(t, 1, strings.Count(result.Output, "__lambda_1__("))
	assert.Equal(t, 1, strings.Count(result.Output, "__lambda_2__("))
}

func TestPrivateLambdaMustReturnAPrimitive(t *testing.T) {
	src := "fn main() =>\n    var f = private fn(): string => \"nope\"\n"
	result := compile(t, src)
	assert.True(t, result.Diags.HasErrors())
}
