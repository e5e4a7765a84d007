package sindarin

import (
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileSrc(t *testing.T, src string) *CompileResult {
	t.Helper()
	loader := NewInMemoryImportLoader()
	loader.Add("main.sin", src)
	cfg := NewConfig()
	return CompileWithLoader("main.sin", loader, cfg)
}

func TestGenerateSimpleFunction(t *testing.T) {
	result := compileSrc(t, "fn add(a: int, b: int): int => a + b\n")
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "add")
	assert.Contains(t, result.Output, "rt_add_long")
}

func TestGenerateArenaThreadingForSharedFunction(t *testing.T) {
	src := "fn shared build(): string =>\n    return \"hi\"\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "Arena *__arena__")
}

func TestGeneratePrivateFunctionOwnsArena(t *testing.T) {
	src := "fn private square(n: int): int =>\n    return n * n\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_arena_create")
	assert.Contains(t, result.Output, "rt_arena_destroy")
}

func TestGenerateArrayLiteralBatchesPlainElements(t *testing.T) {
	src := "fn main() =>\n    var xs = [1, 2, 3]\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_array_create_long")
}

func TestGenerateArrayLiteralWithSpreadChainsConcat(t *testing.T) {
	src := "fn main() =>\n    var ys = [1, 2]\n    var xs = [...ys, 3]\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_array_concat_long")
}

func TestGenerateNegativeLiteralIndexFoldsAtCompileTime(t *testing.T) {
	src := "fn main() =>\n    var xs = [1, 2, 3]\n    var y = xs[-1]\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_array_length")
	assert.Contains(t, result.Output, "rt_array_get_long")
}

func TestGenerateDynamicIndexUsesCheckedAccessor(t *testing.T) {
	src := "fn main() =>\n    var xs = [1, 2, 3]\n    var i = 1\n    var y = xs[i]\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_array_get_checked_long")
}

func TestGenerateStringInterpolation(t *testing.T) {
	src := "fn main() =>\n    var name = \"world\"\n    var s = \"hello {name}!\"\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_str_concat")
}

func TestGenerateLambdaLiftedOnce(t *testing.T) {
	src := "fn main() =>\n    var f = (x: int): int => x + 1\n    var a = f(1)\n    var b = f(2)\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Equal(t, 1, strings.Count(result.Output, "__lambda_1__("))
}

func TestGenerateClosureCapturesOuterVariable(t *testing.T) {
	src := "fn main() =>\n    var n = 10\n    var f = (): int => n\n    var r = f()\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "__closure_")
	assert.Contains(t, result.Output, "rt_closure_alloc")
}

func TestGenerateThreadSpawnAndSync(t *testing.T) {
	src := "fn shared work(n: int): int =>\n    return n\n" +
		"fn main() =>\n    var h = spawn work(1)\n    var r = h!\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_thread_spawn")
	assert.Contains(t, result.Output, "rt_thread_sync")
}

func TestGenerateFailsToEmitOnTypeError(t *testing.T) {
	src := "fn main() =>\n    var x = 1 + \"oops\"\n"
	result := compileSrc(t, src)
	assert.True(t, result.Diags.HasErrors())
	assert.Empty(t, result.Output)
}

// TestGenerateIsDeterministic covers spec.md §8's "two identical source
// inputs yield byte-identical generated output" invariant: compiling
// the same module twice must not differ by a single byte.
func TestGenerateIsDeterministic(t *testing.T) {
	src := "fn add(a: int, b: int): int => a + b\n" +
		"fn main() =>\n    var xs = [1, 2, 3]\n    var f = (x: int): int => x + add(x, 1)\n    var r = f(xs[0])\n"
	first := compileSrc(t, src)
	second := compileSrc(t, src)
	require.False(t, first.Diags.HasErrors())
	require.False(t, second.Diags.HasErrors())

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(first.Output, second.Output, false)
	var changed []diffmatchpatch.Diff
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			changed = append(changed, d)
		}
	}
	assert.Empty(t, changed, "generated output differs between identical runs: %v", changed)
}

func TestGenerateTypeofOnAnyDispatchesAtRuntime(t *testing.T) {
	src := "fn main() =>\n    var x: any = 1\n    var t = typeof(x)\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_any_get_tag")
}

func TestGenerateTypeofOnConcreteTypeStaysCompileTime(t *testing.T) {
	src := "fn main() =>\n    var x = 1\n    var t = typeof(x)\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.NotContains(t, result.Output, "rt_any_get_tag")
	assert.Contains(t, result.Output, "RT_TYPE_long")
}

func TestGenerateIsOnAnyDispatchesAtRuntime(t *testing.T) {
	src := "fn main() =>\n    var x: any = 1\n    var b = x is int\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_any_get_tag")
}

func TestGenerateAnyArrayCastDispatchesToRuntimeUnboxer(t *testing.T) {
	src := "fn shared work(n: int): int =>\n    return n\n" +
		"fn main() =>\n    var a = spawn work(1)\n    var b = spawn work(2)\n" +
		"    var results = [a, b]!\n    var ints = results as int[]\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_array_from_any_long")
}

func TestGenerateParenlessFunctionDeclaration(t *testing.T) {
	src := "fn main => print(\"hello\")\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_print_string")
}

func TestGeneratePrintDispatchesPerArgumentSuffix(t *testing.T) {
	src := "fn f(n: int): int =>\n    return n * 2\n" +
		"fn main =>\n    print(f(21))\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_print_long")
}

// TestGenerateVoidExprBodyLambdaKeepsSideEffect covers spec.md §8
// scenario 4: a void-returning expression-bodied lambda must still
// emit its body's side effect, not just arena teardown.
func TestGenerateVoidExprBodyLambdaKeepsSideEffect(t *testing.T) {
	src := "fn main =>\n    var n = 0\n    var inc: fn(): void = () => n++\n    inc()\n    inc()\n    print(n)\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "(*__closure__->n)++")
}

func TestGenerateVoidExprBodyFunctionKeepsSideEffect(t *testing.T) {
	src := "fn private bump(n: int) => print(n)\nfn main =>\n    bump(1)\n"
	result := compileSrc(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_print_long(n);")
}

func TestGenerateImportSplicesDependency(t *testing.T) {
	loader := NewInMemoryImportLoader()
	loader.Add("./lib.sin", "fn shared helper(n: int): int =>\n    return n + 1\n")
	loader.Add("main.sin", "import \"./lib.sin\"\nfn main() =>\n    var r = helper(1)\n")
	cfg := NewConfig()
	result := CompileWithLoader("main.sin", loader, cfg)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "helper")
}
