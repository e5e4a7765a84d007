package concurrency

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

func TestSpawnAndSyncSingleHandle(t *testing.T) {
	src := "fn shared work(n: int): int =>\n    return n * 2\n" +
		"fn main() =>\n    var h = spawn work(3)\n    var r = h!\n"
	result := compile(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_thread_spawn(")
	assert.Contains(t, result.Output, "rt_thread_sync(")
}

func TestSyncListWaitsOnEveryHandle(t *testing.T) {
	src := "fn shared work(n: int): int =>\n    return n\n" +
		"fn main() =>\n    var a = spawn work(1)\n    var b = spawn work(2)\n    var results = [a, b]!\n"
	result := compile(t, src)
	require.False(t, result.Diags.HasErrors(), "%v", result.Diags.All())
	assert.Contains(t, result.Output, "rt_thread_sync_all(")
}

func TestSpawnRequiresACallExpression(t *testing.T) {
	src := "fn main() =>\n    var x = 1\n    var h = spawn x\n"
	result := compile(t, src)
	assert.True(t, result.Diags.HasErrors())
}
