package core_test

import (
	"fmt"

	"github.com/cmake-checker/cmake-checker/pkg/core"
)

// ExampleScan checks a script held in memory.
func ExampleScan() {
	script := `project(demo)
add_compile_options(-Wall)
function(helper)
  set(RESULT 1 PARENT_SCOPE)
endfunction()
set(RESULT 2 PARENT_SCOPE)
`
	for _, v := range core.Scan(script) {
		fmt.Println(v)
	}
	// Output:
	// GLOBAL_COMPILE_OPTIONS:2
	// INEFFECTIVE_SCOPE_KEYWORD:6
}
