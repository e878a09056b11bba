// Package script runs Lua scripts against ordered trees.
//
// This package wraps the gopher-lua library to provide:
//   - Sandboxed Lua state management
//   - The ordtree module, exposing trees of numbers to Lua
//   - Execution timeouts and instruction limits
//
// # State
//
//	state, err := script.NewState(
//	    script.WithExecutionTimeout(5 * time.Second),
//	    script.WithOutput(os.Stdout),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer state.Close()
//
//	if err := state.DoFile(ctx, "shape.lua"); err != nil {
//	    log.Fatal(err)
//	}
//
// # The ordtree module
//
// Scripts see a global ordtree table:
//
//	local t = ordtree.build({7, 3, 3, 9, 1})
//	t:insert(5)
//	local ok, err = t:insert(5)     -- false, "duplicate value"
//	print(t:balanced(), t:height(), t:depth(9))
//	for _, v in ipairs(t:inorder()) do print(v) end
//	print(t:render())
//
// Tree methods: insert, delete, contains, min, max, len, height, depth,
// balanced, rebalance, levelorder, preorder, inorder, postorder and render.
// min and max return nil and a message on an empty tree. height and depth
// return -1 for values not in the tree.
//
// # Sandbox
//
// Only the base, table, string and math libraries are opened. dofile,
// loadfile, load, loadstring and require are removed, and print writes to
// the state's output instead of stdout.
//
// gopher-lua has no instruction hook, so the instruction limit is charged
// by the ordtree module: one unit per call plus one per value visited.
// Pure Lua loops are bounded by the execution timeout instead.
package script
