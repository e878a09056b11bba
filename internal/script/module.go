package script

import (
	"errors"
	"math"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ordtree/internal/render"
	"github.com/dshills/ordtree/internal/tree"
)

// TreeTypeName is the metatable name of tree userdata.
const TreeTypeName = "ordtree.tree"

// Tree is the tree type scripts operate on. Lua numbers are float64.
type Tree = tree.Tree[float64]

// treeModule holds the functions behind the ordtree global.
type treeModule struct {
	sb *Sandbox
}

// registerModule installs the ordtree global and the tree metatable.
func registerModule(L *lua.LState, sb *Sandbox) {
	m := &treeModule{sb: sb}

	mt := L.NewTypeMetatable(TreeTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"insert":     m.insert,
		"delete":     m.delete,
		"contains":   m.contains,
		"min":        m.min,
		"max":        m.max,
		"len":        m.len,
		"height":     m.height,
		"depth":      m.depth,
		"balanced":   m.balanced,
		"rebalance":  m.rebalance,
		"levelorder": m.traversal(tree.LevelOrder),
		"preorder":   m.traversal(tree.PreOrder),
		"inorder":    m.traversal(tree.InOrder),
		"postorder":  m.traversal(tree.PostOrder),
		"render":     m.render,
	}))
	L.SetField(mt, "__tostring", L.NewFunction(m.tostring))

	L.SetGlobal("ordtree", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"new":   m.newTree,
		"build": m.build,
	}))
}

// PushTree pushes t onto the Lua stack as tree userdata.
func PushTree(L *lua.LState, t *Tree) {
	ud := L.NewUserData()
	ud.Value = t
	L.SetMetatable(ud, L.GetTypeMetatable(TreeTypeName))
	L.Push(ud)
}

// ToTree returns the tree held by lv, if it is tree userdata.
func ToTree(lv lua.LValue) (*Tree, bool) {
	ud, ok := lv.(*lua.LUserData)
	if !ok {
		return nil, false
	}
	t, ok := ud.Value.(*Tree)
	return t, ok
}

// checkTree returns the tree receiver of a method call.
func checkTree(L *lua.LState) *Tree {
	t, ok := ToTree(L.Get(1))
	if !ok {
		L.ArgError(1, TreeTypeName+" expected")
	}
	return t
}

// checkValue returns argument n as a tree value.
func checkValue(L *lua.LState, n int) float64 {
	v := float64(L.CheckNumber(n))
	if math.IsNaN(v) {
		L.ArgError(n, "value is NaN")
	}
	return v
}

func pushValues(L *lua.LState, values []float64) {
	tbl := L.CreateTable(len(values), 0)
	for _, v := range values {
		tbl.Append(lua.LNumber(v))
	}
	L.Push(tbl)
}

func (m *treeModule) newTree(L *lua.LState) int {
	m.sb.Charge(L, 1)
	PushTree(L, tree.New[float64]())
	return 1
}

func (m *treeModule) build(L *lua.LState) int {
	tbl := L.CheckTable(1)
	n := tbl.Len()
	m.sb.Charge(L, 1+n)

	values := make([]float64, 0, n)
	for i := 1; i <= n; i++ {
		num, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok || math.IsNaN(float64(num)) {
			L.ArgError(1, "values must be numbers")
		}
		values = append(values, float64(num))
	}

	PushTree(L, tree.Build(values))
	return 1
}

func (m *treeModule) insert(L *lua.LState) int {
	t := checkTree(L)
	v := checkValue(L, 2)
	m.sb.Charge(L, 1)

	if err := t.Insert(v); err != nil {
		L.Push(lua.LFalse)
		if errors.Is(err, tree.ErrDuplicateValue) {
			L.Push(lua.LString("duplicate value"))
		} else {
			L.Push(lua.LString(err.Error()))
		}
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func (m *treeModule) delete(L *lua.LState) int {
	t := checkTree(L)
	v := checkValue(L, 2)
	m.sb.Charge(L, 1)

	L.Push(lua.LBool(t.Delete(v)))
	return 1
}

func (m *treeModule) contains(L *lua.LState) int {
	t := checkTree(L)
	v := checkValue(L, 2)
	m.sb.Charge(L, 1)

	L.Push(lua.LBool(t.Contains(v)))
	return 1
}

func (m *treeModule) min(L *lua.LState) int {
	t := checkTree(L)
	m.sb.Charge(L, 1)
	return pushResult(L, t.Min)
}

func (m *treeModule) max(L *lua.LState) int {
	t := checkTree(L)
	m.sb.Charge(L, 1)
	return pushResult(L, t.Max)
}

// pushResult pushes the value from fn, or nil and the error message.
func pushResult(L *lua.LState, fn func() (float64, error)) int {
	v, err := fn()
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (m *treeModule) len(L *lua.LState) int {
	t := checkTree(L)
	m.sb.Charge(L, 1)

	L.Push(lua.LNumber(t.Len()))
	return 1
}

// height returns the tree height, or the height of the node holding the
// optional value argument.
func (m *treeModule) height(L *lua.LState) int {
	t := checkTree(L)
	m.sb.Charge(L, 1+t.Len())

	if L.GetTop() < 2 {
		L.Push(lua.LNumber(t.TreeHeight()))
		return 1
	}
	L.Push(lua.LNumber(t.HeightOf(checkValue(L, 2))))
	return 1
}

func (m *treeModule) depth(L *lua.LState) int {
	t := checkTree(L)
	v := checkValue(L, 2)
	m.sb.Charge(L, 1)

	L.Push(lua.LNumber(t.DepthOf(v)))
	return 1
}

func (m *treeModule) balanced(L *lua.LState) int {
	t := checkTree(L)
	m.sb.Charge(L, 1+t.Len())

	L.Push(lua.LBool(t.IsBalanced()))
	return 1
}

// rebalance rebuilds the tree in place and returns it for chaining.
func (m *treeModule) rebalance(L *lua.LState) int {
	t := checkTree(L)
	m.sb.Charge(L, 1+t.Len())

	t.ReBalance()
	L.Push(L.Get(1))
	return 1
}

func (m *treeModule) traversal(order tree.Order) lua.LGFunction {
	return func(L *lua.LState) int {
		t := checkTree(L)
		m.sb.Charge(L, 1+t.Len())

		pushValues(L, t.Values(order))
		return 1
	}
}

func (m *treeModule) render(L *lua.LState) int {
	t := checkTree(L)
	m.sb.Charge(L, 1+t.Len())

	L.Push(lua.LString(strings.Join(render.Lines(t.Root()), "\n")))
	return 1
}

func (m *treeModule) tostring(L *lua.LState) int {
	t := checkTree(L)
	L.Push(lua.LString("ordtree(" + render.Summary(t) + ")"))
	return 1
}
