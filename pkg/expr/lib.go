package expr

import (
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"
)

type lib struct{}

func (lib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		ext.Math(),
		ext.Strings(),
		ext.Lists(),

		// `rowOf` returns the natural row of an index for a column count.
		// Example: rowOf(index, 3) == rowOf(count - 1, 3).
		cel.Function("rowOf",
			cel.Overload("row_of_int_int", []*cel.Type{cel.IntType, cel.IntType}, cel.IntType,
				cel.BinaryBinding(func(index, columns ref.Val) ref.Val {
					i, c, err := intPair("rowOf", index, columns)
					if err != nil {
						return err
					}

					return types.Int(i / c)
				}),
			),
		),

		// `colOf` returns the natural column of an index for a column count.
		// Example: colOf(index, columns) == 0.
		cel.Function("colOf",
			cel.Overload("col_of_int_int", []*cel.Type{cel.IntType, cel.IntType}, cel.IntType,
				cel.BinaryBinding(func(index, columns ref.Val) ref.Val {
					i, c, err := intPair("colOf", index, columns)
					if err != nil {
						return err
					}

					return types.Int(i % c)
				}),
			),
		),

		// `between` reports whether a value lies in the closed range [lo, hi].
		// Example: index.between(3, 6).
		cel.Function("between",
			cel.MemberOverload("int_between_int_int", []*cel.Type{cel.IntType, cel.IntType, cel.IntType}, cel.BoolType,
				cel.FunctionBinding(func(args ...ref.Val) ref.Val {
					v, ok1 := args[0].(types.Int)
					lo, ok2 := args[1].(types.Int)
					hi, ok3 := args[2].(types.Int)
					if !ok1 || !ok2 || !ok3 {
						return types.NewErr("between: invalid int value")
					}

					return types.Bool(v >= lo && v <= hi)
				}),
			),
		),
	}
}

func (lib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

//nolint:ireturn // Following CEL's function signature.
func intPair(fn string, a, b ref.Val) (int64, int64, ref.Val) {
	i, ok := a.(types.Int)
	if !ok {
		return 0, 0, types.NewErr("%s: invalid index value", fn)
	}

	c, ok := b.(types.Int)
	if !ok {
		return 0, 0, types.NewErr("%s: invalid columns value", fn)
	}

	if c < 1 {
		return 0, 0, types.NewErr("%s: columns must be positive, got %d", fn, int64(c))
	}

	return int64(i), int64(c), nil
}
